package core

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// noteValidator wraps go-playground/validator with domain error conversion.
type noteValidator struct {
	v *validator.Validate
}

func newNoteValidator() *noteValidator {
	v := validator.New()

	// Use JSON tag names in error details.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("swatch", func(fl validator.FieldLevel) bool {
		return Color(fl.Field().String()).Valid()
	})

	return &noteValidator{v: v}
}

// validate checks a normalized note. Title and content are checked in
// trimmed form so whitespace-only values are rejected, but the note itself
// is stored untouched. Tags compare by exact text; only blank ones are
// blanked out so they fail "required".
func (nv *noteValidator) validate(n Note) error {
	check := n.Clone()
	check.Title = strings.TrimSpace(check.Title)
	check.Content = strings.TrimSpace(check.Content)
	for i, t := range check.Tags {
		if strings.TrimSpace(t) == "" {
			check.Tags[i] = ""
		}
	}
	for i, c := range check.Comments {
		check.Comments[i].Text = strings.TrimSpace(c.Text)
	}

	if err := nv.v.Struct(check); err != nil {
		return nv.formatError(err)
	}
	return nil
}

func (nv *noteValidator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return Validation(err.Error())
	}

	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Namespace()] = friendlyMessage(e)
	}

	return ValidationWithDetails(summarize(fieldErrors), fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "unique":
		return "must not contain duplicates"
	case "swatch":
		return fmt.Sprintf("must be one of the palette colors, got %q", e.Value())
	default:
		return "is invalid"
	}
}

// summarize turns field errors into a single stable message, e.g.
// "validation failed: Note.title is required".
func summarize(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for field, msg := range fields {
		parts = append(parts, field+" "+msg)
	}
	slices.Sort(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}
