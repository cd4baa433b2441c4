package core

import (
	"slices"
	"strings"
)

// Comments manages the comment sequence embedded in one note. It never
// persists: callers pass the returned note to Store.Update straight away, or
// use Store.Comment and Store.Uncomment which do both steps.
type Comments struct {
	ids IDGenerator
}

// NewComments creates a comment sub-store drawing ids from ids.
func NewComments(ids IDGenerator) *Comments {
	return &Comments{ids: ids}
}

// AddComment appends a comment with trimmed text to a copy of note.
func (c *Comments) AddComment(note Note, text string) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return note, Validation("comment text is required")
	}

	id := c.ids.Next()
	for {
		if _, taken := note.Comment(id); !taken {
			break
		}
		id = c.ids.Next()
	}

	out := note.Clone()
	out.Comments = append(out.Comments, Comment{ID: id, Text: text})
	return out, nil
}

// RemoveComment drops the comment with commentID from a copy of note.
// Removing an unknown id is a no-op.
func (c *Comments) RemoveComment(note Note, commentID int64) Note {
	out := note.Clone()
	out.Comments = slices.DeleteFunc(out.Comments, func(cm Comment) bool {
		return cm.ID == commentID
	})
	return out
}
