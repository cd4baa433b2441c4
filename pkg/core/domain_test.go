package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor(t *testing.T) {
	assert.True(t, DefaultColor.Valid())
	assert.True(t, Color("#FFF3CD").Valid())
	assert.False(t, Color("#000000").Valid())
	assert.False(t, Color("").Valid())

	assert.Equal(t, "Default", DefaultColor.Label())
	assert.Equal(t, "#cce5ff", ColorLightBlue.Label())
	assert.Len(t, Palette, 6)

	assert.Equal(t, "Light Blue", Color("#CCE5FF").Name())
	assert.Empty(t, Color("#000000").Name())
}

func TestNormalize(t *testing.T) {
	n := Note{Title: "t", Color: "#CCE5FF"}.normalize()
	assert.Equal(t, ColorLightBlue, n.Color)
	assert.NotNil(t, n.Tags)
	assert.NotNil(t, n.Comments)

	assert.Equal(t, DefaultColor, Note{}.normalize().Color)
}

func TestErrors(t *testing.T) {
	cause := errors.New("quota")
	err := fmt.Errorf("create: %w", Persistence("write notes", cause))

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrReadOnly)
	assert.Equal(t, "create: write notes: quota", err.Error())

	assert.ErrorIs(t, noteNotFound(3), ErrNotFound)
	assert.Equal(t, "note 3 not found", noteNotFound(3).Error())
	assert.ErrorIs(t, ErrReadOnly, ErrPersistence)
	assert.NotErrorIs(t, ErrPersistence, ErrReadOnly)
}

func TestWithReason(t *testing.T) {
	ctx := withReason(context.Background(), "create note 1")
	assert.Equal(t, "create note 1", ctx.Value(ChangeReasonKey))

	ctx = context.WithValue(context.Background(), ChangeReasonKey, "fix(notes): typo")
	ctx = withReason(ctx, "update note 1")
	assert.Equal(t, "fix(notes): typo", ctx.Value(ChangeReasonKey))
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "DELETE note 5", Event{Type: EventDelete, ID: 5}.String())
	assert.Equal(t, "RELOAD notes", Event{Type: EventReload, Key: "notes"}.String())
}
