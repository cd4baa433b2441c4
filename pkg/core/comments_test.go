package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDs struct{ ids []int64 }

func (s *seqIDs) Next() int64 {
	id := s.ids[0]
	s.ids = s.ids[1:]
	return id
}

func (s *seqIDs) Observe(int64) {}

func TestComments_AddComment(t *testing.T) {
	c := NewComments(&seqIDs{ids: []int64{7, 8}})
	note := Note{ID: 1, Title: "t", Content: "c", Tags: []string{}, Comments: []Comment{}}

	got, err := c.AddComment(note, "  hi  ")
	require.NoError(t, err)
	assert.Equal(t, []Comment{{ID: 7, Text: "hi"}}, got.Comments)
	assert.Empty(t, note.Comments, "input note is not modified")
}

func TestComments_AddCommentRejectsBlank(t *testing.T) {
	c := NewComments(NewMonotonicIDs())
	note := Note{ID: 1, Comments: []Comment{{ID: 2, Text: "keep"}}}

	for _, text := range []string{"", "  ", "\n\t"} {
		got, err := c.AddComment(note, text)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, note.Comments, got.Comments)
	}
}

func TestComments_AddCommentSkipsTakenIDs(t *testing.T) {
	c := NewComments(&seqIDs{ids: []int64{2, 3}})
	note := Note{ID: 1, Comments: []Comment{{ID: 2, Text: "existing"}}}

	got, err := c.AddComment(note, "new")
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, int64(3), got.Comments[1].ID)
}

func TestComments_RemoveComment(t *testing.T) {
	c := NewComments(NewMonotonicIDs())
	note := Note{ID: 1, Comments: []Comment{{ID: 2, Text: "a"}, {ID: 3, Text: "b"}}}

	got := c.RemoveComment(note, 2)
	assert.Equal(t, []Comment{{ID: 3, Text: "b"}}, got.Comments)
	assert.Len(t, note.Comments, 2)

	same := c.RemoveComment(got, 99)
	assert.Equal(t, got.Comments, same.Comments)
}
