package core

import (
	"slices"
	"strings"
)

// Clone returns a deep copy so callers cannot alias the Store's slices.
func (n Note) Clone() Note {
	c := n
	c.Tags = append(make([]string, 0, len(n.Tags)), n.Tags...)
	c.Comments = append(make([]Comment, 0, len(n.Comments)), n.Comments...)
	return c
}

// HasTag reports whether the note carries tag, compared by exact text.
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// Comment returns the comment with the given id.
func (n Note) Comment(id int64) (Comment, bool) {
	for _, c := range n.Comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}

// normalize fills absent sequences with empty ones and applies the default
// color. It never touches title or content whitespace.
func (n Note) normalize() Note {
	n = n.Clone()
	if n.Color == "" {
		n.Color = DefaultColor
	}
	n.Color = Color(strings.ToLower(string(n.Color)))
	return n
}

func cloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}

func indexOf(notes []Note, id int64) int {
	return slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
}
