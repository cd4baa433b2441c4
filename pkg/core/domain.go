// Package core holds the notes domain: the Note and Comment records, the
// Store that owns the collection, the Comments sub-store, and the Storage
// contract that persistence adapters implement.
package core

import (
	"fmt"
	"strings"
)

// Color is a swatch color code such as "#ffffff".
type Color string

// The fixed swatch palette. DefaultColor is rendered as "Default".
const (
	DefaultColor    Color = "#ffffff"
	ColorLightRed   Color = "#f8d7da"
	ColorLightGreen Color = "#d4edda"
	ColorLightBlue  Color = "#cce5ff"
	ColorYellow     Color = "#fff3cd"
	ColorLightGray  Color = "#e9ecef"
)

// Palette lists the swatches in display order.
var Palette = []Color{
	DefaultColor,
	ColorLightRed,
	ColorLightGreen,
	ColorLightBlue,
	ColorYellow,
	ColorLightGray,
}

// Valid reports whether c belongs to the palette.
func (c Color) Valid() bool {
	for _, p := range Palette {
		if strings.EqualFold(string(p), string(c)) {
			return true
		}
	}
	return false
}

var colorNames = map[Color]string{
	DefaultColor:    "White",
	ColorLightRed:   "Light Red",
	ColorLightGreen: "Light Green",
	ColorLightBlue:  "Light Blue",
	ColorYellow:     "Light Yellow",
	ColorLightGray:  "Light Gray",
}

// Name returns the descriptive name of a palette color, or "" for colors
// outside the palette.
func (c Color) Name() string {
	return colorNames[Color(strings.ToLower(string(c)))]
}

// Label is the human name shown next to a swatch.
func (c Color) Label() string {
	if c == "" || c == DefaultColor {
		return "Default"
	}
	return string(c)
}

// Comment is a remark attached to a single note.
type Comment struct {
	ID   int64  `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text" validate:"required"`
}

// Note is the central entity of the domain.
// Tags and Comments are never nil once a note has passed through the Store.
type Note struct {
	ID       int64     `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title" validate:"required"`
	Content  string    `json:"content" yaml:"content" validate:"required"`
	Color    Color     `json:"color" yaml:"color" validate:"swatch"`
	Tags     []string  `json:"tags" yaml:"tags" validate:"unique,dive,required"`
	Comments []Comment `json:"comments" yaml:"comments" validate:"unique=ID,dive"`
}

// Draft is the input for creating a note.
type Draft struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Color   Color    `json:"color"`
	Tags    []string `json:"tags,omitempty"`
}

// EventType represents the kind of change observed on the collection.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
	EventReload EventType = "RELOAD"
)

// Event represents a change in the note collection or its storage slot.
type Event struct {
	Type      EventType
	ID        int64 // note id, zero for slot-level events
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s note %d", e.Type, e.ID)
	}
	return fmt.Sprintf("%s %s", e.Type, e.Key)
}

type contextKey string

// ChangeReasonKey is the context key for passing a change reason (commit
// message) down to versioned backends.
const ChangeReasonKey contextKey = "change_reason"
