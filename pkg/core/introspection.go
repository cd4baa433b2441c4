package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Notes       int    `json:"notes"`
	Comments    int    `json:"comments"`
	CommitMode  string `json:"commit_mode"`
	ReadOnly    bool   `json:"read_only"`
	StorageType string `json:"storage_type"`
	Storage     any    `json:"storage,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := 0
	for _, n := range s.notes {
		comments += len(n.Comments)
	}

	state := StoreState{
		Notes:       len(s.notes),
		Comments:    comments,
		CommitMode:  s.mode.String(),
		ReadOnly:    s.readOnly,
		StorageType: "unknown",
	}

	if comp, ok := s.storage.(introspection.Component); ok {
		state.StorageType = comp.ComponentType()
	}
	if intro, ok := s.storage.(introspection.Introspectable); ok {
		state.Storage = intro.State()
	}

	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
