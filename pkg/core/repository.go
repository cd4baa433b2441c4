package core

import "context"

// Storage defines the contract for persisting the whole note collection.
// Adhering to this interface keeps the Store independent of the underlying
// slot (file, SQLite row, Badger key, memory).
type Storage interface {
	// Read returns the stored collection in order. A missing or malformed
	// value is not an error: it reads as an empty collection.
	Read(ctx context.Context) ([]Note, error)

	// Write replaces the stored collection. A rejected write is reported as
	// a persistence error.
	Write(ctx context.Context, notes []Note) error
}

// Watchable defines storages that can report external changes to the slot,
// such as another process rewriting the notes file.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// Resettable defines storages that can drop the stored slot entirely.
type Resettable interface {
	Clear(ctx context.Context) error
}
