// Package jotter is the Composition Root for the jotter notes store.
//
// It connects the notes domain (pkg/core) with the persistence adapters
// (pkg/adapters) using the Hexagonal Architecture pattern.
//
// A Store owns the collection of notes in memory and writes the whole
// collection through to a single storage slot, keyed "notes", after every
// mutation. The slot lives in a file (JSON or YAML, optionally versioned
// with git), a SQLite row, a Badger key, or process memory.
//
// Usage:
//
//	store, err := jotter.Open(ctx, "./notes",
//		jotter.WithLogger(logger),
//		jotter.WithTwoPhase(true),
//	)
//
//	note, err := store.Create(ctx, jotter.Draft{Title: "Groceries", Content: "milk"})
//	note, err = store.Comment(ctx, note.ID, "buy today")
package jotter
