// Package badger implements a slot backend on an embedded Badger key-value
// store.
package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/introspection"
	"github.com/dgraph-io/badger/v4"

	"github.com/aretw0/jotter/pkg/adapters/slot"
)

// keyPrefix namespaces slot keys inside the database.
const keyPrefix = "slot:"

// Backend implements slot.Backend on Badger.
type Backend struct {
	db       *badger.DB
	path     string
	inMemory bool
	logger   *slog.Logger

	mu     sync.RWMutex
	writes int
}

// Open opens or creates the Badger database in dir. An empty dir runs the
// database in memory.
func Open(dir string, logger *slog.Logger) (*Backend, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = dir != ""  // Sync to disk so a crash cannot lose an acknowledged write
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Debug("badger database opened", "path", dir, "in_memory", dir == "")
	}

	return &Backend{db: db, path: dir, inMemory: dir == "", logger: logger}, nil
}

// Close gracefully closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

func dbKey(key string) []byte {
	return []byte(keyPrefix + key)
}

// Get implements slot.Backend.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(dbKey(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("slot %q: %w", key, slot.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %q: %w", key, err)
	}
	return value, nil
}

// Set implements slot.Backend.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(dbKey(key), value)
	})
	if err != nil {
		return fmt.Errorf("set slot %q: %w", key, err)
	}

	b.mu.Lock()
	b.writes++
	b.mu.Unlock()
	return nil
}

// Delete implements slot.Backend.
func (b *Backend) Delete(ctx context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(dbKey(key))
	})
	if err != nil {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}

// BackendState exposes internal state for observability.
type BackendState struct {
	Path     string `json:"path,omitempty"`
	InMemory bool   `json:"in_memory"`
	Writes   int    `json:"writes"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return BackendState{Path: b.path, InMemory: b.inMemory, Writes: b.writes}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "badger"
}

var (
	_ slot.Backend                 = (*Backend)(nil)
	_ introspection.Introspectable = (*Backend)(nil)
	_ introspection.Component      = (*Backend)(nil)
)
