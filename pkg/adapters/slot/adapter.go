// Package slot implements the persistence adapter: it stores the entire note
// collection as one serialized value under a fixed key, on top of any
// byte-level Backend.
package slot

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"

	"github.com/aretw0/introspection"

	"github.com/aretw0/jotter/pkg/core"
)

// DefaultKey is the storage key of the note collection.
const DefaultKey = "notes"

// ErrNotExist is returned by backends when the key holds no value.
var ErrNotExist = iofs.ErrNotExist

// Backend stores opaque values under string keys.
type Backend interface {
	// Get returns the value for key, or an error wrapping ErrNotExist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, overwriting any prior value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Watcher defines backends that can report changes to a key made outside
// this process.
type Watcher interface {
	Watch(ctx context.Context, key string) (<-chan core.Event, error)
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(a *Adapter) {
		a.key = key
	}
}

// WithCodec sets the serialization format. Defaults to pretty JSON.
func WithCodec(codec Codec) Option {
	return func(a *Adapter) {
		a.codec = codec
	}
}

// WithLogger sets the logger for the adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// Adapter implements core.Storage over a Backend and a Codec.
type Adapter struct {
	backend Backend
	codec   Codec
	key     string
	logger  *slog.Logger
}

// New creates an adapter storing the collection in backend.
func New(backend Backend, opts ...Option) *Adapter {
	a := &Adapter{
		backend: backend,
		codec:   NewJSONCodec(true),
		key:     DefaultKey,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the storage key in use.
func (a *Adapter) Key() string {
	return a.key
}

// Codec returns the codec in use.
func (a *Adapter) Codec() Codec {
	return a.codec
}

// Read implements core.Storage. A missing key or a value that does not
// decode as a list of notes, including one holding an entry without an id,
// reads as an empty collection.
func (a *Adapter) Read(ctx context.Context) ([]core.Note, error) {
	data, err := a.backend.Get(ctx, a.key)
	if errors.Is(err, ErrNotExist) {
		return []core.Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", a.key, err)
	}

	notes, err := a.codec.Decode(data)
	if err == nil {
		err = checkShape(notes)
	}
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("stored notes are malformed, treating as empty", "key", a.key, "error", err)
		}
		return []core.Note{}, nil
	}
	if notes == nil {
		notes = []core.Note{}
	}
	return notes, nil
}

// checkShape rejects decoded entries that are not notes at all, such as
// null elements or empty objects, which decode to an id of zero.
func checkShape(notes []core.Note) error {
	for i, n := range notes {
		if n.ID <= 0 {
			return fmt.Errorf("entry %d has no valid id", i)
		}
	}
	return nil
}

// Write implements core.Storage. Any encoding or backend failure is
// returned as a persistence error.
func (a *Adapter) Write(ctx context.Context, notes []core.Note) error {
	data, err := a.codec.Encode(notes)
	if err != nil {
		return core.Persistence("failed to encode notes", err)
	}

	if err := a.backend.Set(ctx, a.key, data); err != nil {
		return core.Persistence(fmt.Sprintf("failed to write %s", a.key), err)
	}

	if a.logger != nil {
		a.logger.Debug("notes written", "key", a.key, "count", len(notes), "bytes", len(data))
	}
	return nil
}

// Clear implements core.Resettable.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.backend.Delete(ctx, a.key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", a.key, err)
	}
	return nil
}

// Watch implements core.Watchable when the backend can watch.
func (a *Adapter) Watch(ctx context.Context) (<-chan core.Event, error) {
	w, ok := a.backend.(Watcher)
	if !ok {
		return nil, errors.New("backend does not support watching")
	}
	return w.Watch(ctx, a.key)
}

// Backend returns the underlying backend.
func (a *Adapter) Backend() Backend {
	return a.backend
}

// Close closes the backend if it holds resources.
func (a *Adapter) Close() error {
	if c, ok := a.backend.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// AdapterState exposes internal state for observability.
type AdapterState struct {
	Key         string `json:"key"`
	Codec       string `json:"codec"`
	BackendType string `json:"backend_type"`
	Backend     any    `json:"backend,omitempty"`
}

// State implements introspection.Introspectable.
func (a *Adapter) State() any {
	state := AdapterState{
		Key:         a.key,
		Codec:       a.codec.Name(),
		BackendType: "unknown",
	}
	if comp, ok := a.backend.(introspection.Component); ok {
		state.BackendType = comp.ComponentType()
	}
	if intro, ok := a.backend.(introspection.Introspectable); ok {
		state.Backend = intro.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (a *Adapter) ComponentType() string {
	return "slot"
}

var (
	_ core.Storage                 = (*Adapter)(nil)
	_ core.Watchable               = (*Adapter)(nil)
	_ core.Resettable              = (*Adapter)(nil)
	_ introspection.Introspectable = (*Adapter)(nil)
	_ introspection.Component      = (*Adapter)(nil)
)
