// Package memory provides an in-process slot backend, the analog of browser
// local storage. An optional quota makes oversized writes fail the way a
// full local storage does.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/jotter/pkg/adapters/slot"
)

// ErrQuotaExceeded is returned when a value would not fit in the quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Backend holds values in a map guarded by a RWMutex.
type Backend struct {
	mu     sync.RWMutex
	values map[string][]byte
	quota  int
	writes int
}

// Option configures a Backend.
type Option func(*Backend)

// WithQuota limits the total number of bytes held across keys.
// Zero means unlimited.
func WithQuota(bytes int) Option {
	return func(b *Backend) {
		b.quota = bytes
	}
}

// WithValue preloads a raw value, e.g. to simulate data left by another
// program.
func WithValue(key string, value []byte) Option {
	return func(b *Backend) {
		b.values[key] = append([]byte(nil), value...)
	}
}

// New creates an empty backend.
func New(opts ...Option) *Backend {
	b := &Backend{values: make(map[string][]byte)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Get implements slot.Backend.
func (b *Backend) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.values[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, slot.ErrNotExist)
	}
	return append([]byte(nil), v...), nil
}

// Set implements slot.Backend.
func (b *Backend) Set(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.quota > 0 {
		used := len(value)
		for k, v := range b.values {
			if k != key {
				used += len(v)
			}
		}
		if used > b.quota {
			return fmt.Errorf("%w: %d bytes over a quota of %d", ErrQuotaExceeded, used, b.quota)
		}
	}

	b.values[key] = append([]byte(nil), value...)
	b.writes++
	return nil
}

// Delete implements slot.Backend.
func (b *Backend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.values, key)
	return nil
}

// SetQuota changes the quota at runtime.
func (b *Backend) SetQuota(bytes int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.quota = bytes
}

// Raw returns the stored bytes for key, for inspection in tests.
func (b *Backend) Raw(key string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.values[key]
	return v, ok
}

// BackendState exposes internal state for observability.
type BackendState struct {
	Keys   int `json:"keys"`
	Bytes  int `json:"bytes"`
	Quota  int `json:"quota,omitempty"`
	Writes int `json:"writes"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	size := 0
	for _, v := range b.values {
		size += len(v)
	}
	return BackendState{Keys: len(b.values), Bytes: size, Quota: b.quota, Writes: b.writes}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "memory"
}

var _ slot.Backend = (*Backend)(nil)
