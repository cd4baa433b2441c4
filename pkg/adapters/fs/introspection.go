package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// BackendState exposes internal state for observability.
type BackendState struct {
	Path          string     `json:"path"`
	SystemDir     string     `json:"system_dir"`
	Ext           string     `json:"ext"`
	Versioned     bool       `json:"versioned"`
	WatcherActive bool       `json:"watcher_active"`
	Writes        int        `json:"writes"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return BackendState{
		Path:          b.Path,
		SystemDir:     b.config.SystemDir,
		Ext:           b.config.Ext,
		Versioned:     b.config.Versioned,
		WatcherActive: b.watcherActive,
		Writes:        b.writes,
		LastWrite:     b.lastWrite,
	}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Backend)(nil)
var _ introspection.Component = (*Backend)(nil)

func (b *Backend) setWatcherActive(active bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.watcherActive = active
}

func (b *Backend) recordWrite() {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	b.lastWrite = &now
	b.writes++
}
