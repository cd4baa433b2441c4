package platform

import (
	"log/slog"

	"github.com/aretw0/jotter/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
	AdapterBadger = "badger"
	AdapterMemory = "memory"
)

// options holds the internal configuration for opening a notes store.
type options struct {
	storage    core.Storage
	logger     *slog.Logger
	adapter    string
	format     string
	key        string
	systemDir  string
	mode       core.CommitMode
	versioning *bool // nil means detect from the directory
	forceTemp  bool
	mustExist  bool
	readOnly   bool
	devSafety  bool
	quota      int
}

// Option defines a functional option for configuring the store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:   AdapterFS,
		format:    "json",
		devSafety: true,
	}
}

func apply(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithAdapter selects the storage backend by name: "fs" (default), "sqlite",
// "badger" or "memory".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithFormat selects the serialization of the notes slot: "json" (default)
// or "yaml".
func WithFormat(name string) Option {
	return func(o *options) {
		o.format = name
	}
}

// WithKey overrides the storage key of the collection. Defaults to "notes".
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".jotter").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithLogger sets the logger for the store and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCommitMode selects between optimistic commits (default) and
// committing in memory only after a successful write.
func WithCommitMode(mode core.CommitMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithVersioning enables or disables git versioning of the notes file.
// Only the fs adapter supports versioning. When not set, versioning is
// enabled if the data directory is already a git repository.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.versioning = &enabled
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Every mutation returns core.ErrReadOnly.
// 2. Initialization (mkdir, git init) is skipped.
// 3. Dev safety (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true) the data directory is re-rooted under the
// system temp dir so development runs never touch real notes.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithQuota limits the memory adapter to the given number of bytes, the way
// browser local storage is limited. Zero means unlimited.
func WithQuota(bytes int) Option {
	return func(o *options) {
		o.quota = bytes
	}
}

// WithStorage injects a custom storage (e.g. a mock). The adapter options
// are ignored when set.
func WithStorage(storage core.Storage) Option {
	return func(o *options) {
		o.storage = storage
	}
}
