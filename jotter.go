package jotter

import (
	"context"
	"log/slog"

	"github.com/aretw0/jotter/internal/platform"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/git"
)

// --- Types ---

// Store is the owner of the note collection.
type Store = core.Store

// Note is a persisted note.
type Note = core.Note

// Draft is the input for Store.Create.
type Draft = core.Draft

// Comment is a remark attached to a note.
type Comment = core.Comment

// Config is the content of a jotter.yaml file.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring the store.
type Option = platform.Option

// Adapter names.
const (
	AdapterFS     = platform.AdapterFS
	AdapterSQLite = platform.AdapterSQLite
	AdapterBadger = platform.AdapterBadger
	AdapterMemory = platform.AdapterMemory
)

// WithAdapter selects the storage backend by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithFormat selects "json" or "yaml" serialization.
func WithFormat(name string) Option {
	return platform.WithFormat(name)
}

// WithLogger sets the logger for the store and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithCommitMode selects optimistic or after-persist commits.
func WithCommitMode(mode core.CommitMode) Option {
	return platform.WithCommitMode(mode)
}

// WithTwoPhase is shorthand for WithCommitMode(core.CommitAfterPersist).
func WithTwoPhase(enabled bool) Option {
	if enabled {
		return platform.WithCommitMode(core.CommitAfterPersist)
	}
	return platform.WithCommitMode(core.CommitOptimistic)
}

// WithVersioning enables or disables git versioning (fs adapter only).
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithReadOnly rejects every mutation.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the go run / go test sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithQuota limits the memory adapter to the given number of bytes.
func WithQuota(bytes int) Option {
	return platform.WithQuota(bytes)
}

// WithStorage injects a custom storage.
func WithStorage(storage core.Storage) Option {
	return platform.WithStorage(storage)
}

// --- Factory ---

// Open creates a store for the data directory and loads its notes.
func Open(ctx context.Context, dir string, opts ...Option) (*Store, error) {
	return platform.Open(ctx, dir, opts...)
}

// New is Open with a background context.
func New(dir string, opts ...Option) (*Store, error) {
	return platform.Open(context.Background(), dir, opts...)
}

// Init prepares the storage for dir without loading notes.
func Init(ctx context.Context, dir string, opts ...Option) (core.Storage, error) {
	return platform.Init(ctx, dir, opts...)
}

// History returns the git log of the notes file of a versioned store.
func History(ctx context.Context, store *Store, limit int) ([]string, error) {
	return platform.History(ctx, store, limit)
}

// --- Safety & Utils ---

// ResolveDataPath determines the actual data directory based on safety rules.
func ResolveDataPath(userPath string, forceTemp bool) string {
	return platform.ResolveDataPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a directory holding .jotter or jotter.yaml.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// LoadConfig reads jotter.yaml from dir.
func LoadConfig(dir string) (Config, error) {
	return platform.LoadConfig(dir)
}

// SaveConfig writes cfg to dir/jotter.yaml.
func SaveConfig(dir string, cfg Config) error {
	return platform.SaveConfig(dir, cfg)
}

// --- Change reasons ---

const (
	CommitTypeFeat     = git.CommitTypeFeat
	CommitTypeFix      = git.CommitTypeFix
	CommitTypeDocs     = git.CommitTypeDocs
	CommitTypeRefactor = git.CommitTypeRefactor
	CommitTypeChore    = git.CommitTypeChore
)

// FormatChangeReason builds a Conventional Commit message.
func FormatChangeReason(ctype, scope, subject, body string) string {
	return git.FormatCommitMessage(ctype, scope, subject, body)
}

// WithChangeReason attaches a change reason to ctx. Versioned stores use it
// as the commit message of the next mutation.
func WithChangeReason(ctx context.Context, reason string) context.Context {
	return context.WithValue(ctx, core.ChangeReasonKey, reason)
}
