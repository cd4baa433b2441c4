package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/jotter/pkg/adapters/badger"
	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/adapters/memory"
	"github.com/aretw0/jotter/pkg/adapters/slot"
	"github.com/aretw0/jotter/pkg/adapters/sqlite"
	"github.com/aretw0/jotter/pkg/core"
)

// ErrUnsupported is returned for operations the selected adapter cannot do.
var ErrUnsupported = errors.New("not supported by this adapter")

// Open creates the store for the data directory uri and loads the persisted
// notes into it.
//
//	store, err := platform.Open("./notes", platform.WithAdapter("sqlite"))
func Open(ctx context.Context, uri string, opts ...Option) (*core.Store, error) {
	o := apply(opts)

	storage, err := initStorage(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	store := core.NewStore(storage,
		core.WithLogger(o.logger),
		core.WithCommitMode(o.mode),
		core.WithReadOnly(o.readOnly),
	)
	store.LoadAll(ctx)
	return store, nil
}

// Init prepares the storage for uri (directories, database files, git)
// without loading any notes.
func Init(ctx context.Context, uri string, opts ...Option) (core.Storage, error) {
	return initStorage(ctx, uri, apply(opts))
}

func initStorage(ctx context.Context, uri string, o *options) (core.Storage, error) {
	if o.storage != nil {
		return o.storage, nil
	}

	codecs := slot.DefaultCodecs()
	codec, ok := codecs[o.format]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", o.format)
	}

	if o.versioning != nil && *o.versioning && o.adapter != AdapterFS {
		return nil, fmt.Errorf("versioning requires the %s adapter, not %s", AdapterFS, o.adapter)
	}

	var (
		backend slot.Backend
		err     error
	)
	switch o.adapter {
	case AdapterFS:
		backend, err = initFS(ctx, uri, codec, o)
	case AdapterSQLite:
		backend, err = initSQLite(uri, o)
	case AdapterBadger:
		backend, err = initBadger(uri, o)
	case AdapterMemory:
		backend = memory.New(memory.WithQuota(o.quota))
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	slotOpts := []slot.Option{slot.WithCodec(codec), slot.WithLogger(o.logger)}
	if o.key != "" {
		slotOpts = append(slotOpts, slot.WithKey(o.key))
	}
	return slot.New(backend, slotOpts...), nil
}

// resolvePath applies dev safety to a data directory.
func resolvePath(path string, o *options) string {
	// Read-only access and an explicit opt-out bypass the sandbox.
	bypassSafety := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypassSafety)
	resolved := ResolveDataPath(path, useTemp)

	if o.logger != nil && IsDevRun() {
		switch {
		case o.readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case bypassSafety:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		default:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolved)
		}
	}
	return resolved
}

func (o *options) systemDirName() string {
	if o.systemDir == "" {
		return fs.DefaultSystemDir
	}
	return o.systemDir
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(ctx context.Context, path string, codec slot.Codec, o *options) (*fs.Backend, error) {
	resolved := resolvePath(path, o)

	// Versioning detection: a directory that is already a git repository
	// stays versioned unless told otherwise.
	versioned := false
	if o.versioning != nil {
		versioned = *o.versioning
	} else if hasFile(resolved, ".git") {
		versioned = true
		if o.logger != nil {
			o.logger.Debug("auto-detected versioning", "reason", ".git present")
		}
	}

	backend := fs.NewBackend(fs.Config{
		Path:      resolved,
		Ext:       codec.Ext(),
		AutoInit:  true,
		Versioned: versioned,
		MustExist: o.mustExist,
		SystemDir: o.systemDirName(),
		Logger:    o.logger,
	})

	if o.readOnly {
		return backend, nil
	}
	if err := backend.Initialize(ctx); err != nil {
		return nil, err
	}
	return backend, nil
}

// initSQLite opens uri directly when it names a database file, otherwise
// jotter.db inside the system directory of uri.
func initSQLite(uri string, o *options) (*sqlite.Backend, error) {
	if uri == ":memory:" {
		return sqlite.Open(uri, o.logger)
	}

	resolved := resolvePath(uri, o)
	file := resolved
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".db", ".sqlite", ".sqlite3":
		if err := os.MkdirAll(filepath.Dir(resolved), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	default:
		dir := filepath.Join(resolved, o.systemDirName())
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		file = filepath.Join(dir, "jotter.db")
	}
	return sqlite.Open(file, o.logger)
}

// initBadger keeps the database in the system directory of uri. An empty
// uri runs Badger in memory.
func initBadger(uri string, o *options) (*badger.Backend, error) {
	if uri == "" {
		return badger.Open("", o.logger)
	}
	dir := filepath.Join(resolvePath(uri, o), o.systemDirName(), "badger")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return badger.Open(dir, o.logger)
}

// History returns the version log of the notes slot, newest first.
// It requires a versioned fs store.
func History(ctx context.Context, store *core.Store, limit int) ([]string, error) {
	adapter, ok := store.Storage().(*slot.Adapter)
	if !ok {
		return nil, fmt.Errorf("history: %w", ErrUnsupported)
	}
	h, ok := adapter.Backend().(interface {
		History(ctx context.Context, key string, limit int) ([]string, error)
	})
	if !ok {
		return nil, fmt.Errorf("history: %w", ErrUnsupported)
	}
	return h.History(ctx, adapter.Key(), limit)
}
