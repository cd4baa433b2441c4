// Package fs implements a slot backend on the local filesystem: each key is
// one file in the data directory, written atomically and optionally
// versioned with git.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/jotter/pkg/adapters/slot"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/git"
)

// DefaultSystemDir marks a directory as a jotter data directory.
const DefaultSystemDir = ".jotter"

// Config holds the configuration for the filesystem backend.
type Config struct {
	Path      string
	Ext       string // file extension for keys, e.g. ".json"
	AutoInit  bool   // run git init when versioning an unversioned directory
	Versioned bool   // commit every write to git
	MustExist bool
	SystemDir string // e.g. ".jotter"
	Logger    *slog.Logger
}

// Backend implements slot.Backend on files.
type Backend struct {
	Path   string
	git    *git.Client
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
	writes        int
}

// NewBackend creates a new filesystem-backed slot backend.
func NewBackend(config Config) *Backend {
	if config.Ext == "" {
		config.Ext = ".json"
	}
	if !strings.HasPrefix(config.Ext, ".") {
		config.Ext = "." + config.Ext
	}
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	return &Backend{
		Path:   config.Path,
		git:    git.NewClient(config.Path, config.SystemDir+".lock", config.Logger),
		config: config,
	}
}

// Initialize performs the necessary setup for the backend (mkdir, git init).
func (b *Backend) Initialize(ctx context.Context) error {
	if b.config.MustExist {
		info, err := os.Stat(b.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", b.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat data path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", b.Path)
		}
	}

	if err := os.MkdirAll(filepath.Join(b.Path, b.config.SystemDir), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if n, err := sweepTempFiles(b.Path); err != nil {
		return fmt.Errorf("failed to sweep temp files: %w", err)
	} else if n > 0 && b.config.Logger != nil {
		b.config.Logger.Warn("removed abandoned temp files", "count", n, "path", b.Path)
	}

	if !b.config.Versioned {
		return nil
	}

	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}

	wasNewRepo := false
	if !b.git.IsRepo() {
		if !b.config.AutoInit {
			return fmt.Errorf("path is not a git repository: %s", b.Path)
		}
		if err := b.git.Init(); err != nil {
			return fmt.Errorf("failed to git init: %w", err)
		}
		wasNewRepo = true
	}

	mod, err := b.ensureIgnore()
	if err != nil {
		return fmt.Errorf("failed to ensure .gitignore: %w", err)
	}

	if mod && wasNewRepo {
		if err := b.git.Add(".gitignore"); err != nil {
			return fmt.Errorf("failed to add .gitignore: %w", err)
		}
		if err := b.git.Commit(git.FormatCommitMessage(git.CommitTypeChore, "", "configure "+b.config.SystemDir+" ignore", "")); err != nil {
			return fmt.Errorf("failed to commit .gitignore: %w", err)
		}
	}

	return nil
}

// ensureIgnore keeps the system directory and lock file out of version control.
func (b *Backend) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(b.Path, ".gitignore")
	entries := []string{b.config.SystemDir + "/", b.config.SystemDir + ".lock"}

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	present := make(map[string]bool)
	for _, line := range strings.Split(string(content), "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return false, nil
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}
	if _, err := f.WriteString(strings.Join(missing, "\n") + "\n"); err != nil {
		return false, err
	}

	return true, nil
}

// Filename returns the file name that stores key.
func (b *Backend) Filename(key string) string {
	return key + b.config.Ext
}

func (b *Backend) fullPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(b.Path, b.Filename(key)), nil
}

// Get implements slot.Backend.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := b.fullPath(key)
	if err != nil {
		return nil, err
	}
	// os.ErrNotExist wraps io/fs.ErrNotExist, which is slot.ErrNotExist.
	return os.ReadFile(path)
}

// Set implements slot.Backend.
//
// Workflow:
//  1. Write the value atomically (temp file + rename).
//  2. (If versioned) 'git add' and 'git commit' with the change reason from ctx.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	path, err := b.fullPath(key)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(path, value, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	b.recordWrite()

	return b.commit(ctx, b.Filename(key))
}

// Delete implements slot.Backend.
func (b *Backend) Delete(ctx context.Context, key string) error {
	path, err := b.fullPath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return b.commit(ctx, b.Filename(key))
}

func (b *Backend) commit(ctx context.Context, filename string) error {
	if !b.config.Versioned {
		return nil
	}

	unlock, err := b.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if err := b.git.Add(filename); err != nil {
		return fmt.Errorf("failed to git add: %w", err)
	}

	status, err := b.git.Status(filename)
	if err != nil {
		return fmt.Errorf("failed to git status: %w", err)
	}
	if status == "" {
		// Identical content, nothing to record.
		return nil
	}

	reason, _ := ctx.Value(core.ChangeReasonKey).(string)
	if err := b.git.Commit(git.ReasonMessage(reason)); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}

// History returns the git log of key, newest first.
func (b *Backend) History(ctx context.Context, key string, limit int) ([]string, error) {
	if !b.config.Versioned {
		return nil, fmt.Errorf("history requires versioning")
	}
	return b.git.Log(b.Filename(key), limit)
}

var _ slot.Backend = (*Backend)(nil)
var _ slot.Watcher = (*Backend)(nil)
