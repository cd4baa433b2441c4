package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/internal/platform"
	"github.com/aretw0/jotter/pkg/adapters/memory"
	"github.com/aretw0/jotter/pkg/adapters/slot"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/git"
)

func TestOpen_Adapters(t *testing.T) {
	for _, adapter := range []string{platform.AdapterFS, platform.AdapterSQLite, platform.AdapterBadger} {
		t.Run(adapter, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()

			store, err := platform.Open(ctx, dir, platform.WithAdapter(adapter), platform.WithVersioning(false))
			require.NoError(t, err)

			n, err := store.Create(ctx, core.Draft{Title: "A", Content: "x", Tags: []string{"work"}})
			require.NoError(t, err)
			require.NoError(t, store.Close())

			reopened, err := platform.Open(ctx, dir, platform.WithAdapter(adapter), platform.WithVersioning(false))
			require.NoError(t, err)
			defer reopened.Close()

			found, err := reopened.FindByID(n.ID)
			require.NoError(t, err)
			assert.Equal(t, n, found)
		})
	}
}

func TestOpen_FSLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := platform.Open(ctx, dir, platform.WithFormat("yaml"), platform.WithVersioning(false))
	require.NoError(t, err)
	_, err = store.Create(ctx, core.Draft{Title: "A", Content: "x"})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "notes.yaml"))
	assert.DirExists(t, filepath.Join(dir, ".jotter"))

	root, err := platform.FindRoot(filepath.Join(dir, ".jotter"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(dir), filepath.Clean(root))
}

func TestOpen_Versioned(t *testing.T) {
	if !git.IsInstalled() {
		t.Skip("git not installed")
	}

	ctx := context.Background()
	dir := t.TempDir()

	store, err := platform.Open(ctx, dir, platform.WithVersioning(true))
	require.NoError(t, err)

	n, err := store.Create(ctx, core.Draft{Title: "A", Content: "x"})
	require.NoError(t, err)
	_, err = store.Comment(ctx, n.ID, "looks good")
	require.NoError(t, err)

	entries, err := platform.History(ctx, store, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0], "update note")
	assert.Contains(t, entries[1], "create note")

	// Reopening without an explicit setting detects the repository.
	reopened, err := platform.Open(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, reopened.Delete(ctx, n.ID))

	entries, err = platform.History(ctx, reopened, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestHistory_Unsupported(t *testing.T) {
	ctx := context.Background()
	store, err := platform.Open(ctx, "", platform.WithAdapter(platform.AdapterMemory))
	require.NoError(t, err)

	_, err = platform.History(ctx, store, 1)
	assert.ErrorIs(t, err, platform.ErrUnsupported)
}

func TestOpen_MemoryQuota(t *testing.T) {
	ctx := context.Background()
	store, err := platform.Open(ctx, "", platform.WithAdapter(platform.AdapterMemory), platform.WithQuota(8),
		platform.WithCommitMode(core.CommitAfterPersist))
	require.NoError(t, err)

	_, err = store.Create(ctx, core.Draft{Title: "too big for the quota", Content: "x"})
	assert.ErrorIs(t, err, core.ErrPersistence)
	assert.Zero(t, store.Len())
}

func TestOpen_ReadOnly(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"),
		[]byte(`[{"id":1,"title":"kept","content":"x","color":"#ffffff"}]`), 0644))

	store, err := platform.Open(ctx, dir, platform.WithReadOnly(true), platform.WithVersioning(false))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	_, err = store.Create(ctx, core.Draft{Title: "A", Content: "x"})
	assert.ErrorIs(t, err, core.ErrReadOnly)
	assert.NoDirExists(t, filepath.Join(dir, ".jotter"), "read-only open skips initialization")
}

func TestOpen_InjectedStorage(t *testing.T) {
	ctx := context.Background()
	backend := memory.New(memory.WithValue("notes", []byte(`[{"id":3,"title":"t","content":"c","color":"#ffffff"}]`)))

	store, err := platform.Open(ctx, "ignored", platform.WithStorage(slot.New(backend)))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := platform.Open(ctx, t.TempDir(), platform.WithAdapter("s3"))
	assert.Error(t, err)

	_, err = platform.Open(ctx, t.TempDir(), platform.WithFormat("toml"))
	assert.Error(t, err)

	_, err = platform.Open(ctx, t.TempDir(), platform.WithAdapter(platform.AdapterSQLite), platform.WithVersioning(true))
	assert.Error(t, err)

	_, err = platform.Open(ctx, filepath.Join(t.TempDir(), "missing"), platform.WithMustExist(true))
	assert.Error(t, err)
}
