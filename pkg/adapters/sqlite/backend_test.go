package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/adapters/slot"
	"github.com/aretw0/jotter/pkg/adapters/sqlite"
	"github.com/aretw0/jotter/pkg/core"
)

func openTemp(t *testing.T) (*sqlite.Backend, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.db")
	b, err := sqlite.Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b, path
}

func TestBackend_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	b, _ := openTemp(t)

	_, err := b.Get(ctx, "notes")
	assert.True(t, errors.Is(err, slot.ErrNotExist), "got %v", err)

	require.NoError(t, b.Set(ctx, "notes", []byte(`[]`)))
	require.NoError(t, b.Set(ctx, "notes", []byte(`[{"id":1}]`)))

	got, err := b.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	at, err := b.UpdatedAt(ctx, "notes")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), at, time.Minute)

	require.NoError(t, b.Delete(ctx, "notes"))
	require.NoError(t, b.Delete(ctx, "notes"))

	_, err = b.Get(ctx, "notes")
	assert.True(t, errors.Is(err, slot.ErrNotExist))

	state := b.State().(sqlite.BackendState)
	assert.Equal(t, 2, state.Writes)
}

func TestBackend_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	b, path := openTemp(t)

	storage := slot.New(b)
	notes := []core.Note{{ID: 7, Title: "t", Content: "c", Color: core.DefaultColor, Tags: []string{"a"}, Comments: []core.Comment{}}}
	require.NoError(t, storage.Write(ctx, notes))
	require.NoError(t, b.Close())

	reopened, err := sqlite.Open(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := slot.New(reopened).Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, notes, got)
}

func TestBackend_InMemory(t *testing.T) {
	ctx := context.Background()
	b, err := sqlite.Open(":memory:", nil)
	require.NoError(t, err)
	defer b.Close()

	store := core.NewStore(slot.New(b))
	store.LoadAll(ctx)

	n, err := store.Create(ctx, core.Draft{Title: "A", Content: "B"})
	require.NoError(t, err)

	fresh := core.NewStore(slot.New(b))
	loaded := fresh.LoadAll(ctx)
	require.Len(t, loaded, 1)
	assert.Equal(t, n.ID, loaded[0].ID)
}
