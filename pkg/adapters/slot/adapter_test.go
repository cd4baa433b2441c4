package slot_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/adapters/memory"
	"github.com/aretw0/jotter/pkg/adapters/slot"
	"github.com/aretw0/jotter/pkg/core"
)

func sampleNotes() []core.Note {
	return []core.Note{
		{
			ID:       1700000000000,
			Title:    "Groceries",
			Content:  "milk\n  eggs\n",
			Color:    core.DefaultColor,
			Tags:     []string{"home", "errands"},
			Comments: []core.Comment{{ID: 1700000000001, Text: "buy today"}},
		},
		{
			ID:       1700000000002,
			Title:    "Standup",
			Content:  "notes",
			Color:    core.ColorLightBlue,
			Tags:     []string{},
			Comments: []core.Comment{},
		},
	}
}

func TestAdapter_RoundTrip(t *testing.T) {
	for name, codec := range slot.DefaultCodecs() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a := slot.New(memory.New(), slot.WithCodec(codec))

			require.NoError(t, a.Write(ctx, sampleNotes()))
			got, err := a.Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, sampleNotes(), got)
		})
	}
}

func TestAdapter_WritesUnderNotesKey(t *testing.T) {
	ctx := context.Background()
	b := memory.New()
	a := slot.New(b, slot.WithCodec(slot.NewJSONCodec(false)))

	require.NoError(t, a.Write(ctx, sampleNotes()[1:]))

	raw, ok := b.Raw(slot.DefaultKey)
	require.True(t, ok)
	assert.JSONEq(t,
		`[{"id":1700000000002,"title":"Standup","content":"notes","color":"#cce5ff","tags":[],"comments":[]}]`,
		string(raw))
	assert.Equal(t, "notes", a.Key())
}

func TestAdapter_EmptyCollectionEncodesAsArray(t *testing.T) {
	ctx := context.Background()
	b := memory.New()
	a := slot.New(b)

	require.NoError(t, a.Write(ctx, nil))
	raw, _ := b.Raw("notes")
	assert.JSONEq(t, `[]`, string(raw))
}

func TestAdapter_ReadDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value []byte
		want  int
	}{
		{name: "missing key"},
		{name: "empty value", value: []byte("  ")},
		{name: "not json", value: []byte("{oops")},
		{name: "object instead of list", value: []byte(`{"id":1}`)},
		{name: "trailing garbage", value: []byte(`[] []`)},
		{name: "null", value: []byte(`null`)},
		{name: "null and empty entries", value: []byte(`[null, {}]`)},
		{name: "one entry without id", value: []byte(`[{"id":1,"title":"t","content":"c"},{"title":"u","content":"d"}]`)},
		{name: "trailing null entry", value: []byte(`[{"id":1,"title":"t","content":"c"}, null]`)},
		{name: "absent tags and comments", value: []byte(`[{"id":1,"title":"t","content":"c","color":"#ffffff"}]`), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []memory.Option
			if tt.value != nil {
				opts = append(opts, memory.WithValue("notes", tt.value))
			}
			a := slot.New(memory.New(opts...))

			got, err := a.Read(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestAdapter_NullSequencesNormalizeInStore(t *testing.T) {
	raw := []byte(`[{"id":5,"title":"t","content":"c","color":"#ffffff","tags":null,"comments":null}]`)
	store := core.NewStore(slot.New(memory.New(memory.WithValue("notes", raw))))

	notes := store.LoadAll(context.Background())
	require.Len(t, notes, 1)
	assert.NotNil(t, notes[0].Tags)
	assert.NotNil(t, notes[0].Comments)
	assert.Empty(t, notes[0].Tags)
}

type failingBackend struct {
	*memory.Backend
	getErr error
}

func (f failingBackend) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, f.getErr
}

func TestAdapter_ReadReportsBackendFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	a := slot.New(failingBackend{Backend: memory.New(), getErr: boom})

	_, err := a.Read(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestAdapter_WriteFailureIsPersistenceError(t *testing.T) {
	a := slot.New(memory.New(memory.WithQuota(4)))

	err := a.Write(context.Background(), sampleNotes())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrPersistence)
	assert.ErrorIs(t, err, memory.ErrQuotaExceeded)
}

func TestAdapter_Clear(t *testing.T) {
	ctx := context.Background()
	b := memory.New()
	a := slot.New(b)

	require.NoError(t, a.Write(ctx, sampleNotes()))
	require.NoError(t, a.Clear(ctx))

	_, ok := b.Raw("notes")
	assert.False(t, ok)
}

func TestAdapter_WatchUnsupported(t *testing.T) {
	_, err := slot.New(memory.New()).Watch(context.Background())
	assert.Error(t, err)
}

func TestAdapter_State(t *testing.T) {
	a := slot.New(memory.New(), slot.WithCodec(slot.NewYAMLCodec()), slot.WithKey("jots"))

	state := a.State().(slot.AdapterState)
	assert.Equal(t, "jots", state.Key)
	assert.Equal(t, "yaml", state.Codec)
	assert.Equal(t, "memory", state.BackendType)
	assert.IsType(t, memory.BackendState{}, state.Backend)
}
