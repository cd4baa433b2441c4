package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/core"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, Config{}, cfg)
		assert.Empty(t, cfg.Options())
	})

	t.Run("round trip", func(t *testing.T) {
		dir := t.TempDir()
		versioning := false
		want := Config{Adapter: AdapterSQLite, Format: "yaml", TwoPhase: true, Versioning: &versioning}

		require.NoError(t, SaveConfig(dir, want))
		got, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		o := apply(got.Options())
		assert.Equal(t, AdapterSQLite, o.adapter)
		assert.Equal(t, "yaml", o.format)
		assert.Equal(t, core.CommitAfterPersist, o.mode)
		require.NotNil(t, o.versioning)
		assert.False(t, *o.versioning)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("adapter: [oops"), 0644))
		_, err := LoadConfig(dir)
		assert.Error(t, err)
	})

	t.Run("later options win", func(t *testing.T) {
		cfg := Config{Adapter: AdapterBadger}
		o := apply(append(cfg.Options(), WithAdapter(AdapterMemory)))
		assert.Equal(t, AdapterMemory, o.adapter)
	})
}
