package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot(t *testing.T) {
	// base/
	//   notes/ (.jotter)
	//     subdir/nested/
	//   configured/ (jotter.yaml)
	//   empty/
	baseDir := t.TempDir()
	notesDir := filepath.Join(baseDir, "notes")
	nestedDir := filepath.Join(notesDir, "subdir", "nested")
	configured := filepath.Join(baseDir, "configured")
	emptyDir := filepath.Join(baseDir, "empty")

	require.NoError(t, os.MkdirAll(nestedDir, 0755))
	require.NoError(t, os.MkdirAll(emptyDir, 0755))
	require.NoError(t, os.MkdirAll(configured, 0755))
	require.NoError(t, os.Mkdir(filepath.Join(notesDir, ".jotter"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configured, ConfigFileName), []byte("adapter: fs\n"), 0644))

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{name: "start at root", startPath: notesDir, wantRoot: notesDir},
		{name: "start nested deeply", startPath: nestedDir, wantRoot: notesDir},
		{name: "config file marks root", startPath: configured, wantRoot: configured},
		{name: "no root found", startPath: emptyDir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if tt.wantErr {
				// A marker above the temp dir would be found instead; only
				// assert the error when nothing upstream has one.
				if err == nil {
					t.Skipf("found unrelated root %s above the temp dir", got)
				}
				assert.ErrorIs(t, err, ErrRootNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(tt.wantRoot), filepath.Clean(got))
		})
	}
}
