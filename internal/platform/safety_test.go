package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDataPath(t *testing.T) {
	t.Parallel()

	tempRoot := os.TempDir()
	devBase := filepath.Join(tempRoot, devDirName)

	tests := []struct {
		name      string
		userPath  string
		forceTemp bool
		expected  string
	}{
		{name: "normal mode current dir", userPath: ".", expected: "."},
		{name: "normal mode empty", userPath: "", expected: "."},
		{name: "normal mode specific path", userPath: "/some/path", expected: "/some/path"},
		{name: "dev mode empty path", userPath: "", forceTemp: true, expected: filepath.Join(devBase, "default")},
		{name: "dev mode current dir", userPath: ".", forceTemp: true, expected: filepath.Join(devBase, "default")},
		{name: "dev mode relative name", userPath: "my-notes", forceTemp: true, expected: filepath.Join(devBase, "my-notes")},
		{name: "dev mode traversal", userPath: "../bad/path", forceTemp: true, expected: filepath.Join(devBase, "path")},
		{name: "dev mode temp dir passes through", userPath: filepath.Join(tempRoot, "my-test"), forceTemp: true, expected: filepath.Join(tempRoot, "my-test")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveDataPath(tt.userPath, tt.forceTemp))
		})
	}
}

func TestIsDevRun(t *testing.T) {
	assert.True(t, IsDevRun(), "tests run from a go test binary")
}
