package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFileName is the optional per-directory configuration file.
const ConfigFileName = "jotter.yaml"

// ErrRootNotFound is returned by FindRoot when no data directory marker
// exists between startDir and the filesystem root.
var ErrRootNotFound = errors.New("jotter root not found")

// FindRoot recursively looks upwards for a data directory indicator:
// a .jotter directory or a jotter.yaml file. It returns the absolute path
// of the first directory that has one.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for dir := abs; ; {
		if hasFile(dir, ".jotter") || hasFile(dir, ConfigFileName) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
