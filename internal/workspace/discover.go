// Package workspace loads a project's full tree of configuration
// (the root document, its apps and its packages) and answers the
// derived queries over that tree (§4.3).
package workspace

import (
	"os"
	"path/filepath"

	"github.com/saravenpi/knot/internal/model"
)

// manifestNames are tried in order at each directory level, mirroring
// the teacher's findProjectRoot walk over a single candidate filename
// generalized to this project's two accepted extensions.
var manifestNames = []string{"knot.yml", "knot.yaml"}

// FindProjectRoot searches from the starting directory upwards for a
// knot.yml/knot.yaml, stopping at the filesystem root (§4.3).
func FindProjectRoot(from string) (string, *model.Error) {
	dir, err := filepath.Abs(from)
	if err != nil {
		return "", model.IOError("abs", from, err)
	}
	for {
		for _, name := range manifestNames {
			candidate := filepath.Join(dir, name)
			if _, statErr := os.Stat(candidate); statErr == nil {
				return dir, nil
			} else if !os.IsNotExist(statErr) {
				return "", model.IOError("stat", candidate, statErr)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", model.ConfigurationError("", "could not find a knot.yml in this directory or any parent", "knot init")
		}
		dir = parent
	}
}

// manifestPath returns the first existing candidate name under dir,
// or "" if none exist.
func manifestPath(dir string, names ...string) string {
	for _, name := range names {
		p := filepath.Join(dir, name)
		if exists(p) {
			return p
		}
	}
	return ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
