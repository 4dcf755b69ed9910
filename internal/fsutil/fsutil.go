// Package fsutil collects the filesystem primitives shared by the
// workspace scanner, the local registry and the resolution cache: a
// directory-walk helper and an atomic write-temp-then-rename helper.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
)

// Subdirectories lists the immediate child directories of root, sorted
// by godirwalk's default lexical ordering. Used by the workspace
// scanner to enumerate `packages/*` and `apps/*`, and by the local
// registry to enumerate package directories (§4.3, §4.4) — the same
// shallow-scan role the teacher's `gps` local analyzer plays over a
// `GOPATH/src` tree with the same library.
func Subdirectories(root string) ([]string, error) {
	entries, err := godirwalk.ReadDirents(root, nil)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading directory %s", root)
	}
	entries.Sort()

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

// WriteFileAtomic writes data to path by writing to a temp file in the
// same directory and renaming over the destination, so a crash mid-write
// never leaves a truncated file in place (§4.5's disk-tier guarantee).
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "creating temp file in %s", dir)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrapf(err, "writing temp file %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "closing temp file %s", tmpPath)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "chmod temp file %s", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "renaming %s to %s", tmpPath, path)
	}
	return nil
}

// EnsureDir creates dir (and any missing parents) if it doesn't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}
	return nil
}

// RemoveTreeAtomic removes an existing destination tree before a fresh
// materialize, reporting a descriptive error rather than a bare
// os.RemoveAll failure (§4.4 "overwriting... atomically enough that
// partial state is detectable on failure").
func RemoveTreeAtomic(path string) error {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "stat %s", path)
	}
	if err := os.RemoveAll(path); err != nil {
		return errors.Wrapf(err, "removing existing tree %s", path)
	}
	return nil
}
