// Package lockfile implements the `knot.lock` document supplemented in
// SPEC_FULL.md §9: a TOML serialization of a resolved dependency set,
// grounded on the teacher's own Gopkg.lock idiom (`lock.go`, `toml.go`)
// adapted from Go import paths/revisions to knot's package/version/
// source shape.
package lockfile

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sort"

	"github.com/pelletier/go-toml"

	"github.com/saravenpi/knot/internal/fsutil"
	"github.com/saravenpi/knot/internal/model"
)

// FileName is the on-disk name of the lock document, which Install
// writes in the app's own directory, next to its app.yml.
const FileName = "knot.lock"

// rawLock is the TOML document shape. Fields are exported and tagged
// the way the teacher's rawLock/lockedDep pair is, so the file reads
// like a hand-authored TOML document rather than a Go struct dump.
type rawLock struct {
	Version  int            `toml:"version"`
	Packages []rawLockedPkg `toml:"package"`
}

type rawLockedPkg struct {
	Name      string `toml:"name"`
	Source    string `toml:"source"`
	Registry  string `toml:"registry,omitempty"`
	Version   string `toml:"version"`
	Integrity string `toml:"integrity,omitempty"`
}

const lockVersion = 1

// Document renders result's resolved set into the canonical TOML bytes
// a knot.lock file holds, sorted by (name, source) for determinism —
// the lock file must not churn when the same set resolves twice.
func Document(result model.ResolutionResult) ([]byte, error) {
	raw := rawLock{
		Version:  lockVersion,
		Packages: make([]rawLockedPkg, 0, len(result.Resolved)),
	}

	for id, pv := range result.Resolved {
		raw.Packages = append(raw.Packages, rawLockedPkg{
			Name:      id.Name,
			Source:    id.Source.String(),
			Registry:  id.RegistryID,
			Version:   pv.Version.String(),
			Integrity: pv.Metadata.Integrity,
		})
	}

	sort.Slice(raw.Packages, func(i, j int) bool {
		if raw.Packages[i].Name != raw.Packages[j].Name {
			return raw.Packages[i].Name < raw.Packages[j].Name
		}
		return raw.Packages[i].Source < raw.Packages[j].Source
	})

	return toml.Marshal(raw)
}

// Hash is the SHA-256 of a lock document's canonical bytes, the value
// stored in ResolutionResult.LockfileHash (§9).
func Hash(document []byte) string {
	sum := sha256.Sum256(document)
	return hex.EncodeToString(sum[:])
}

// Write renders result and writes it to path, returning the document
// hash so the caller can stamp ResolutionResult.LockfileHash.
func Write(path string, result model.ResolutionResult) (string, *model.Error) {
	document, err := Document(result)
	if err != nil {
		return "", model.InternalError("failed to serialize "+FileName, err)
	}
	if writeErr := fsutil.WriteFileAtomic(path, document, 0o644); writeErr != nil {
		return "", model.IOError("write", path, writeErr)
	}
	return Hash(document), nil
}

// Read parses a knot.lock document back into the resolved package set
// it describes. Packages are keyed the same way the resolver keys
// them, so a read-back lock can be compared directly against a fresh
// ResolutionResult.Resolved.
func Read(path string) (map[model.PackageId]model.PackageVersion, *model.Error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, model.IOError("read", path, err)
	}

	var raw rawLock
	if err := toml.Unmarshal(content, &raw); err != nil {
		return nil, model.ConfigurationError(FileName, "failed to parse "+path+": "+err.Error(), "[[package]]\nname = \"utils\"\nversion = \"1.0.0\"")
	}

	resolved := make(map[model.PackageId]model.PackageVersion, len(raw.Packages))
	for _, pkg := range raw.Packages {
		version, versionErr := model.ParseVersion(pkg.Version)
		if versionErr != nil {
			return nil, model.ConfigurationError(FileName, "invalid version for "+pkg.Name+": "+versionErr.Error(), "1.0.0")
		}

		var id model.PackageId
		if pkg.Source == model.SourceRemote.String() {
			id = model.RemotePackageId(pkg.Name, pkg.Registry)
		} else {
			id = model.LocalPackageId(pkg.Name)
		}

		resolved[id] = model.PackageVersion{
			ID:       id,
			Version:  version,
			Metadata: model.PackageMetadata{Integrity: pkg.Integrity},
		}
	}

	return resolved, nil
}
