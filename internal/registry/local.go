package registry

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/saravenpi/knot/internal/config"
	"github.com/saravenpi/knot/internal/fsutil"
	"github.com/saravenpi/knot/internal/model"
	shutil "github.com/termie/go-shutil"
)

// Local is the `source=Local` registry, backed by a workspace's
// packages/ directory (§4.4). It scans eagerly on construction and
// caches the result, the same eager-discover-then-serve shape as
// original_source's LocalPackageRegistry.
type Local struct {
	root string

	mu       sync.RWMutex
	versions map[model.PackageId][]model.PackageVersion
}

// NewLocal builds a Local registry rooted at <workspaceRoot>/packages
// and performs its initial scan.
func NewLocal(packagesDir string) (*Local, *model.Error) {
	l := &Local{root: packagesDir, versions: map[model.PackageId][]model.PackageVersion{}}
	if err := l.rescan(); err != nil {
		return nil, err
	}
	return l, nil
}

// Rescan re-reads packagesDir, dropping any previously cached entries.
// Exposed so long-lived CLI invocations (e.g. `link --watch`, not
// itself in scope) can refresh without reconstructing the registry.
func (l *Local) Rescan() *model.Error {
	return l.rescan()
}

func (l *Local) rescan() *model.Error {
	names, err := fsutil.Subdirectories(l.root)
	if err != nil {
		return model.IOError("scan", l.root, err)
	}

	fresh := map[model.PackageId][]model.PackageVersion{}
	for _, name := range names {
		dir := filepath.Join(l.root, name)
		pv, loadErr := l.loadOne(dir)
		if loadErr != nil {
			continue
		}
		fresh[pv.ID] = append(fresh[pv.ID], pv)
	}

	l.mu.Lock()
	l.versions = fresh
	l.mu.Unlock()
	return nil
}

func (l *Local) loadOne(dir string) (model.PackageVersion, *model.Error) {
	path := filepath.Join(dir, "package.yml")
	if _, statErr := os.Stat(path); statErr != nil {
		path = filepath.Join(dir, "package.yaml")
		if _, statErr := os.Stat(path); statErr != nil {
			return model.PackageVersion{}, model.IOError("stat", path, statErr)
		}
	}

	pkg, cfgErr := config.LoadPackage(path)
	if cfgErr != nil {
		return model.PackageVersion{}, cfgErr
	}

	version, verr := model.ParseVersion(pkg.Version)
	if verr != nil {
		return model.PackageVersion{}, model.ConfigurationError("version", verr.Error(), "1.0.0")
	}

	deps, derr := parseDependencyList(pkg.Dependencies, false, false)
	if derr != nil {
		return model.PackageVersion{}, derr
	}
	devDeps, derr := parseDependencyList(pkg.DevDependencies, true, false)
	if derr != nil {
		return model.PackageVersion{}, derr
	}
	optDeps, derr := parseDependencyList(pkg.OptionalDependencies, false, true)
	if derr != nil {
		return model.PackageVersion{}, derr
	}
	peerDeps, derr := parseDependencyList(pkg.PeerDependencies, false, false)
	if derr != nil {
		return model.PackageVersion{}, derr
	}

	return model.PackageVersion{
		ID:           model.LocalPackageId(pkg.Name),
		Version:      version,
		Deps:         deps,
		DevDeps:      devDeps,
		OptionalDeps: optDeps,
		PeerDeps:     peerDeps,
		SourcePath:   dir,
		Metadata:     packageMetadataFrom(pkg),
	}, nil
}

func (l *Local) ListVersions(_ context.Context, id model.PackageId) ([]model.PackageVersion, *model.Error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	versions := l.versions[id]
	out := make([]model.PackageVersion, len(versions))
	copy(out, versions)
	return out, nil
}

func (l *Local) Metadata(ctx context.Context, id model.PackageId, v model.Version) (model.PackageMetadata, *model.Error) {
	versions, err := l.ListVersions(ctx, id)
	if err != nil {
		return model.PackageMetadata{}, err
	}
	for _, pv := range versions {
		if pv.Version.Equal(v) {
			return pv.Metadata, nil
		}
	}
	return model.PackageMetadata{}, model.PackageNotFoundError(id, []string{"local packages directory: " + l.root}, nil)
}

// Materialize places the package's tree at dest, preferring a symlink
// to the source and falling back to a recursive copy via
// github.com/termie/go-shutil on platforms without symlink support —
// the same fallback original_source's download_package documents for
// non-Unix targets (§4.4).
func (l *Local) Materialize(ctx context.Context, id model.PackageId, v model.Version, dest string) *model.Error {
	versions, err := l.ListVersions(ctx, id)
	if err != nil {
		return err
	}
	var source string
	for _, pv := range versions {
		if pv.Version.Equal(v) {
			source = pv.SourcePath
			break
		}
	}
	if source == "" {
		return model.PackageNotFoundError(id, []string{"local packages directory: " + l.root}, nil)
	}

	if rmErr := fsutil.RemoveTreeAtomic(dest); rmErr != nil {
		return model.IOError("remove", dest, rmErr)
	}
	if mkErr := fsutil.EnsureDir(filepath.Dir(dest)); mkErr != nil {
		return model.IOError("mkdir", filepath.Dir(dest), mkErr)
	}

	if symErr := os.Symlink(source, dest); symErr == nil {
		return nil
	}
	if copyErr := shutil.CopyTree(source, dest, nil); copyErr != nil {
		return model.IOError("copy", dest, copyErr)
	}
	return nil
}

func (l *Local) Search(_ context.Context, query string) ([]string, *model.Error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.versions))
	for id := range l.versions {
		names = append(names, id.Name)
	}
	sort.Strings(names)
	return bestMatches(query, names, 5), nil
}
