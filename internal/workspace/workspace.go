package workspace

import (
	"path/filepath"

	"github.com/saravenpi/knot/internal/config"
	"github.com/saravenpi/knot/internal/fsutil"
	"github.com/saravenpi/knot/internal/model"
)

// Project is the fully-loaded workspace (§3 / §4.3): the root config,
// every `packages/*/package.yml` and every `apps/*/app.yml`.
type Project struct {
	Root     string
	Config   *config.Project
	Packages map[string]*config.Package
	Apps     map[string]*config.App
}

// Load discovers the project root starting at startDir and loads the
// full tree of configuration under it.
func Load(startDir string) (*Project, *model.Error) {
	root, err := FindProjectRoot(startDir)
	if err != nil {
		return nil, err
	}
	return LoadAt(root)
}

// LoadAt loads a project whose root is already known.
func LoadAt(root string) (*Project, *model.Error) {
	manifest := manifestPath(root, manifestNames...)
	if manifest == "" {
		return nil, model.ConfigurationError("", "could not find a knot.yml in "+root, "knot init")
	}
	projectCfg, err := config.LoadProject(manifest)
	if err != nil {
		return nil, err
	}

	packages, err := loadPackages(filepath.Join(root, "packages"))
	if err != nil {
		return nil, err
	}
	apps, err := loadApps(filepath.Join(root, "apps"))
	if err != nil {
		return nil, err
	}

	return &Project{
		Root:     root,
		Config:   projectCfg,
		Packages: packages,
		Apps:     apps,
	}, nil
}

func loadPackages(dir string) (map[string]*config.Package, *model.Error) {
	names, fsErr := fsutil.Subdirectories(dir)
	if fsErr != nil {
		return nil, model.IOError("scan", dir, fsErr)
	}
	out := make(map[string]*config.Package, len(names))
	for _, name := range names {
		path := firstExisting(filepath.Join(dir, name), "package.yml", "package.yaml")
		if path == "" {
			continue
		}
		pkg, err := config.LoadPackage(path)
		if err != nil {
			return nil, err
		}
		out[pkg.Name] = pkg
	}
	return out, nil
}

func loadApps(dir string) (map[string]*config.App, *model.Error) {
	names, fsErr := fsutil.Subdirectories(dir)
	if fsErr != nil {
		return nil, model.IOError("scan", dir, fsErr)
	}
	out := make(map[string]*config.App, len(names))
	for _, name := range names {
		path := firstExisting(filepath.Join(dir, name), "app.yml", "app.yaml")
		if path == "" {
			continue
		}
		app, err := config.LoadApp(path)
		if err != nil {
			return nil, err
		}
		out[app.Name] = app
	}
	return out, nil
}

func firstExisting(dir string, names ...string) string {
	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if exists(candidate) {
			return candidate
		}
	}
	return ""
}
