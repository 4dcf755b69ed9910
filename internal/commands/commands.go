// Package commands implements the thin workspace-command layer of
// §4.8 (C8): Install, Link, Resolve, Tree, Why, Outdated. Each command
// is a plain function over a *Runtime plus an app name — none of them
// touch os.Stdout directly, matching the teacher's own separation
// between cmd/dep's command interface and the dep.Project/gps.Solver
// logic it drives.
package commands

import (
	"context"
	"path/filepath"
	"time"

	"github.com/saravenpi/knot/internal/cache"
	"github.com/saravenpi/knot/internal/knotlog"
	"github.com/saravenpi/knot/internal/link"
	"github.com/saravenpi/knot/internal/model"
	"github.com/saravenpi/knot/internal/registry"
	"github.com/saravenpi/knot/internal/registryconfig"
	"github.com/saravenpi/knot/internal/resolver"
	"github.com/saravenpi/knot/internal/workspace"
)

// Options configures one Runtime, normally populated from cmd/knot's
// flags plus whatever knot.reg a project carries.
type Options struct {
	CacheRoot       string
	Strategy        model.Strategy
	AllowPrerelease bool
	IncludeDev      bool
	IncludeOptional bool
	Platform        string
	Arch            string
	Environment     string
	UseSymlinks     bool
	RegistryURL     string
	AuthToken       string
	Now             func() int64
}

// ResolutionContext builds the model.ResolutionContext this Options
// value implies: every field comes from Options except MaxDepth, which
// keeps model.DefaultResolutionContext's value.
func (o Options) ResolutionContext() model.ResolutionContext {
	ctx := model.DefaultResolutionContext()
	ctx.Strategy = o.Strategy
	ctx.AllowPrerelease = o.AllowPrerelease
	ctx.IncludeDev = o.IncludeDev
	ctx.IncludeOptional = o.IncludeOptional
	ctx.Platform = o.Platform
	ctx.Arch = o.Arch
	ctx.Environment = o.Environment
	return ctx
}

// Runtime wires a loaded workspace.Project to the resolver, link
// engine and cache it needs to serve every command in this package.
type Runtime struct {
	Project *workspace.Project
	Options Options
	Log     *knotlog.Logger

	local    *registry.Local
	remote   registry.Registry
	cache    *cache.Cache
	resolver *resolver.Resolver
	link     *link.Engine
}

// New builds a Runtime for project. A knot.reg file at the project
// root, if present, supplies the remote registry's URL/token when
// Options doesn't already set one.
func New(project *workspace.Project, opts Options, log *knotlog.Logger) (*Runtime, *model.Error) {
	if opts.Now == nil {
		opts.Now = defaultNow
	}
	if opts.CacheRoot == "" {
		opts.CacheRoot = filepath.Join(project.Root, ".knot", "cache")
	}

	if opts.RegistryURL == "" {
		regCfg, err := registryconfig.Read(filepath.Join(project.Root, registryconfig.FileName))
		if err != nil {
			return nil, err
		}
		if regCfg != nil {
			opts.RegistryURL = regCfg.URL
			if opts.AuthToken == "" {
				opts.AuthToken = regCfg.Token
			}
		}
	}

	local, err := registry.NewLocal(filepath.Join(project.Root, "packages"))
	if err != nil {
		return nil, err
	}

	var remote registry.Registry = emptyRemote{}
	if opts.RegistryURL != "" {
		remote = registry.NewRemote(opts.RegistryURL).WithAuth(opts.AuthToken)
	}

	c := cache.New(cache.Options{Root: opts.CacheRoot})
	res := resolver.New(local, remote, c, opts.ResolutionContext(), opts.Now)
	linkEngine := link.New(local, remote, opts.UseSymlinks)

	return &Runtime{
		Project:  project,
		Options:  opts,
		Log:      log,
		local:    local,
		remote:   remote,
		cache:    c,
		resolver: res,
		link:     linkEngine,
	}, nil
}

func (rt *Runtime) appDir(appName string) string {
	return filepath.Join(rt.Project.Root, "apps", appName)
}

func (rt *Runtime) registryFor(id model.PackageId) registry.Registry {
	if id.IsRemote() {
		return rt.remote
	}
	return rt.local
}

// rootDeps builds the root dependency spec list for appName from the
// workspace's effective package list (§4.3 dependencies_for): each
// named package is a wildcard-version root request, since app.yml's
// `packages` field names packages, not version constraints — those
// live in each package's own package.yml.
func (rt *Runtime) rootDeps(appName string) []model.DependencySpec {
	names := rt.Project.DependenciesFor(appName)
	out := make([]model.DependencySpec, 0, len(names))
	for _, name := range names {
		out = append(out, model.DependencySpec{
			ID:          model.NewPackageId(name),
			Requirement: model.Wildcard(),
		})
	}
	return out
}

func defaultNow() int64 {
	return time.Now().Unix()
}

// emptyRemote answers every call with "no versions"/"not found" so a
// project with no configured remote registry still resolves purely
// local dependency graphs without a nil registry panic.
type emptyRemote struct{}

func (emptyRemote) ListVersions(context.Context, model.PackageId) ([]model.PackageVersion, *model.Error) {
	return nil, nil
}
func (emptyRemote) Metadata(_ context.Context, id model.PackageId, _ model.Version) (model.PackageMetadata, *model.Error) {
	return model.PackageMetadata{}, model.PackageNotFoundError(id, nil, nil)
}
func (emptyRemote) Materialize(_ context.Context, id model.PackageId, _ model.Version, _ string) *model.Error {
	return model.PackageNotFoundError(id, nil, nil)
}
func (emptyRemote) Search(context.Context, string) ([]string, *model.Error) { return nil, nil }
