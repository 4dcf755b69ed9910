package link

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/saravenpi/knot/internal/fsutil"
	"github.com/saravenpi/knot/internal/model"
	"github.com/saravenpi/knot/internal/registry"
)

// Engine materializes a resolved dependency set into an app's
// knot_packages directory and keeps its tsconfig.json compiler-paths
// in sync (§4.7).
type Engine struct {
	Local       registry.Registry
	Remote      registry.Registry
	UseSymlinks bool
}

func New(local, remote registry.Registry, useSymlinks bool) *Engine {
	return &Engine{Local: local, Remote: remote, UseSymlinks: useSymlinks}
}

// Link applies the full procedure of §4.7 to one app: recreate its
// knot_packages directory, materialize every resolved package into it,
// then merge the corresponding aliases into tsconfig.json.
//
// A failed materialization aborts before the config file is touched,
// leaving the link directory consistent-but-incomplete and the
// originating registry error surfaced, per §4.7's failure rule.
func (e *Engine) Link(ctx context.Context, appDir string, resolved map[model.PackageId]model.PackageVersion, tsAliasPrefix string) *model.Error {
	linkDir := filepath.Join(appDir, "knot_packages")

	if err := fsutil.RemoveTreeAtomic(linkDir); err != nil {
		return model.IOError("remove", linkDir, err)
	}
	if err := fsutil.EnsureDir(linkDir); err != nil {
		return model.IOError("mkdir", linkDir, err)
	}

	if err := e.materializeAll(ctx, resolved, linkDir); err != nil {
		return err
	}

	if tsAliasPrefix == "" {
		return nil
	}

	aliases, err := e.aliasesFor(resolved, tsAliasPrefix)
	if err != nil {
		return err
	}
	return e.writeTsconfig(filepath.Join(appDir, "tsconfig.json"), aliases, tsAliasPrefix)
}

// materializeAll places every resolved package into its
// linkDir/<name> destination, fanning the work out across an errgroup
// (§5 "link-engine file I/O" is a suspension point; spec.md §9
// explicitly anticipates async I/O here).
func (e *Engine) materializeAll(ctx context.Context, resolved map[model.PackageId]model.PackageVersion, linkDir string) *model.Error {
	g, gctx := errgroup.WithContext(ctx)

	for id, pv := range resolved {
		id, pv := id, pv
		g.Go(func() error {
			dest := filepath.Join(linkDir, id.Name)
			reg := e.Local
			if id.IsRemote() {
				reg = e.Remote
			}
			if err := reg.Materialize(gctx, id, pv.Version, dest); err != nil {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if merr, ok := err.(*model.Error); ok {
			return merr
		}
		return model.InternalError("materialization failed", err)
	}
	return nil
}

// aliasesFor computes the package-alias set for local dependencies
// (§4.7 step 3): <prefix><name>, validated against the identifier and
// reserved-word rules. Remote (@-prefixed) packages never contribute
// an alias.
func (e *Engine) aliasesFor(resolved map[model.PackageId]model.PackageVersion, prefix string) (map[string]string, *model.Error) {
	aliases := make(map[string]string, len(resolved))
	for id := range resolved {
		if id.IsRemote() || strings.HasPrefix(id.Name, "@") {
			continue
		}
		alias := prefix + id.Name
		if err := validateAlias(alias); err != nil {
			return nil, err
		}
		aliases[alias] = "./knot_packages/" + id.Name + "/*"
	}
	return aliases, nil
}

// writeTsconfig loads path if it exists (tolerating comments and
// trailing commas), otherwise starts from the default skeleton, merges
// in aliases and the managed include entries, and writes the result
// back with stable pretty-printing (§4.7 step 4). prefix is the app's
// configured ts alias prefix, used to recognize and purge this app's
// own prior entries regardless of what that prefix is.
func (e *Engine) writeTsconfig(path string, aliases map[string]string, prefix string) *model.Error {
	var doc map[string]interface{}

	if content, readErr := os.ReadFile(path); readErr == nil {
		parsed, parseErr := parseTsconfig(content)
		if parseErr != nil {
			return model.ConfigurationError("tsconfig.json", "failed to parse "+path+": "+parseErr.Error(), "{}")
		}
		doc = parsed
	} else if os.IsNotExist(readErr) {
		doc = defaultTsconfig()
	} else {
		return model.IOError("read", path, readErr)
	}

	mergeAliases(doc, aliases, prefix)
	mergeInclude(doc)

	out, marshalErr := marshalTsconfig(doc)
	if marshalErr != nil {
		return model.InternalError("failed to serialize tsconfig.json", marshalErr)
	}
	if writeErr := fsutil.WriteFileAtomic(path, out, 0o644); writeErr != nil {
		return model.IOError("write", path, writeErr)
	}
	return nil
}
