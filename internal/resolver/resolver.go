// Package resolver implements the five-phase dependency solver of
// §4.6: discover, constrain, select, order, validate. Each phase is
// its own file; Resolve wires them together and owns the cache probe.
package resolver

import (
	"context"

	"github.com/saravenpi/knot/internal/cache"
	"github.com/saravenpi/knot/internal/model"
	"github.com/saravenpi/knot/internal/registry"
)

// Resolver ties the two package registries and the resolution cache
// to one ResolutionContext, the same shape as original_source's
// DependencyResolver struct.
type Resolver struct {
	Local   registry.Registry
	Remote  registry.Registry
	Cache   *cache.Cache
	Context model.ResolutionContext

	// Now supplies unix-second timestamps for cache bookkeeping; tests
	// substitute a fixed clock to keep fingerprints and cache entries
	// reproducible.
	Now func() int64
}

func New(local, remote registry.Registry, c *cache.Cache, ctx model.ResolutionContext, now func() int64) *Resolver {
	return &Resolver{Local: local, Remote: remote, Cache: c, Context: ctx, Now: now}
}

// Resolve runs the full five-phase pipeline for rootDeps, probing and
// populating the cache around it (§4.6, §5 "cache hit is observed
// before any network I/O").
func (r *Resolver) Resolve(ctx context.Context, rootDeps []model.DependencySpec) (model.ResolutionResult, *model.Error) {
	request := model.ResolutionRequest{
		Dependencies: rootDeps,
		Context:      r.Context,
	}
	key := request.Fingerprint()
	now := r.Now()

	if cached, ok, cacheErr := r.Cache.Get(key, now); cacheErr == nil && ok {
		return cached, nil
	}

	graph := model.NewDependencyGraph()

	if err := r.discover(ctx, graph, rootDeps); err != nil {
		return model.ResolutionResult{}, err
	}

	r.constrain(graph, rootDeps)

	resolved, err := r.selectAll(graph)
	if err != nil {
		return model.ResolutionResult{}, err
	}

	order, err := r.topoOrder(resolved)
	if err != nil {
		return model.ResolutionResult{}, err
	}

	warnings := r.generateWarnings(resolved)

	result := model.ResolutionResult{
		Resolved: resolved,
		Order:    order,
		Warnings: warnings,
	}

	if putErr := r.Cache.Put(key, result, now); putErr != nil {
		result.Warnings = append(result.Warnings, "cache write failed: "+putErr.Error())
	}

	return result, nil
}

// registryFor picks the registry that owns id's source (§4.4).
func (r *Resolver) registryFor(id model.PackageId) registry.Registry {
	if id.IsRemote() {
		return r.Remote
	}
	return r.Local
}
