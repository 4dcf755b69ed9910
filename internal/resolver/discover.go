package resolver

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/saravenpi/knot/internal/model"
)

// discover runs Phase 1 (§4.6): breadth-first traversal of the
// implicit graph, fetching every unseen package's versions from its
// registry and enqueueing the applicable dependencies of every
// candidate version that might satisfy the requirement that queued it.
//
// Each BFS level is fetched as one wave: every still-unseen spec
// queued by the previous level is resolved to its registry response
// concurrently via discoverMany, matching §5's requirement that Phase
// 1's network work be allowed to overlap while the phase as a whole
// still completes before Phase 2 begins.
func (r *Resolver) discover(ctx context.Context, graph *model.DependencyGraph, rootDeps []model.DependencySpec) *model.Error {
	discovered := map[model.PackageId]struct{}{}
	wave := dedupeSpecs(r.applicableSpecs(rootDeps), discovered)

	for len(wave) > 0 {
		ids := make([]model.PackageId, len(wave))
		for i, spec := range wave {
			ids[i] = spec.ID
		}

		fetched, err := r.discoverMany(ctx, ids)
		if err != nil {
			return err
		}

		var next []model.DependencySpec
		for _, spec := range wave {
			versions := fetched[spec.ID]
			if len(versions) == 0 {
				suggestions := r.findSimilarPackages(ctx, spec.ID.Name)
				return model.PackageNotFoundError(spec.ID, []string{"local packages", "remote registry"}, suggestions)
			}
			graph.Packages[spec.ID] = versions

			for _, version := range versions {
				if !spec.Requirement.Matches(version.Version) {
					continue
				}
				for _, dep := range version.ApplicableDependencies(r.Context) {
					if _, seen := discovered[dep.ID]; !seen {
						next = append(next, dep)
					}
				}
			}
		}

		wave = dedupeSpecs(next, discovered)
	}

	return nil
}

// applicableSpecs filters specs to those admitted by the resolver's
// context (§4.1 applicability rule).
func (r *Resolver) applicableSpecs(specs []model.DependencySpec) []model.DependencySpec {
	var out []model.DependencySpec
	for _, spec := range specs {
		if spec.Applicable(r.Context) {
			out = append(out, spec)
		}
	}
	return out
}

// dedupeSpecs drops specs already present in discovered, marking each
// survivor as seen so later waves don't re-queue it.
func dedupeSpecs(specs []model.DependencySpec, discovered map[model.PackageId]struct{}) []model.DependencySpec {
	var out []model.DependencySpec
	for _, spec := range specs {
		if _, seen := discovered[spec.ID]; seen {
			continue
		}
		discovered[spec.ID] = struct{}{}
		out = append(out, spec)
	}
	return out
}

// discoverVersions fetches id's candidate versions from the registry
// that owns its source. It's the suspension point discoverMany fans
// out across one BFS wave.
func (r *Resolver) discoverVersions(ctx context.Context, id model.PackageId) ([]model.PackageVersion, *model.Error) {
	return r.registryFor(id).ListVersions(ctx, id)
}

// discoverMany fetches versions for several ids concurrently, fanning
// out with errgroup and stopping at the first failure the way the
// teacher's gps solver parallelizes per-project network fetches.
func (r *Resolver) discoverMany(ctx context.Context, ids []model.PackageId) (map[model.PackageId][]model.PackageVersion, *model.Error) {
	results := make(map[model.PackageId][]model.PackageVersion, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	var firstErr *model.Error
	for _, id := range ids {
		id := id
		g.Go(func() error {
			versions, err := r.discoverVersions(gctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return err
			}
			results[id] = versions
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, model.InternalError("concurrent discovery failed", err)
	}
	return results, nil
}

// findSimilarPackages merges fuzzy-match suggestions from both
// registries, limited to five (§4.6 Phase 1 failure detail).
func (r *Resolver) findSimilarPackages(ctx context.Context, query string) []string {
	var similar []string
	if names, err := r.Local.Search(ctx, query); err == nil {
		similar = append(similar, names...)
	}
	if names, err := r.Remote.Search(ctx, query); err == nil {
		similar = append(similar, names...)
	}
	if len(similar) > 5 {
		similar = similar[:5]
	}
	return similar
}
