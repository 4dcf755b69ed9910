package commands

import (
	"context"

	"github.com/saravenpi/knot/internal/model"
)

// Why resolves appName and reports every dependency path from a direct
// dependency down to targetName (§4.8). An empty result means
// targetName is not in the resolved set reachable from appName.
func (rt *Runtime) Why(ctx context.Context, appName, targetName string) ([][]model.PackageId, *model.Error) {
	result, err := rt.Resolve(ctx, appName)
	if err != nil {
		return nil, err
	}

	resCtx := rt.Options.ResolutionContext()
	var paths [][]model.PackageId
	for _, spec := range rt.rootDeps(appName) {
		walkWhy(spec.ID, targetName, result.Resolved, resCtx, nil, map[model.PackageId]struct{}{}, &paths)
	}
	return paths, nil
}

func walkWhy(id model.PackageId, targetName string, resolved map[model.PackageId]model.PackageVersion, ctx model.ResolutionContext, path []model.PackageId, ancestors map[model.PackageId]struct{}, out *[][]model.PackageId) {
	pv, ok := resolved[id]
	if !ok {
		return
	}
	if _, onPath := ancestors[id]; onPath {
		return
	}

	path = append(path, id)
	if id.Name == targetName {
		found := make([]model.PackageId, len(path))
		copy(found, path)
		*out = append(*out, found)
	}

	childAncestors := make(map[model.PackageId]struct{}, len(ancestors)+1)
	for k := range ancestors {
		childAncestors[k] = struct{}{}
	}
	childAncestors[id] = struct{}{}

	for _, dep := range pv.ApplicableDependencies(ctx) {
		walkWhy(dep.ID, targetName, resolved, ctx, path, childAncestors, out)
	}
}
