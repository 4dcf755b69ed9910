package resolver

import "github.com/saravenpi/knot/internal/model"

// topoOrder runs Phase 4 (§4.6): Kahn's algorithm over the edge set
// {(pkg -> dep) | pkg in resolved, dep in applicable_deps(pkg)}, then
// reverses the peel order so the result lists each package's
// dependencies before the package itself. Every resolved node
// participates, including leaves with no outgoing edges. The initial
// queue and each node's neighbor list are seeded from a sorted id list
// so the result is a deterministic function of the resolved set, not
// of map iteration order (§5).
func (r *Resolver) topoOrder(resolved map[model.PackageId]model.PackageVersion) ([]model.PackageId, *model.Error) {
	inDegree := map[model.PackageId]int{}
	edges := map[model.PackageId][]model.PackageId{}
	allNodes := map[model.PackageId]struct{}{}

	ids := make([]model.PackageId, 0, len(resolved))
	for id := range resolved {
		ids = append(ids, id)
	}
	sortPackageIds(ids)

	for _, id := range ids {
		allNodes[id] = struct{}{}
		if _, ok := inDegree[id]; !ok {
			inDegree[id] = 0
		}

		deps := resolved[id].ApplicableDependencies(r.Context)
		depIds := make([]model.PackageId, 0, len(deps))
		for _, d := range deps {
			depIds = append(depIds, d.ID)
		}
		sortPackageIds(depIds)
		edges[id] = depIds

		for _, depID := range depIds {
			allNodes[depID] = struct{}{}
			inDegree[depID]++
		}
	}

	var queue []model.PackageId
	roots := make([]model.PackageId, 0, len(allNodes))
	for node := range allNodes {
		roots = append(roots, node)
	}
	sortPackageIds(roots)
	for _, node := range roots {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	var result []model.PackageId
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range edges[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
			}
		}
	}

	if len(result) != len(allNodes) {
		cycle := r.extractCycle(resolved, result)
		return nil, model.CircularDependencyError(cycle)
	}

	// Kahn's algorithm as run above peels off nodes with no remaining
	// incoming pkg->dep edge first, i.e. the least-depended-on packages,
	// so result is dependents-first. §8's topological soundness wants
	// the opposite (index(pkg) > index(dep), dependencies before their
	// dependents), so reverse it before returning.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return result, nil
}

// extractCycle runs a DFS from every resolved node to find one path
// that loops back on itself, closing the cycle at the repeated node
// (§4.6 Phase 4).
func (r *Resolver) extractCycle(resolved map[model.PackageId]model.PackageVersion, completed []model.PackageId) []model.PackageId {
	visited := map[model.PackageId]struct{}{}
	onStack := map[model.PackageId]struct{}{}
	var path []model.PackageId

	ids := make([]model.PackageId, 0, len(resolved))
	for id := range resolved {
		ids = append(ids, id)
	}
	sortPackageIds(ids)

	var dfs func(id model.PackageId) []model.PackageId
	dfs = func(id model.PackageId) []model.PackageId {
		visited[id] = struct{}{}
		onStack[id] = struct{}{}
		path = append(path, id)

		version, ok := resolved[id]
		if ok {
			for _, dep := range version.ApplicableDependencies(r.Context) {
				if _, seen := resolved[dep.ID]; !seen {
					continue
				}
				if _, seen := visited[dep.ID]; !seen {
					if cycle := dfs(dep.ID); cycle != nil {
						return cycle
					}
				} else if _, onPath := onStack[dep.ID]; onPath {
					for i, p := range path {
						if p == dep.ID {
							cycle := append([]model.PackageId(nil), path[i:]...)
							return append(cycle, dep.ID)
						}
					}
				}
			}
		}

		delete(onStack, id)
		path = path[:len(path)-1]
		return nil
	}

	for _, id := range ids {
		if _, seen := visited[id]; !seen {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
