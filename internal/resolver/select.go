package resolver

import "github.com/saravenpi/knot/internal/model"

// selectAll runs Phase 3 (§4.6): visit packages in an order that
// prefers resolving a dependent after its dependencies (a quality
// heuristic for failure messages, not a correctness requirement), then
// pick one version per package under the active strategy.
func (r *Resolver) selectAll(graph *model.DependencyGraph) (map[model.PackageId]model.PackageVersion, *model.Error) {
	order := r.visitOrder(graph)
	resolved := make(map[model.PackageId]model.PackageVersion, len(order))

	for _, id := range order {
		version, err := r.selectVersion(graph, id)
		if err != nil {
			return nil, err
		}
		resolved[id] = version
	}
	return resolved, nil
}

// visitOrder runs a DFS over the first candidate version's deps,
// visiting dependencies before the package that declares them.
func (r *Resolver) visitOrder(graph *model.DependencyGraph) []model.PackageId {
	var order []model.PackageId
	visited := map[model.PackageId]struct{}{}

	ids := sortedPackageIds(graph.Packages)
	for _, id := range ids {
		r.visitForOrder(graph, id, visited, &order)
	}
	return order
}

func (r *Resolver) visitForOrder(graph *model.DependencyGraph, id model.PackageId, visited map[model.PackageId]struct{}, order *[]model.PackageId) {
	if _, seen := visited[id]; seen {
		return
	}
	visited[id] = struct{}{}

	if versions := graph.Packages[id]; len(versions) > 0 {
		for _, dep := range versions[0].ApplicableDependencies(r.Context) {
			if _, known := graph.Packages[dep.ID]; known {
				r.visitForOrder(graph, dep.ID, visited, order)
			}
		}
	}
	*order = append(*order, id)
}

// selectVersion picks the one version of id that satisfies every
// accumulated constraint, per the active strategy's rule (§4.6 table).
func (r *Resolver) selectVersion(graph *model.DependencyGraph, id model.PackageId) (model.PackageVersion, *model.Error) {
	versions := graph.Packages[id]
	constraints := graph.Constraints[id]

	var compatible []model.PackageVersion
	for _, v := range versions {
		if !graph.SatisfiesAll(id, v.Version) {
			continue
		}
		if v.Version.Prerelease() && !r.Context.AllowPrerelease {
			continue
		}
		compatible = append(compatible, v)
	}

	if len(compatible) == 0 {
		reqs := make([]string, len(constraints))
		for i, c := range constraints {
			reqs[i] = c.String()
		}
		return model.PackageVersion{}, model.VersionConflictError(id, reqs,
			"try relaxing version constraints or updating to compatible versions")
	}

	switch r.Context.Strategy {
	case model.Latest:
		return greatest(compatible), nil
	case model.Conservative:
		return least(compatible), nil
	case model.Strict:
		if len(constraints) == 1 && constraints[0].IsExactLiteral() {
			return compatible[0], nil
		}
		return model.PackageVersion{}, &model.Error{
			Kind:    model.ErrConfiguration,
			Message: "strict mode requires exact version specifications",
			Field:   "package: " + id.Name,
		}
	default: // Compatible
		return selectCompatible(compatible), nil
	}
}

func greatest(versions []model.PackageVersion) model.PackageVersion {
	best := versions[0]
	for _, v := range versions[1:] {
		if v.Version.GreaterThan(best.Version) {
			best = v
		}
	}
	return best
}

func least(versions []model.PackageVersion) model.PackageVersion {
	best := versions[0]
	for _, v := range versions[1:] {
		if v.Version.LessThan(best.Version) {
			best = v
		}
	}
	return best
}

// selectCompatible groups by (major, minor), picks the group with the
// greatest key, then the greatest patch within it (§4.6 Compatible).
func selectCompatible(versions []model.PackageVersion) model.PackageVersion {
	type key struct{ major, minor int64 }
	groups := map[key][]model.PackageVersion{}
	for _, v := range versions {
		k := key{v.Version.Major(), v.Version.Minor()}
		groups[k] = append(groups[k], v)
	}

	var bestKey key
	first := true
	for k := range groups {
		if first || k.major > bestKey.major || (k.major == bestKey.major && k.minor > bestKey.minor) {
			bestKey = k
			first = false
		}
	}

	return greatest(groups[bestKey])
}

func sortedPackageIds(packages map[model.PackageId][]model.PackageVersion) []model.PackageId {
	ids := make([]model.PackageId, 0, len(packages))
	for id := range packages {
		ids = append(ids, id)
	}
	sortPackageIds(ids)
	return ids
}
