package resolver

import "github.com/saravenpi/knot/internal/model"

// constrain runs Phase 2 (§4.6): seed constraints from the root specs,
// then iterate a worklist unioning the applicable dependencies'
// requirements of every version that still satisfies the accumulated
// constraints, re-queueing any package whose constraint set is new.
func (r *Resolver) constrain(graph *model.DependencyGraph, rootDeps []model.DependencySpec) {
	var worklist []model.PackageId

	for _, spec := range rootDeps {
		if !spec.Applicable(r.Context) {
			continue
		}
		graph.AddConstraint(spec.ID, spec.Requirement)
		worklist = append(worklist, spec.ID)
	}

	for len(worklist) > 0 {
		id := worklist[0]
		worklist = worklist[1:]

		for _, version := range graph.Packages[id] {
			if !graph.SatisfiesAll(id, version.Version) {
				continue
			}
			for _, dep := range version.ApplicableDependencies(r.Context) {
				_, hadConstraint := graph.Constraints[dep.ID]
				graph.AddConstraint(dep.ID, dep.Requirement)
				if !hadConstraint {
					worklist = append(worklist, dep.ID)
				}
			}
		}
	}
}
