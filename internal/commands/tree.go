package commands

import (
	"context"

	"github.com/saravenpi/knot/internal/model"
)

// TreeNode is one entry in the dependency tree printed by the `tree`
// intent: a resolved package plus its own resolved dependencies.
type TreeNode struct {
	ID       model.PackageId
	Version  model.Version
	Children []*TreeNode
}

// Tree resolves appName and renders its dependency tree rooted at the
// app's own direct dependencies (§4.8 "for tree/why/outdated queries
// the resolver without materializing"). Shared dependencies appear
// once per path that reaches them, matching how `npm ls`-style tools
// render a tree; an ancestor-path guard prevents infinite recursion
// should a cycle ever slip past the resolver's own Phase 4 check.
func (rt *Runtime) Tree(ctx context.Context, appName string) ([]*TreeNode, *model.Error) {
	result, err := rt.Resolve(ctx, appName)
	if err != nil {
		return nil, err
	}

	resCtx := rt.Options.ResolutionContext()
	roots := rt.rootDeps(appName)
	nodes := make([]*TreeNode, 0, len(roots))
	for _, spec := range roots {
		node := buildTreeNode(spec.ID, result.Resolved, resCtx, map[model.PackageId]struct{}{})
		if node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

func buildTreeNode(id model.PackageId, resolved map[model.PackageId]model.PackageVersion, ctx model.ResolutionContext, ancestors map[model.PackageId]struct{}) *TreeNode {
	pv, ok := resolved[id]
	if !ok {
		return nil
	}
	if _, onPath := ancestors[id]; onPath {
		return &TreeNode{ID: id, Version: pv.Version}
	}

	childAncestors := make(map[model.PackageId]struct{}, len(ancestors)+1)
	for k := range ancestors {
		childAncestors[k] = struct{}{}
	}
	childAncestors[id] = struct{}{}

	node := &TreeNode{ID: id, Version: pv.Version}
	for _, dep := range pv.ApplicableDependencies(ctx) {
		if child := buildTreeNode(dep.ID, resolved, ctx, childAncestors); child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}
