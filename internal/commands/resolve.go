package commands

import (
	"context"

	"github.com/saravenpi/knot/internal/model"
)

// Resolve runs the resolver for appName without touching the link
// directory or the lock file — used directly by the `resolve` intent
// and as the shared first step of Install/Link/Tree/Why/Outdated
// (§4.8).
func (rt *Runtime) Resolve(ctx context.Context, appName string) (model.ResolutionResult, *model.Error) {
	deps := rt.rootDeps(appName)
	result, err := rt.resolver.Resolve(ctx, deps)
	if err != nil {
		return model.ResolutionResult{}, err
	}
	for _, w := range result.Warnings {
		rt.Log.Vlogf("%s", w)
	}
	return result, nil
}
