package commands

import (
	"context"

	"github.com/saravenpi/knot/internal/model"
)

// Link performs the §4.8 link intent: resolve (honoring the cache) and
// materialize into the app's knot_packages directory plus tsconfig.json,
// without writing a lock file.
func (rt *Runtime) Link(ctx context.Context, appName string) (model.ResolutionResult, *model.Error) {
	result, err := rt.Resolve(ctx, appName)
	if err != nil {
		return model.ResolutionResult{}, err
	}
	if err := rt.linkResolved(ctx, appName, result); err != nil {
		return model.ResolutionResult{}, err
	}
	return result, nil
}

func (rt *Runtime) linkResolved(ctx context.Context, appName string, result model.ResolutionResult) *model.Error {
	tsAliasPrefix := rt.Project.TsAliasFor(appName)
	return rt.link.Link(ctx, rt.appDir(appName), result.Resolved, tsAliasPrefix)
}
