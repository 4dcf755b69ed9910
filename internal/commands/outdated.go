package commands

import (
	"context"

	"github.com/saravenpi/knot/internal/model"
)

// OutdatedEntry reports one resolved package whose current pick is not
// the newest version its own registry offers.
type OutdatedEntry struct {
	ID      model.PackageId
	Current model.Version
	Latest  model.Version
}

// Outdated resolves appName under the configured strategy, then for
// each resolved package asks its registry for every version and
// reports any whose greatest available version exceeds the one
// currently picked (§4.8). It never re-resolves under a different
// strategy: "latest available" is read directly off the registry, not
// derived from a second solve.
func (rt *Runtime) Outdated(ctx context.Context, appName string) ([]OutdatedEntry, *model.Error) {
	result, err := rt.Resolve(ctx, appName)
	if err != nil {
		return nil, err
	}

	var out []OutdatedEntry
	for id, pv := range result.Resolved {
		reg := rt.registryFor(id)

		versions, listErr := reg.ListVersions(ctx, id)
		if listErr != nil {
			return nil, listErr
		}

		latest, found := greatestVersion(versions, rt.Options.AllowPrerelease)
		if !found || !latest.GreaterThan(pv.Version) {
			continue
		}
		out = append(out, OutdatedEntry{ID: id, Current: pv.Version, Latest: latest})
	}
	return out, nil
}

func greatestVersion(versions []model.PackageVersion, allowPrerelease bool) (model.Version, bool) {
	var best model.Version
	found := false
	for _, pv := range versions {
		if pv.Version.Prerelease() && !allowPrerelease {
			continue
		}
		if !found || pv.Version.GreaterThan(best) {
			best = pv.Version
			found = true
		}
	}
	return best, found
}
