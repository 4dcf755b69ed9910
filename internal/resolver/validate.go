package resolver

import (
	"fmt"
	"sort"

	"github.com/saravenpi/knot/internal/model"
)

// generateWarnings runs Phase 5 (§4.6): non-fatal observations about
// the resolved set. Prerelease selections, "latest" requirements in a
// resolved package's own dependency lists, and major-version spread are
// reported but never fail resolution.
func (r *Resolver) generateWarnings(resolved map[model.PackageId]model.PackageVersion) []string {
	var warnings []string

	ids := make([]model.PackageId, 0, len(resolved))
	for id := range resolved {
		ids = append(ids, id)
	}
	sortPackageIds(ids)

	for _, id := range ids {
		pv := resolved[id]
		if pv.Version.Prerelease() {
			warnings = append(warnings, fmt.Sprintf("Using prerelease version %s for package '%s'", pv.Version.String(), id.Name))
		}
		for _, d := range pv.ApplicableDependencies(r.Context) {
			if d.Requirement.IsLatestLiteral() {
				warnings = append(warnings, fmt.Sprintf("Package '%s' requires '%s' as \"latest\", which matches any version", id.Name, d.ID.Name))
			}
		}
	}

	majorsByName := map[string]map[int64]struct{}{}
	for id, pv := range resolved {
		if majorsByName[id.Name] == nil {
			majorsByName[id.Name] = map[int64]struct{}{}
		}
		majorsByName[id.Name][pv.Version.Major()] = struct{}{}
	}

	names := make([]string, 0, len(majorsByName))
	for name := range majorsByName {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		majors := majorsByName[name]
		if len(majors) <= 1 {
			continue
		}
		values := make([]int64, 0, len(majors))
		for m := range majors {
			values = append(values, m)
		}
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

		joined := ""
		for i, v := range values {
			if i > 0 {
				joined += ", "
			}
			joined += fmt.Sprintf("%d", v)
		}
		warnings = append(warnings, fmt.Sprintf("Multiple major versions of '%s' in dependency tree: %s", name, joined))
	}

	return warnings
}
