package resolver

import (
	"sort"

	"github.com/saravenpi/knot/internal/model"
)

// sortPackageIds orders ids by name then source, giving every phase
// that needs a deterministic seed (Phase 3's visit order, Phase 4's
// Kahn queue) the same stable starting point regardless of map
// iteration order (§5 "seeded deterministically via sorted iteration").
func sortPackageIds(ids []model.PackageId) {
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Name != ids[j].Name {
			return ids[i].Name < ids[j].Name
		}
		return ids[i].Source < ids[j].Source
	})
}
