package catalog

import (
	"slices"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
)

// FilterPartnerships narrows a partnership list to one offer type,
// preserving order. An empty type matches everything, mirroring the
// "all" tab of the partnerships page.
func FilterPartnerships(all []*types.Partnership, ptype enum.PartnershipType) []*types.Partnership {
	if ptype == "" {
		return slices.Clone(all)
	}

	filtered := make([]*types.Partnership, 0, len(all))

	for _, partnership := range all {
		if partnership.Type == ptype {
			filtered = append(filtered, partnership)
		}
	}

	return filtered
}
