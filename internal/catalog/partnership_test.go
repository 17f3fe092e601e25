package catalog_test

import (
	"testing"

	"github.com/belgahub/hub/internal/catalog"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePartnerships() []*types.Partnership {
	return []*types.Partnership{
		{ID: 1, Name: "Alpha Revendas", Type: enum.PartnershipTypeResell, Featured: true},
		{ID: 2, Name: "Beta Consultoria", Type: enum.PartnershipTypeImplementation},
		{ID: 3, Name: "Gamma Leads", Type: enum.PartnershipTypeLeadGeneration},
		{ID: 4, Name: "Delta Revendas", Type: enum.PartnershipTypeResell},
	}
}

func TestFilterPartnershipsByType(t *testing.T) {
	t.Parallel()

	filtered := catalog.FilterPartnerships(samplePartnerships(), enum.PartnershipTypeResell)

	require.Len(t, filtered, 2)
	assert.Equal(t, int64(1), filtered[0].ID)
	assert.Equal(t, int64(4), filtered[1].ID)
}

func TestFilterPartnershipsEmptyTypeMatchesAll(t *testing.T) {
	t.Parallel()

	all := samplePartnerships()
	filtered := catalog.FilterPartnerships(all, "")

	require.Len(t, filtered, len(all))
	// Clone, not alias
	filtered[0] = nil
	assert.NotNil(t, all[0])
}

func TestFilterPartnershipsPreservesOrder(t *testing.T) {
	t.Parallel()

	filtered := catalog.FilterPartnerships(samplePartnerships(), enum.PartnershipTypeImplementation)

	require.Len(t, filtered, 1)
	assert.Equal(t, "Beta Consultoria", filtered[0].Name)
}
