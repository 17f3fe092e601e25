package service

import (
	"testing"

	"github.com/belgahub/hub/internal/database/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareListingDerivesSlug(t *testing.T) {
	t.Parallel()

	vendorID := uuid.New()
	software := &types.Software{Name: "  Alpha CRM Pro  "}

	require.NoError(t, prepareListing(software, vendorID))
	assert.Equal(t, "alpha-crm-pro", software.Slug)
	assert.Equal(t, vendorID, software.VendorID)
}

func TestPrepareListingRequiresName(t *testing.T) {
	t.Parallel()

	err := prepareListing(&types.Software{}, uuid.New())
	require.Error(t, err)
}
