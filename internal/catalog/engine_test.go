package catalog_test

import (
	"testing"

	"github.com/belgahub/hub/internal/catalog"
	"github.com/belgahub/hub/internal/database/types"
	"github.com/belgahub/hub/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }

func sampleCatalog() []*types.Software {
	crm := &types.Category{ID: 1, Name: "CRM", Slug: "crm"}
	finance := &types.Category{ID: 2, Name: "Financeiro", Slug: "financeiro"}

	return []*types.Software{
		{
			ID:                   1,
			Name:                 "Alpha",
			Company:              "Alpha Tecnologia",
			Description:          "Gestão de vendas completa",
			Pricing:              "R$ 50/mês",
			CompanySizes:         []string{"pequena", "media"},
			Problems:             []string{"vendas"},
			PartnershipAvailable: true,
			Categories:           []*types.Category{crm},
		},
		{
			ID:                3,
			Name:              "Beta",
			Company:           "Beta Sistemas",
			Description:       "Controle financeiro para pequenas empresas",
			Pricing:           "Grátis",
			CompanySizes:      []string{"pequena"},
			Problems:          []string{"financas"},
			PurchaseAvailable: true,
			Categories:        []*types.Category{finance},
		},
		{
			ID:                    7,
			Name:                  "Gamma",
			Company:               "Gamma Soluções",
			Description:           "Plataforma corporativa de CRM",
			Pricing:               "Sob consulta",
			PriceMonthly:          float64Ptr(1500),
			SubscriptionAvailable: true,
			Categories:            []*types.Category{crm},
		},
	}
}

func TestApplyNoCriteriaReturnsAll(t *testing.T) {
	t.Parallel()

	all := sampleCatalog()
	filtered := catalog.Apply(all, catalog.Criteria{})

	require.Len(t, filtered, 3)

	// Order preserved as loaded
	assert.Equal(t, "Alpha", filtered[0].Name)
	assert.Equal(t, "Beta", filtered[1].Name)
	assert.Equal(t, "Gamma", filtered[2].Name)
}

func TestApplyPriceBracket(t *testing.T) {
	t.Parallel()

	all := sampleCatalog()

	free := catalog.Apply(all, catalog.Criteria{Price: enum.PriceBracketFree})
	require.Len(t, free, 1)
	assert.Equal(t, "Beta", free[0].Name)

	upTo100 := catalog.Apply(all, catalog.Criteria{Price: enum.PriceBracketUpTo100})
	require.Len(t, upTo100, 1)
	assert.Equal(t, "Alpha", upTo100[0].Name)

	// Structured price wins over the "Sob consulta" text
	above := catalog.Apply(all, catalog.Criteria{Price: enum.PriceBracketAbove1000})
	require.Len(t, above, 1)
	assert.Equal(t, "Gamma", above[0].Name)
}

func TestApplySearchAccentInsensitive(t *testing.T) {
	t.Parallel()

	all := sampleCatalog()

	byName := catalog.Apply(all, catalog.Criteria{Query: "alp"})
	require.Len(t, byName, 1)
	assert.Equal(t, "Alpha", byName[0].Name)

	// "soluções" matches without the accents
	byCompany := catalog.Apply(all, catalog.Criteria{Query: "solucoes"})
	require.Len(t, byCompany, 1)
	assert.Equal(t, "Gamma", byCompany[0].Name)

	// Category names are searchable too
	byCategory := catalog.Apply(all, catalog.Criteria{Query: "financeiro"})
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Beta", byCategory[0].Name)
}

func TestApplyTagFilters(t *testing.T) {
	t.Parallel()

	all := sampleCatalog()

	// Gamma has no company-size tags and passes the filter untouched
	small := catalog.Apply(all, catalog.Criteria{CompanySize: "pequena"})
	require.Len(t, small, 3)

	medium := catalog.Apply(all, catalog.Criteria{CompanySize: "media"})
	require.Len(t, medium, 2)
	assert.Equal(t, "Alpha", medium[0].Name)
	assert.Equal(t, "Gamma", medium[1].Name)

	sales := catalog.Apply(all, catalog.Criteria{Problem: "vendas"})
	require.Len(t, sales, 2)
	assert.Equal(t, "Alpha", sales[0].Name)
	assert.Equal(t, "Gamma", sales[1].Name)
}

func TestApplyAvailabilityModes(t *testing.T) {
	t.Parallel()

	all := sampleCatalog()

	partners := catalog.Apply(all, catalog.Criteria{Availability: catalog.AvailabilityPartnership})
	require.Len(t, partners, 1)
	assert.Equal(t, "Alpha", partners[0].Name)

	purchase := catalog.Apply(all, catalog.Criteria{Availability: catalog.AvailabilityPurchase})
	require.Len(t, purchase, 1)
	assert.Equal(t, "Beta", purchase[0].Name)

	subscription := catalog.Apply(all, catalog.Criteria{Availability: catalog.AvailabilitySubscription})
	require.Len(t, subscription, 1)
	assert.Equal(t, "Gamma", subscription[0].Name)
}

func TestApplyCombinedCriteria(t *testing.T) {
	t.Parallel()

	all := sampleCatalog()

	filtered := catalog.Apply(all, catalog.Criteria{
		Category: "crm",
		Query:    "vendas",
	})
	require.Len(t, filtered, 1)
	assert.Equal(t, "Alpha", filtered[0].Name)
}

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	all := sampleCatalog()
	criteria := catalog.Criteria{Category: "crm"}

	once := catalog.Apply(all, criteria)
	twice := catalog.Apply(once, criteria)

	assert.Equal(t, once, twice)
}

func TestEngineDistinguishesEmptyStates(t *testing.T) {
	t.Parallel()

	engine := catalog.NewEngine()

	// Nothing loaded yet
	snapshot := engine.Snapshot()
	assert.False(t, snapshot.Loaded)
	assert.False(t, snapshot.NoResults)
	assert.Empty(t, snapshot.Items)

	engine.SetAll(sampleCatalog())

	// Criteria matching nothing
	snapshot = engine.ApplyFilters(catalog.Criteria{Category: "erp"})
	assert.True(t, snapshot.Loaded)
	assert.True(t, snapshot.NoResults)
	assert.Empty(t, snapshot.Items)

	// Clearing criteria restores the full list
	snapshot = engine.Reset()
	assert.False(t, snapshot.NoResults)
	assert.Len(t, snapshot.Items, 3)
}

func TestEngineGenerationGuardsStaleViews(t *testing.T) {
	t.Parallel()

	engine := catalog.NewEngine()

	first := engine.SetAll(sampleCatalog())
	stale := engine.ApplyFilters(catalog.Criteria{Query: "alpha"})
	assert.Equal(t, first, stale.Generation)

	// A reload bumps the generation; the earlier snapshot is stale
	second := engine.SetAll(sampleCatalog()[:1])
	assert.Greater(t, second, first)

	fresh := engine.Snapshot()
	assert.Equal(t, second, fresh.Generation)
	assert.NotEqual(t, stale.Generation, fresh.Generation)
}

func TestEngineSearchKeepsOtherFilters(t *testing.T) {
	t.Parallel()

	engine := catalog.NewEngine()
	engine.SetAll(sampleCatalog())

	engine.ApplyFilters(catalog.Criteria{Category: "crm"})
	snapshot := engine.Search("corporativa")

	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, "Gamma", snapshot.Items[0].Name)
	assert.Equal(t, "crm", engine.Criteria().Category)
}

func TestEngineDiscardsStaleReload(t *testing.T) {
	t.Parallel()

	engine := catalog.NewEngine()

	// Two concurrent loads observe the same generation
	token := engine.Snapshot().Generation

	require.True(t, engine.SetAllFrom(token, sampleCatalog()))

	// The slower load carries the old token and must not win
	assert.False(t, engine.SetAllFrom(token, nil))

	snapshot := engine.Snapshot()
	assert.True(t, snapshot.Loaded)
	assert.Len(t, snapshot.Items, 3)
}
