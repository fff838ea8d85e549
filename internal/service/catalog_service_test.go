package service

import (
	"context"
	"testing"

	"github.com/BuildMate/matgate/internal/catalog"
	"github.com/BuildMate/matgate/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalogService() *CatalogService {
	return NewCatalogService(catalog.New(), catalog.NewSeededStockGenerator(42), testConfig())
}

func TestBrowseDefaultsApplied(t *testing.T) {
	svc := newTestCatalogService()

	data, err := svc.Browse(context.Background(), model.CatalogQuery{})
	require.NoError(t, err)

	assert.Equal(t, 20, data.Pagination.Limit)
	assert.Equal(t, 0, data.Pagination.Offset)
	assert.Equal(t, "SW1A 1AA", data.Filters.Postcode)
	assert.Equal(t, "retail", data.Filters.CustomerType)
	assert.Equal(t, "London", data.Filters.Region)
}

func TestBrowsePagination(t *testing.T) {
	svc := newTestCatalogService()
	ctx := context.Background()

	page1, err := svc.Browse(ctx, model.CatalogQuery{Limit: 5})
	require.NoError(t, err)
	require.Len(t, page1.Materials, 5)
	assert.True(t, page1.Pagination.HasMore)

	page2, err := svc.Browse(ctx, model.CatalogQuery{Limit: 5, Offset: 5})
	require.NoError(t, err)
	assert.NotEqual(t, page1.Materials[0].ID, page2.Materials[0].ID)

	total := page1.Pagination.Total
	last, err := svc.Browse(ctx, model.CatalogQuery{Limit: 5, Offset: total})
	require.NoError(t, err)
	assert.Empty(t, last.Materials)
	assert.False(t, last.Pagination.HasMore)
}

func TestBrowseSearchFilters(t *testing.T) {
	svc := newTestCatalogService()

	data, err := svc.Browse(context.Background(), model.CatalogQuery{Search: "cement"})
	require.NoError(t, err)
	require.NotEmpty(t, data.Materials)
	for _, m := range data.Materials {
		assert.Contains(t, []string{"cement"}, m.Category)
	}
}

func TestBrowseRegionalPricing(t *testing.T) {
	svc := newTestCatalogService()
	ctx := context.Background()

	london, err := svc.Browse(ctx, model.CatalogQuery{Postcode: "E1 1AA", Limit: 1})
	require.NoError(t, err)
	wales, err := svc.Browse(ctx, model.CatalogQuery{Postcode: "CF10 1AA", Limit: 1})
	require.NoError(t, err)

	require.NotEmpty(t, london.Materials)
	require.NotEmpty(t, wales.Materials)
	assert.Greater(t, london.Materials[0].UnitPrice, wales.Materials[0].UnitPrice)
	// VAT breakdown is consistent at display precision.
	m := london.Materials[0]
	assert.InDelta(t, m.UnitPrice+m.VAT, m.GrossPrice, 0.011)
}

func TestBrowseEveryMaterialCarriesAffiliateURL(t *testing.T) {
	svc := newTestCatalogService()

	data, err := svc.Browse(context.Background(), model.CatalogQuery{Limit: 100})
	require.NoError(t, err)
	for _, m := range data.Materials {
		assert.NotEmpty(t, m.AffiliateURL, "product %s", m.ID)
	}
}

func TestAffiliateUnknownProduct(t *testing.T) {
	svc := newTestCatalogService()

	_, err := svc.Affiliate(context.Background(), "GHOST_001")
	require.Error(t, err)
}

func TestAffiliateKnownProduct(t *testing.T) {
	svc := newTestCatalogService()

	info, err := svc.Affiliate(context.Background(), "BQ_CEMENT_003")
	require.NoError(t, err)
	assert.Equal(t, "B&Q", info.Supplier)
	assert.NotEmpty(t, info.TrackingURL)
}
