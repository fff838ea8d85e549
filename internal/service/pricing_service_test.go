package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/BuildMate/matgate/internal/cache"
	"github.com/BuildMate/matgate/internal/catalog"
	"github.com/BuildMate/matgate/internal/config"
	"github.com/BuildMate/matgate/internal/model"
	"github.com/BuildMate/matgate/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCache wraps a real store to observe sets.
type countingCache struct {
	inner cache.Store
	sets  int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	return c.inner.Get(ctx, key)
}

func (c *countingCache) Set(ctx context.Context, key string, payload []byte) {
	c.sets++
	c.inner.Set(ctx, key, payload)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Pricing.VATRate = 0.20
	cfg.Pricing.QuoteValidityHours = 2
	cfg.Pricing.DefaultPostcode = "SW1A 1AA"
	return cfg
}

func newTestService() (*PricingService, *countingCache) {
	store := &countingCache{inner: cache.NewMemoryStore(10 * time.Minute)}
	return NewPricingService(catalog.New(), store, testConfig()), store
}

func TestQuoteRejectsLengthMismatchBeforeComputing(t *testing.T) {
	svc, store := newTestService()

	_, _, err := svc.Quote(context.Background(), model.BulkPricingRequest{
		ProductIDs: []string{"BQ_CEMENT_003", "BQ_CEMENT_007"},
		Quantities: []int{10},
	})

	require.Error(t, err)
	appErr := apperrors.Wrap(err)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, 0, store.sets, "validation failure must not create a cache entry")
}

func TestQuoteRejectsEmptyAndNonPositive(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []model.BulkPricingRequest{
		{},
		{ProductIDs: []string{"BQ_CEMENT_003"}},
		{ProductIDs: []string{"BQ_CEMENT_003"}, Quantities: []int{0}},
		{ProductIDs: []string{"BQ_CEMENT_003"}, Quantities: []int{-5}},
	}
	for i, req := range cases {
		_, _, err := svc.Quote(ctx, req)
		require.Error(t, err, "case %d", i)
		assert.Equal(t, http.StatusBadRequest, apperrors.Wrap(err).HTTPStatus, "case %d", i)
	}
}

func TestQuoteUnknownProductFailsWholeBatch(t *testing.T) {
	svc, store := newTestService()

	data, _, err := svc.Quote(context.Background(), model.BulkPricingRequest{
		ProductIDs: []string{"BQ_CEMENT_003", "GHOST_999"},
		Quantities: []int{10, 10},
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.Wrap(err).HTTPStatus)
	assert.Nil(t, data, "no partial products array on a failed batch")
	assert.Equal(t, 0, store.sets)
}

func TestQuoteSmallRetailOrderGetsNoDiscount(t *testing.T) {
	svc, _ := newTestService()

	data, cached, err := svc.Quote(context.Background(), model.BulkPricingRequest{
		ProductIDs:   []string{"BQ_CEMENT_003"},
		Quantities:   []int{5},
		Postcode:     "E1 1AA",
		CustomerType: "retail",
	})

	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, data.Products, 1)

	line := data.Products[0]
	// Below the 50-unit minimum: fallback tier, bulk == standard.
	assert.Equal(t, line.StandardPricing.UnitPrice, line.BulkPricing.UnitPrice)
	assert.Equal(t, 0.0, line.BulkPricing.Savings)
	assert.InDelta(t, 6.00, line.StandardPricing.UnitPrice, 0.001) // 4.80 * 1.25
	assert.Equal(t, "London", data.Regional.Region)
	require.NotNil(t, data.DiscountEligibility.UpgradeAvailable)
	assert.Equal(t, "trade", *data.DiscountEligibility.UpgradeAvailable)
}

func TestQuoteLargeBusinessOrderGetsTierDiscount(t *testing.T) {
	svc, _ := newTestService()

	data, _, err := svc.Quote(context.Background(), model.BulkPricingRequest{
		ProductIDs:   []string{"BQ_CEMENT_003"},
		Quantities:   []int{1200},
		Postcode:     "E1 1AA",
		CustomerType: "business",
	})

	require.NoError(t, err)
	line := data.Products[0]

	assert.Equal(t, 1000, line.BulkPricing.AppliedTier.MinQuantity)
	assert.Greater(t, line.BulkPricing.SavingsPercentage, 0.0)
	assert.Greater(t, data.Summary.TotalSavings, 0.0)
	// Business is the top class.
	assert.Nil(t, data.DiscountEligibility.UpgradeAvailable)
}

func TestQuoteCachedSecondCall(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	req := model.BulkPricingRequest{
		ProductIDs:   []string{"BQ_CEMENT_003", "WICKES_BRICK_010"},
		Quantities:   []int{100, 500},
		Postcode:     "LS1 1AA",
		CustomerType: "trade",
	}

	first, cached, err := svc.Quote(ctx, req)
	require.NoError(t, err)
	assert.False(t, cached)
	require.Equal(t, 1, store.sets)

	second, cached, err := svc.Quote(ctx, req)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, 1, store.sets, "hit must not rewrite the entry")
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.ValidUntil, second.ValidUntil, "cached payload is returned verbatim")
}

func TestQuoteLineOrderProducesDistinctEntries(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, _, err := svc.Quote(ctx, model.BulkPricingRequest{
		ProductIDs: []string{"BQ_CEMENT_003", "WICKES_BRICK_010"},
		Quantities: []int{100, 500},
	})
	require.NoError(t, err)

	_, cached, err := svc.Quote(ctx, model.BulkPricingRequest{
		ProductIDs: []string{"WICKES_BRICK_010", "BQ_CEMENT_003"},
		Quantities: []int{500, 100},
	})
	require.NoError(t, err)
	assert.False(t, cached, "reordered lines are a distinct cache key")
	assert.Equal(t, 2, store.sets)
}

func TestQuoteDefaultsPostcodeAndClass(t *testing.T) {
	svc, _ := newTestService()

	data, _, err := svc.Quote(context.Background(), model.BulkPricingRequest{
		ProductIDs: []string{"BQ_CEMENT_003"},
		Quantities: []int{10},
	})

	require.NoError(t, err)
	assert.Equal(t, "SW1A 1AA", data.Regional.Postcode)
	assert.Equal(t, "retail", data.CustomerType)
}

func TestQuoteValidUntilTwoHoursOut(t *testing.T) {
	svc, _ := newTestService()

	before := time.Now().UTC()
	data, _, err := svc.Quote(context.Background(), model.BulkPricingRequest{
		ProductIDs: []string{"BQ_CEMENT_003"},
		Quantities: []int{10},
	})
	require.NoError(t, err)

	validUntil, err := time.Parse(time.RFC3339, data.ValidUntil)
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(2*time.Hour), validUntil, 5*time.Second)
}

func TestQuoteNonBulkableNeverDiscounted(t *testing.T) {
	svc, _ := newTestService()

	data, _, err := svc.Quote(context.Background(), model.BulkPricingRequest{
		ProductIDs:   []string{"SF_INSULATION_100_009"},
		Quantities:   []int{100000},
		CustomerType: "business",
	})

	require.NoError(t, err)
	line := data.Products[0]
	assert.Equal(t, line.StandardPricing.UnitPrice, line.BulkPricing.UnitPrice)
	assert.Equal(t, 0.0, line.BulkPricing.AppliedTier.DiscountPercent)
	require.Len(t, line.Tiers, 1)
}
