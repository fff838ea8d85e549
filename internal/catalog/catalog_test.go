package catalog

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKnownProduct(t *testing.T) {
	cat := New()

	p, ok := cat.Get("BQ_CEMENT_003")
	require.True(t, ok)
	assert.Equal(t, "4.8", p.BasePrice.String())
	assert.True(t, p.BulkEligible)
	assert.Equal(t, "cement", p.Category)
}

func TestGetUnknownProduct(t *testing.T) {
	cat := New()

	_, ok := cat.Get("NOPE_001")
	assert.False(t, ok)
}

func TestFilterByCategory(t *testing.T) {
	cat := New()

	results := cat.Filter("cement", "")
	require.NotEmpty(t, results)
	for _, p := range results {
		assert.Equal(t, "cement", p.Category)
	}
}

func TestSearchIsCaseInsensitiveOverFields(t *testing.T) {
	cat := New()

	byName := cat.Filter("", "BLUE CIRCLE")
	assert.NotEmpty(t, byName)

	bySubcategory := cat.Filter("", "Studwork")
	assert.NotEmpty(t, bySubcategory)

	byDescription := cat.Filter("", "frost-resistant")
	assert.NotEmpty(t, byDescription)

	assert.Empty(t, cat.Filter("", "no such material"))
}

func TestFilterCombinesCategoryAndSearch(t *testing.T) {
	cat := New()

	results := cat.Filter("cement", "postcrete")
	require.Len(t, results, 1)
	assert.Equal(t, "BQ_CEMENT_007", results[0].ID)
}

func TestAffiliateURLStablePerProduct(t *testing.T) {
	cat := New()
	p, _ := cat.Get("BQ_CEMENT_003")

	first := AffiliateURL(p)
	assert.Equal(t, first, AffiliateURL(p))
	assert.True(t, strings.Contains(first, "bq-cement-003"))
	assert.True(t, strings.Contains(first, "aff=buildmate"))
}

func TestStockGeneratorDeterministicWithSeed(t *testing.T) {
	cat := New()
	products := cat.All()

	genA := NewStockGenerator(rand.New(rand.NewSource(7)))
	genB := NewStockGenerator(rand.New(rand.NewSource(7)))

	for _, p := range products {
		assert.Equal(t, genA.For(p), genB.For(p), "product %s", p.ID)
	}
}

func TestStockGeneratorNoCollectForBulkBags(t *testing.T) {
	gen := NewStockGenerator(rand.New(rand.NewSource(1)))
	cat := New()
	p, _ := cat.Get("TP_AGG_BALLAST_001") // 800 kg bulk bag

	for i := 0; i < 50; i++ {
		info := gen.For(p)
		assert.False(t, info.ClickAndCollect, "bulk bags never click-and-collect")
	}
}
