package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BuildMate/matgate/internal/cache"
	"github.com/BuildMate/matgate/internal/catalog"
	"github.com/BuildMate/matgate/internal/config"
	"github.com/BuildMate/matgate/internal/middleware"
	"github.com/BuildMate/matgate/internal/ratelimit"
	"github.com/BuildMate/matgate/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Pricing.VATRate = 0.20
	cfg.Pricing.QuoteValidityHours = 2
	cfg.Pricing.DefaultPostcode = "SW1A 1AA"
	return cfg
}

func newPricingRouter(ceiling int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	svc := service.NewPricingService(catalog.New(), cache.NewMemoryStore(10*time.Minute), cfg)
	h := NewPricingHandler(svc)
	limiter := ratelimit.New(ratelimit.NewMemoryStore(), "pricing", ceiling)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.POST("/materials/bulk-pricing",
		middleware.RateLimitMiddleware(limiter, "pricing"),
		h.BulkPricing)
	return router
}

func postPricing(router *gin.Engine, payload map[string]interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/materials/bulk-pricing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestBulkPricingLengthMismatchReturns400(t *testing.T) {
	router := newPricingRouter(100)

	rec := postPricing(router, map[string]interface{}{
		"productIds": []string{"BQ_CEMENT_003", "BQ_CEMENT_007"},
		"quantities": []int{5},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, false, resp["success"])
	assert.NotEmpty(t, resp["error"])
}

func TestBulkPricingUnknownProductReturns404(t *testing.T) {
	router := newPricingRouter(100)

	rec := postPricing(router, map[string]interface{}{
		"productIds": []string{"BQ_CEMENT_003", "GHOST_999"},
		"quantities": []int{5, 5},
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Nil(t, resp["data"], "no partial data on a failed batch")
}

func TestBulkPricingSuccessEnvelope(t *testing.T) {
	router := newPricingRouter(100)

	rec := postPricing(router, map[string]interface{}{
		"productIds":   []string{"BQ_CEMENT_003"},
		"quantities":   []int{1200},
		"postcode":     "E1 1AA",
		"customerType": "business",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, true, resp["success"])

	data := resp["data"].(map[string]interface{})
	summary := data["summary"].(map[string]interface{})
	assert.Greater(t, summary["totalSavings"].(float64), 0.0)
	eligibility := data["discountEligibility"].(map[string]interface{})
	assert.Nil(t, eligibility["upgradeAvailable"], "business is the top class")

	meta := resp["metadata"].(map[string]interface{})
	assert.NotEmpty(t, meta["requestId"])
	rl := meta["rateLimit"].(map[string]interface{})
	assert.Equal(t, float64(99), rl["remaining"])
}

func TestBulkPricingCachedResponseGetsFreshRequestID(t *testing.T) {
	router := newPricingRouter(100)
	payload := map[string]interface{}{
		"productIds":   []string{"BQ_CEMENT_003"},
		"quantities":   []int{100},
		"postcode":     "M1 1AA",
		"customerType": "trade",
	}

	first := decodeEnvelope(t, postPricing(router, payload))
	second := decodeEnvelope(t, postPricing(router, payload))

	meta1 := first["metadata"].(map[string]interface{})
	meta2 := second["metadata"].(map[string]interface{})

	assert.NotEqual(t, true, meta1["cached"], "first response must be computed")
	assert.Equal(t, true, meta2["cached"])
	assert.NotEqual(t, meta1["requestId"], meta2["requestId"],
		"request ids are unique even on cache hits")

	// The numeric payload itself is returned verbatim.
	data1, _ := json.Marshal(first["data"])
	data2, _ := json.Marshal(second["data"])
	assert.Equal(t, data1, data2)
}

func TestBulkPricingRateLimited(t *testing.T) {
	router := newPricingRouter(2)
	payload := map[string]interface{}{
		"productIds": []string{"BQ_CEMENT_003"},
		"quantities": []int{10},
	}

	postPricing(router, payload)
	postPricing(router, payload)
	rec := postPricing(router, payload)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, false, resp["success"])

	meta := resp["metadata"].(map[string]interface{})
	rl := meta["rateLimit"].(map[string]interface{})
	assert.Equal(t, float64(0), rl["remaining"])
	assert.NotEmpty(t, rl["resetTime"])
}

func TestBulkPricingMalformedJSONReturns400(t *testing.T) {
	router := newPricingRouter(100)

	req := httptest.NewRequest(http.MethodPost, "/materials/bulk-pricing", bytes.NewReader([]byte("not-json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
