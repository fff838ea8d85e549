package model

import "time"

// Response is the shared envelope for every endpoint. Error responses
// carry the same shape with Success=false so callers branch on a single
// field.
type Response struct {
	Success  bool      `json:"success"`
	Data     any       `json:"data,omitempty"`
	Error    string    `json:"error,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

type Metadata struct {
	Timestamp string         `json:"timestamp"`
	RequestID string         `json:"requestId"`
	RateLimit *RateLimitMeta `json:"rateLimit,omitempty"`
	Cached    bool           `json:"cached,omitempty"`
	Affiliate *AffiliateMeta `json:"affiliate,omitempty"`
}

type RateLimitMeta struct {
	Remaining int    `json:"remaining"`
	ResetTime string `json:"resetTime"`
}

type AffiliateMeta struct {
	Partner    string `json:"partner"`
	Disclosure string `json:"disclosure"`
}

func NewMetadata(requestID string, rl *RateLimitMeta) *Metadata {
	return &Metadata{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
		RateLimit: rl,
	}
}

// --- Catalog browse ---

type CatalogQuery struct {
	Category     string `form:"category"`
	Search       string `form:"search"`
	Limit        int    `form:"limit"`
	Offset       int    `form:"offset"`
	Postcode     string `form:"postcode"`
	CustomerType string `form:"customerType"`
}

type CatalogData struct {
	Materials  []MaterialView `json:"materials"`
	Pagination Pagination     `json:"pagination"`
	Filters    CatalogFilters `json:"filters"`
}

type MaterialView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Subcategory  string    `json:"subcategory"`
	Supplier     string    `json:"supplier"`
	Unit         string    `json:"unit"`
	BasePrice    float64   `json:"basePrice"`
	UnitPrice    float64   `json:"unitPrice"` // regionally adjusted, net
	VAT          float64   `json:"vat"`
	GrossPrice   float64   `json:"grossPrice"`
	BulkEligible bool      `json:"bulkEligible"`
	UnitWeightKg float64   `json:"unitWeightKg"`
	Stock        StockInfo `json:"stock"`
	AffiliateURL string    `json:"affiliateUrl"`
}

type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

type CatalogFilters struct {
	Category     string `json:"category,omitempty"`
	Search       string `json:"search,omitempty"`
	Postcode     string `json:"postcode"`
	CustomerType string `json:"customerType"`
	Region       string `json:"region"`
}

// --- Bulk pricing ---

type BulkPricingRequest struct {
	ProductIDs   []string `json:"productIds"`
	Quantities   []int    `json:"quantities"`
	Postcode     string   `json:"postcode"`
	CustomerType string   `json:"customerType"`
}

type BulkPricingData struct {
	Summary             PricingSummary      `json:"summary"`
	Products            []ProductQuote      `json:"products"`
	Delivery            DeliveryQuote       `json:"delivery"`
	Regional            RegionalInfo        `json:"regional"`
	CustomerType        string              `json:"customerType"`
	DiscountEligibility DiscountEligibility `json:"discountEligibility"`
	ValidUntil          string              `json:"validUntil"`
	Terms               string              `json:"terms"`
}

type PricingSummary struct {
	TotalItems        int     `json:"totalItems"`
	TotalQuantity     int     `json:"totalQuantity"`
	StandardTotal     float64 `json:"standardTotal"` // gross
	BulkTotal         float64 `json:"bulkTotal"`     // gross
	TotalSavings      float64 `json:"totalSavings"`
	SavingsPercentage float64 `json:"savingsPercentage"`
}

type ProductQuote struct {
	ProductID       string     `json:"productId"`
	Name            string     `json:"name"`
	Quantity        int        `json:"quantity"`
	StandardPricing PriceBlock `json:"standardPricing"`
	BulkPricing     BulkBlock  `json:"bulkPricing"`
	Tiers           []TierView `json:"tiers"`
}

type PriceBlock struct {
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
	VAT       float64 `json:"vat"`
	Total     float64 `json:"total"`
}

type BulkBlock struct {
	UnitPrice         float64  `json:"unitPrice"`
	Subtotal          float64  `json:"subtotal"`
	VAT               float64  `json:"vat"`
	Total             float64  `json:"total"`
	Savings           float64  `json:"savings"`
	SavingsPercentage float64  `json:"savingsPercentage"`
	AppliedTier       TierView `json:"appliedTier"`
}

type TierView struct {
	MinQuantity     int     `json:"minQuantity"`
	MaxQuantity     *int    `json:"maxQuantity,omitempty"`
	UnitPrice       float64 `json:"unitPrice"`
	DiscountPercent float64 `json:"discountPercent"`
	SavingsPerUnit  float64 `json:"savingsPerUnit"`
	TotalSavings    float64 `json:"totalSavings"`
}

type DeliveryQuote struct {
	TotalWeightKg         float64 `json:"totalWeight"`
	DeliveryFee           float64 `json:"deliveryFee"`
	FreeDeliveryThreshold float64 `json:"freeDeliveryThreshold"`
	FreeDeliveryApplied   bool    `json:"freeDeliveryApplied"`
	Region                string  `json:"region"`
}

type RegionalInfo struct {
	Postcode   string  `json:"postcode"`
	Region     string  `json:"region"`
	Multiplier float64 `json:"multiplier"`
}

type DiscountEligibility struct {
	CurrentClass     string  `json:"currentClass"`
	UpgradeAvailable *string `json:"upgradeAvailable"`
}

// --- Affiliate ---

type AffiliateInfo struct {
	ProductID   string `json:"productId"`
	Supplier    string `json:"supplier"`
	TrackingURL string `json:"trackingUrl"`
}
