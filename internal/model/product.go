package model

import "github.com/shopspring/decimal"

// Product is immutable catalog reference data. The engine never mutates
// it; the catalog package owns the static table.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Subcategory  string          `json:"subcategory"`
	Supplier     string          `json:"supplier"`
	Unit         string          `json:"unit"`
	BasePrice    decimal.Decimal `json:"basePrice"`
	UnitWeightKg float64         `json:"unitWeightKg"`
	BulkEligible bool            `json:"bulkEligible"`
}

// StockInfo is generated per request from a seedable source; it is
// advisory display data, not inventory truth.
type StockInfo struct {
	InStock         bool `json:"inStock"`
	BranchCount     int  `json:"branchCount"`
	DeliveryDays    int  `json:"deliveryDays"`
	ClickAndCollect bool `json:"clickAndCollect"`
}
