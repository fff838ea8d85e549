package pricing

import "github.com/shopspring/decimal"

var (
	weightSurchargeFrom = decimal.NewFromInt(1000) // kg
	weightSurchargeRate = decimal.RequireFromString("0.35")
)

// DeliveryItem is one order line as the delivery calculator sees it.
// UnitPrice is the pre-VAT base price; the free-delivery threshold is
// judged on unadjusted order value.
type DeliveryItem struct {
	UnitWeightKg float64
	UnitPrice    decimal.Decimal
	Quantity     int
}

// DeliveryEstimate keeps fee, weight and threshold unrounded; callers
// round once at output. Weight and threshold stay populated even when
// the fee is waived.
type DeliveryEstimate struct {
	TotalWeightKg         decimal.Decimal
	Fee                   decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
	Waived                bool
	Region                string
}

// EstimateDelivery computes the batch-level shipping fee. The rate row
// is keyed by region band name, not the raw multiplier; unknown bands
// fall back to the UK Average row. Weight over 1000 kg draws a linear
// per-kg surcharge, and an order value at or over the region's
// free-delivery threshold zeroes the fee.
func EstimateDelivery(items []DeliveryItem, postcode string) DeliveryEstimate {
	res := Resolve(postcode)
	rate := DeliveryRateFor(res.Region)

	weight := decimal.Zero
	value := decimal.Zero
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		weight = weight.Add(decimal.NewFromFloat(item.UnitWeightKg).Mul(qty))
		value = value.Add(item.UnitPrice.Mul(qty))
	}

	fee := rate.BaseRate
	if over := weight.Sub(weightSurchargeFrom); over.IsPositive() {
		fee = fee.Add(over.Mul(weightSurchargeRate))
	}
	fee = fee.Mul(rate.Multiplier)

	est := DeliveryEstimate{
		TotalWeightKg:         weight,
		Fee:                   fee,
		FreeDeliveryThreshold: rate.FreeDeliveryThreshold,
		Region:                res.Region,
	}
	if value.GreaterThanOrEqual(rate.FreeDeliveryThreshold) {
		est.Fee = decimal.Zero
		est.Waived = true
	}
	return est
}
