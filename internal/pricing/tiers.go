package pricing

import "github.com/shopspring/decimal"

// Tier is a quantity band with a discounted unit price. MaxQuantity is
// nil on the open-ended last band.
type Tier struct {
	MinQuantity     int
	MaxQuantity     *int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	SavingsPerUnit  decimal.Decimal
	TotalSavings    decimal.Decimal
}

var (
	tierFloor       = 50
	tierMultipliers = []int{4, 5, 10}
	oneHundred      = decimal.NewFromInt(100)
)

// TierResult carries the generated tier ladder and the single tier the
// requested quantity actually gets.
type TierResult struct {
	Tiers    []Tier
	Selected Tier
}

// BuildTiers generates the discount ladder for one product line and
// selects the applicable tier.
//
// Non-bulkable products get exactly one zero-discount tier at the
// regionally adjusted base price, whatever the quantity. Bulkable
// products get up to four escalating tiers whose minimums derive from
// the class minimum order quantity; a tier is emitted only once the
// requested quantity reaches its minimum.
//
// Selection policy (the single source of truth for the order's price):
// the tier with the highest satisfied MinQuantity wins, later tiers
// winning ties. With no qualifying tier the zero-discount fallback
// applies.
func BuildTiers(basePrice decimal.Decimal, bulkEligible bool, quantity int, class CustomerClass, multiplier float64) TierResult {
	adjusted := basePrice.Mul(decimal.NewFromFloat(multiplier))

	flat := Tier{
		MinQuantity:     1,
		UnitPrice:       adjusted,
		DiscountPercent: decimal.Zero,
		SavingsPerUnit:  decimal.Zero,
		TotalSavings:    decimal.Zero,
	}
	if !bulkEligible {
		return TierResult{Tiers: []Tier{flat}, Selected: flat}
	}

	minQty := classMinQty[class]
	if minQty < tierFloor {
		minQty = tierFloor
	}
	discounts := classDiscounts[class]

	mins := make([]int, len(discounts))
	mins[0] = minQty
	for i := 1; i < len(mins); i++ {
		mins[i] = mins[i-1] * tierMultipliers[i-1]
	}

	tiers := make([]Tier, 0, len(discounts))
	for i, disc := range discounts {
		if quantity < mins[i] {
			continue
		}
		var maxQty *int
		if i+1 < len(mins) {
			m := mins[i+1] - 1
			maxQty = &m
		}
		unit := adjusted.Mul(oneHundred.Sub(disc)).Div(oneHundred)
		perUnit := adjusted.Sub(unit)

		// Savings count only the quantity inside this tier's band.
		banded := quantity
		if maxQty != nil && *maxQty < banded {
			banded = *maxQty
		}

		tiers = append(tiers, Tier{
			MinQuantity:     mins[i],
			MaxQuantity:     maxQty,
			UnitPrice:       unit,
			DiscountPercent: disc,
			SavingsPerUnit:  perUnit,
			TotalSavings:    perUnit.Mul(decimal.NewFromInt(int64(banded))),
		})
	}

	selected := flat
	found := false
	for _, t := range tiers {
		if quantity < t.MinQuantity {
			continue
		}
		if !found || t.MinQuantity >= selected.MinQuantity {
			selected = t
			found = true
		}
	}
	return TierResult{Tiers: tiers, Selected: selected}
}
