package pricing

import "github.com/shopspring/decimal"

// Single source for the regional and tier tables. The catalog browse
// path and the bulk pricing path both read from here; keeping one table
// avoids the drift the two call sites would otherwise accumulate.

// Region band names. Exactly one band per postcode area; "UK Average"
// doubles as the fail-open band for unknown areas.
const (
	RegionLondon    = "London"
	RegionSouthEast = "South East"
	RegionSouthWest = "South West"
	RegionWales     = "Wales"
	RegionScotland  = "Scotland"
	RegionNI        = "Northern Ireland"
	RegionNorthEast = "North East"
	RegionNorthWest = "North West"
	RegionYorkshire = "Yorkshire"
	RegionMidlands  = "East/West Midlands"
	RegionUKAverage = "UK Average"
)

// regionMultipliers adjusts base prices by band, centered at 1.0.
var regionMultipliers = map[string]float64{
	RegionLondon:    1.25,
	RegionSouthEast: 1.15,
	RegionSouthWest: 1.08,
	RegionWales:     0.95,
	RegionScotland:  0.98,
	RegionNI:        0.92,
	RegionNorthEast: 0.92,
	RegionNorthWest: 0.97,
	RegionYorkshire: 0.96,
	RegionMidlands:  1.00,
	RegionUKAverage: 1.00,
}

// regionAreas lists every UK postcode area under its band. East of
// England areas (CB, CO, IP, NR, PE) sit under UK Average because the
// banding scheme carries no East-of-England band.
var regionAreas = map[string][]string{
	RegionLondon: {"E", "EC", "N", "NW", "SE", "SW", "W", "WC"},
	RegionSouthEast: {
		"AL", "BN", "BR", "CM", "CR", "CT", "DA", "EN", "GU", "HA",
		"HP", "IG", "KT", "LU", "ME", "MK", "OX", "PO", "RG", "RH",
		"RM", "SG", "SL", "SM", "SO", "SS", "TN", "TW", "UB", "WD",
	},
	RegionSouthWest: {"BA", "BH", "BS", "DT", "EX", "GL", "PL", "SN", "SP", "TA", "TQ", "TR"},
	RegionWales:     {"CF", "LD", "LL", "NP", "SA", "SY"},
	RegionScotland: {
		"AB", "DD", "DG", "EH", "FK", "G", "HS", "IV", "KA", "KW",
		"KY", "ML", "PA", "PH", "TD", "ZE",
	},
	RegionNI:        {"BT"},
	RegionNorthEast: {"DH", "DL", "NE", "SR", "TS"},
	RegionNorthWest: {
		"BB", "BL", "CA", "CH", "CW", "FY", "L", "LA", "M", "OL",
		"PR", "SK", "WA", "WN",
	},
	RegionYorkshire: {"BD", "DN", "HD", "HG", "HU", "HX", "LS", "S", "WF", "YO"},
	RegionMidlands: {
		"B", "CV", "DE", "DY", "HR", "LE", "LN", "NG", "NN", "ST",
		"TF", "WR", "WS", "WV",
	},
	RegionUKAverage: {"CB", "CO", "IP", "NR", "PE"},
}

type areaEntry struct {
	Multiplier float64
	Region     string
}

var areaTable = buildAreaTable()

func buildAreaTable() map[string]areaEntry {
	table := make(map[string]areaEntry)
	for region, areas := range regionAreas {
		mult := regionMultipliers[region]
		for _, area := range areas {
			table[area] = areaEntry{Multiplier: mult, Region: region}
		}
	}
	return table
}

// DeliveryRate is one row of the region-keyed delivery table.
type DeliveryRate struct {
	BaseRate              decimal.Decimal
	Multiplier            decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
}

var deliveryRates = map[string]DeliveryRate{
	RegionLondon:    {BaseRate: dec("25.00"), Multiplier: dec("1.30"), FreeDeliveryThreshold: dec("500")},
	RegionSouthEast: {BaseRate: dec("22.00"), Multiplier: dec("1.15"), FreeDeliveryThreshold: dec("300")},
	RegionSouthWest: {BaseRate: dec("20.00"), Multiplier: dec("1.10"), FreeDeliveryThreshold: dec("300")},
	RegionWales:     {BaseRate: dec("19.00"), Multiplier: dec("1.05"), FreeDeliveryThreshold: dec("300")},
	RegionScotland:  {BaseRate: dec("21.00"), Multiplier: dec("1.12"), FreeDeliveryThreshold: dec("300")},
	RegionNI:        {BaseRate: dec("24.00"), Multiplier: dec("1.20"), FreeDeliveryThreshold: dec("300")},
	RegionNorthEast: {BaseRate: dec("17.00"), Multiplier: dec("0.95"), FreeDeliveryThreshold: dec("300")},
	RegionNorthWest: {BaseRate: dec("18.00"), Multiplier: dec("0.98"), FreeDeliveryThreshold: dec("300")},
	RegionYorkshire: {BaseRate: dec("17.50"), Multiplier: dec("0.96"), FreeDeliveryThreshold: dec("300")},
	RegionMidlands:  {BaseRate: dec("18.00"), Multiplier: dec("1.00"), FreeDeliveryThreshold: dec("300")},
	RegionUKAverage: {BaseRate: dec("20.00"), Multiplier: dec("1.00"), FreeDeliveryThreshold: dec("300")},
}

// DeliveryRateFor resolves the rate row by region band name. Regions
// without an explicit row fall back to the UK Average row.
func DeliveryRateFor(region string) DeliveryRate {
	if rate, ok := deliveryRates[region]; ok {
		return rate
	}
	return deliveryRates[RegionUKAverage]
}

// CustomerClass drives tier minimums and discount depth.
type CustomerClass string

const (
	ClassRetail   CustomerClass = "retail"
	ClassTrade    CustomerClass = "trade"
	ClassBusiness CustomerClass = "business"
)

// ParseCustomerClass normalizes free-text customer types; anything
// unrecognized prices as retail.
func ParseCustomerClass(s string) CustomerClass {
	switch CustomerClass(s) {
	case ClassTrade:
		return ClassTrade
	case ClassBusiness:
		return ClassBusiness
	default:
		return ClassRetail
	}
}

// classMinQty is the class-specific minimum order quantity the tier
// thresholds derive from. All current values sit below the 50-unit
// floor, so discount depth is where classes actually diverge.
var classMinQty = map[CustomerClass]int{
	ClassRetail:   10,
	ClassTrade:    25,
	ClassBusiness: 50,
}

// classDiscounts holds discount percentages per tier. Business gets
// deeper cuts at tiers 2 and 3 and is the only class with a tier 4.
var classDiscounts = map[CustomerClass][]decimal.Decimal{
	ClassRetail:   {dec("5"), dec("8"), dec("12")},
	ClassTrade:    {dec("5"), dec("10"), dec("15")},
	ClassBusiness: {dec("5"), dec("12"), dec("18"), dec("25")},
}

// UpgradeFor reports the next customer class with deeper discounts, or
// nil for business (the top class).
func UpgradeFor(class CustomerClass) *string {
	var next string
	switch class {
	case ClassRetail:
		next = string(ClassTrade)
	case ClassTrade:
		next = string(ClassBusiness)
	default:
		return nil
	}
	return &next
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
