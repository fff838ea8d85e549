package catalog

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/BuildMate/matgate/internal/model"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Catalog is the static in-memory product table. Reference data is
// immutable after construction; the RWMutex only guards the index
// rebuild path used by tests seeding their own fixtures.
type Catalog struct {
	mu       sync.RWMutex
	products []model.Product
	byID     map[string]model.Product
}

func New() *Catalog {
	c := &Catalog{}
	c.Replace(defaultProducts())
	return c
}

// NewWithProducts builds a catalog over the given fixture set.
func NewWithProducts(products []model.Product) *Catalog {
	c := &Catalog{}
	c.Replace(products)
	return c
}

func (c *Catalog) Replace(products []model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
	c.byID = make(map[string]model.Product, len(products))
	for _, p := range products {
		c.byID[p.ID] = p
	}
}

func (c *Catalog) Get(id string) (model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) All() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

// Filter applies the browse filters: exact category match and a
// case-insensitive substring search over name, description and
// subcategory.
func (c *Catalog) Filter(category, search string) []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	results := c.products
	if category != "" {
		results = lo.Filter(results, func(p model.Product, _ int) bool {
			return p.Category == category
		})
	}
	if search != "" {
		needle := strings.ToLower(search)
		results = lo.Filter(results, func(p model.Product, _ int) bool {
			return strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) ||
				strings.Contains(strings.ToLower(p.Subcategory), needle)
		})
	}
	return results
}

const affiliateTag = "buildmate"

var supplierSites = map[string]string{
	"B&Q":            "https://www.diy.com/departments",
	"Wickes":         "https://www.wickes.co.uk/products",
	"Screwfix":       "https://www.screwfix.com/p",
	"Travis Perkins": "https://www.travisperkins.co.uk/p",
}

// AffiliateURL returns the stable tracking URL for a product id. The
// mapping is derived, not stored, so it cannot drift from the catalog.
func AffiliateURL(p model.Product) string {
	site, ok := supplierSites[p.Supplier]
	if !ok {
		site = "https://www.buildmate.co.uk/materials"
	}
	slug := strings.ToLower(strings.ReplaceAll(p.ID, "_", "-"))
	return fmt.Sprintf("%s/%s?aff=%s", site, slug, url.QueryEscape(affiliateTag))
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// defaultProducts is the reference table supplied by the catalog
// collaborator. Prices are per-unit net of VAT.
func defaultProducts() []model.Product {
	return []model.Product{
		{
			ID: "BQ_CEMENT_003", Name: "Blue Circle General Purpose Cement 25kg",
			Description: "Multi-purpose cement for concrete, mortar and rendering",
			Category:    "cement", Subcategory: "general purpose", Supplier: "B&Q",
			Unit: "bag", BasePrice: price("4.80"), UnitWeightKg: 25, BulkEligible: true,
		},
		{
			ID: "BQ_CEMENT_007", Name: "Blue Circle Postcrete 20kg",
			Description: "Fast-setting post fix concrete, sets in 10 minutes",
			Category:    "cement", Subcategory: "fast set", Supplier: "B&Q",
			Unit: "bag", BasePrice: price("6.25"), UnitWeightKg: 20, BulkEligible: true,
		},
		{
			ID: "TP_AGG_BALLAST_001", Name: "Ballast Bulk Bag 800kg",
			Description: "Sand and gravel mix for concrete foundations",
			Category:    "aggregates", Subcategory: "ballast", Supplier: "Travis Perkins",
			Unit: "bulk bag", BasePrice: price("58.50"), UnitWeightKg: 800, BulkEligible: true,
		},
		{
			ID: "TP_AGG_SAND_002", Name: "Building Sand Bulk Bag 800kg",
			Description: "Soft building sand for bricklaying mortar",
			Category:    "aggregates", Subcategory: "sand", Supplier: "Travis Perkins",
			Unit: "bulk bag", BasePrice: price("52.00"), UnitWeightKg: 800, BulkEligible: true,
		},
		{
			ID: "WICKES_BRICK_010", Name: "Engineering Brick Class B Red 65mm",
			Description: "Frost-resistant engineering brick for below-DPC work",
			Category:    "bricks", Subcategory: "engineering", Supplier: "Wickes",
			Unit: "each", BasePrice: price("0.68"), UnitWeightKg: 2.9, BulkEligible: true,
		},
		{
			ID: "WICKES_BRICK_014", Name: "Facing Brick Smooth Red 65mm",
			Description: "Smooth red facing brick for external walls",
			Category:    "bricks", Subcategory: "facing", Supplier: "Wickes",
			Unit: "each", BasePrice: price("0.92"), UnitWeightKg: 2.5, BulkEligible: true,
		},
		{
			ID: "TP_BLOCK_100_004", Name: "Concrete Block 7.3N 100mm",
			Description: "Dense concrete block for load-bearing walls",
			Category:    "blocks", Subcategory: "dense", Supplier: "Travis Perkins",
			Unit: "each", BasePrice: price("1.95"), UnitWeightKg: 17, BulkEligible: true,
		},
		{
			ID: "WICKES_TIMBER_CLS_008", Name: "CLS Studwork Timber 38x63mm 2.4m",
			Description: "Planed kiln-dried softwood for stud partitions",
			Category:    "timber", Subcategory: "studwork", Supplier: "Wickes",
			Unit: "length", BasePrice: price("3.85"), UnitWeightKg: 3.4, BulkEligible: true,
		},
		{
			ID: "TP_TIMBER_C24_011", Name: "Treated C24 Carcassing 47x150mm 3.6m",
			Description: "Structural graded treated timber joists",
			Category:    "timber", Subcategory: "carcassing", Supplier: "Travis Perkins",
			Unit: "length", BasePrice: price("14.20"), UnitWeightKg: 12.8, BulkEligible: true,
		},
		{
			ID: "BQ_PLASTERBOARD_005", Name: "Gyproc WallBoard 12.5mm 2400x1200mm",
			Description: "Standard plasterboard for walls and ceilings",
			Category:    "plasterboard", Subcategory: "standard", Supplier: "B&Q",
			Unit: "sheet", BasePrice: price("8.95"), UnitWeightKg: 23, BulkEligible: true,
		},
		{
			ID: "SF_INSULATION_100_009", Name: "Loft Insulation Roll 100mm 13.89m2",
			Description: "Glass mineral wool loft roll",
			Category:    "insulation", Subcategory: "loft roll", Supplier: "Screwfix",
			Unit: "roll", BasePrice: price("24.00"), UnitWeightKg: 12, BulkEligible: false,
		},
		{
			ID: "SF_PIR_50_012", Name: "PIR Insulation Board 50mm 2400x1200mm",
			Description: "Rigid foil-faced PIR board for floors and walls",
			Category:    "insulation", Subcategory: "rigid board", Supplier: "Screwfix",
			Unit: "sheet", BasePrice: price("21.50"), UnitWeightKg: 4.2, BulkEligible: false,
		},
		{
			ID: "SF_DPM_1200_013", Name: "Damp Proof Membrane 1200 Gauge 4x25m",
			Description: "Polythene DPM for concrete floor construction",
			Category:    "membranes", Subcategory: "dpm", Supplier: "Screwfix",
			Unit: "roll", BasePrice: price("42.00"), UnitWeightKg: 28, BulkEligible: false,
		},
		{
			ID: "BQ_PLASTER_006", Name: "Thistle MultiFinish Plaster 25kg",
			Description: "Final coat finishing plaster for most backgrounds",
			Category:    "plaster", Subcategory: "finish", Supplier: "B&Q",
			Unit: "bag", BasePrice: price("9.40"), UnitWeightKg: 25, BulkEligible: true,
		},
	}
}
