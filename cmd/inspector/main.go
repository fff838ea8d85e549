package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"github.com/BuildMate/matgate/internal/cache"
	"github.com/BuildMate/matgate/internal/catalog"
	"github.com/BuildMate/matgate/internal/config"
	"github.com/BuildMate/matgate/internal/model"
	"github.com/BuildMate/matgate/internal/pricing"
	"github.com/BuildMate/matgate/internal/service"
)

// Operator smoke tool: resolves a postcode, dumps the catalog and
// prints a sample quote without standing up the HTTP server.
func main() {
	postcode := flag.String("postcode", "SW1A 1AA", "postcode to resolve")
	quantity := flag.Int("quantity", 500, "sample quote quantity")
	customer := flag.String("customer", "business", "customer type for the sample quote")
	flag.Parse()

	res := pricing.Resolve(*postcode)
	fmt.Printf("--- Postcode %q ---\n", *postcode)
	fmt.Printf("Area: %s  Region: %s  Multiplier: %.2f  Valid: %v\n\n", res.Area, res.Region, res.Multiplier, res.Valid)

	cat := catalog.New()
	fmt.Println("--- Catalog ---")
	for _, p := range cat.All() {
		fmt.Printf("%-24s %-40s £%s/%s bulk=%v\n", p.ID, p.Name, p.BasePrice.StringFixed(2), p.Unit, p.BulkEligible)
	}

	cfg := &config.Config{}
	cfg.Pricing.VATRate = 0.20
	cfg.Pricing.QuoteValidityHours = 2
	cfg.Pricing.DefaultPostcode = "SW1A 1AA"

	svc := service.NewPricingService(cat, cache.NewMemoryStore(10*time.Minute), cfg)
	data, _, err := svc.Quote(context.Background(), model.BulkPricingRequest{
		ProductIDs:   []string{"BQ_CEMENT_003"},
		Quantities:   []int{*quantity},
		Postcode:     *postcode,
		CustomerType: *customer,
	})
	if err != nil {
		fmt.Printf("\nsample quote failed: %v\n", err)
		return
	}

	fmt.Println("\n--- Sample Quote ---")
	out, _ := json.MarshalIndent(data, "", "  ")
	fmt.Println(string(out))
}
