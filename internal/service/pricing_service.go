package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BuildMate/matgate/internal/cache"
	"github.com/BuildMate/matgate/internal/catalog"
	"github.com/BuildMate/matgate/internal/config"
	"github.com/BuildMate/matgate/internal/model"
	"github.com/BuildMate/matgate/internal/pkg/apperrors"
	"github.com/BuildMate/matgate/internal/pkg/logger"
	"github.com/BuildMate/matgate/internal/pkg/metrics"
	"github.com/BuildMate/matgate/internal/pricing"
	"github.com/shopspring/decimal"
)

// PricingService orchestrates one bulk pricing request: structural
// validation, catalog resolution, tier/VAT/delivery computation and the
// pricing cache around it all.
type PricingService struct {
	catalog         *catalog.Catalog
	cache           cache.Store
	vatRate         decimal.Decimal
	quoteValidity   time.Duration
	defaultPostcode string
}

func NewPricingService(cat *catalog.Catalog, store cache.Store, cfg *config.Config) *PricingService {
	return &PricingService{
		catalog:         cat,
		cache:           store,
		vatRate:         decimal.NewFromFloat(cfg.Pricing.VATRate),
		quoteValidity:   time.Duration(cfg.Pricing.QuoteValidityHours) * time.Hour,
		defaultPostcode: cfg.Pricing.DefaultPostcode,
	}
}

// Quote prices a batch. The returned flag reports whether the payload
// came from the cache; callers still mint a fresh request id either way.
func (s *PricingService) Quote(ctx context.Context, req model.BulkPricingRequest) (*model.BulkPricingData, bool, error) {
	if err := validateQuoteRequest(req); err != nil {
		metrics.QuotesTotal.WithLabelValues("invalid", req.CustomerType).Inc()
		return nil, false, err
	}

	postcode := req.Postcode
	if postcode == "" {
		postcode = s.defaultPostcode
	}
	class := pricing.ParseCustomerClass(req.CustomerType)

	key := cache.Key(req.ProductIDs, req.Quantities, postcode, string(class))
	if payload, ok := s.cache.Get(ctx, key); ok {
		var data model.BulkPricingData
		if err := json.Unmarshal(payload, &data); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			metrics.QuotesTotal.WithLabelValues("cached", string(class)).Inc()
			return &data, true, nil
		}
		logger.Warn("discarding undecodable cache entry", "key", key)
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	data, err := s.compute(req, postcode, class)
	if err != nil {
		metrics.QuotesTotal.WithLabelValues("rejected", string(class)).Inc()
		return nil, false, err
	}

	if payload, err := json.Marshal(data); err == nil {
		s.cache.Set(ctx, key, payload)
	}
	metrics.QuotesTotal.WithLabelValues("computed", string(class)).Inc()
	return data, false, nil
}

func validateQuoteRequest(req model.BulkPricingRequest) error {
	if len(req.ProductIDs) == 0 {
		return apperrors.NewValidation("productIds must not be empty")
	}
	if len(req.Quantities) == 0 {
		return apperrors.NewValidation("quantities must not be empty")
	}
	if len(req.ProductIDs) != len(req.Quantities) {
		return apperrors.NewValidation(fmt.Sprintf(
			"productIds and quantities must have equal length (%d != %d)",
			len(req.ProductIDs), len(req.Quantities)))
	}
	for i, q := range req.Quantities {
		if q <= 0 {
			return apperrors.NewValidation(fmt.Sprintf("quantity at index %d must be positive", i))
		}
	}
	return nil
}

func (s *PricingService) compute(req model.BulkPricingRequest, postcode string, class pricing.CustomerClass) (*model.BulkPricingData, error) {
	// Resolve every product before computing anything: an unknown id
	// fails the whole batch, never a partial products array.
	products := make([]model.Product, len(req.ProductIDs))
	for i, id := range req.ProductIDs {
		p, ok := s.catalog.Get(id)
		if !ok {
			return nil, apperrors.NewNotFound(fmt.Sprintf("unknown product id: %s", id))
		}
		products[i] = p
	}

	region := pricing.Resolve(postcode)
	mult := region.Multiplier

	quotes := make([]model.ProductQuote, 0, len(products))
	deliveryItems := make([]pricing.DeliveryItem, 0, len(products))

	standardGross := decimal.Zero
	bulkGross := decimal.Zero
	totalQty := 0

	for i, p := range products {
		qty := req.Quantities[i]
		totalQty += qty

		tiers := pricing.BuildTiers(p.BasePrice, p.BulkEligible, qty, class, mult)
		adjusted := p.BasePrice.Mul(decimal.NewFromFloat(mult))
		qtyDec := decimal.NewFromInt(int64(qty))

		std := pricing.CalculateVAT(adjusted.Mul(qtyDec), s.vatRate)
		bulk := pricing.CalculateVAT(tiers.Selected.UnitPrice.Mul(qtyDec), s.vatRate)

		savings := std.Gross.Sub(bulk.Gross)
		savingsPct := decimal.Zero
		if std.Gross.IsPositive() {
			savingsPct = savings.Div(std.Gross).Mul(decimal.NewFromInt(100))
		}

		quotes = append(quotes, model.ProductQuote{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  qty,
			StandardPricing: model.PriceBlock{
				UnitPrice: round2(adjusted),
				Subtotal:  round2(std.Net),
				VAT:       round2(std.VAT),
				Total:     round2(std.Gross),
			},
			BulkPricing: model.BulkBlock{
				UnitPrice:         round2(tiers.Selected.UnitPrice),
				Subtotal:          round2(bulk.Net),
				VAT:               round2(bulk.VAT),
				Total:             round2(bulk.Gross),
				Savings:           round2(savings),
				SavingsPercentage: round2(savingsPct),
				AppliedTier:       tierView(tiers.Selected),
			},
			Tiers: tierViews(tiers.Tiers),
		})

		deliveryItems = append(deliveryItems, pricing.DeliveryItem{
			UnitWeightKg: p.UnitWeightKg,
			UnitPrice:    p.BasePrice,
			Quantity:     qty,
		})

		standardGross = standardGross.Add(std.Gross)
		bulkGross = bulkGross.Add(bulk.Gross)
	}

	delivery := pricing.EstimateDelivery(deliveryItems, postcode)

	totalSavings := standardGross.Sub(bulkGross)
	savingsPct := decimal.Zero
	if standardGross.IsPositive() {
		savingsPct = totalSavings.Div(standardGross).Mul(decimal.NewFromInt(100))
	}

	now := time.Now().UTC()
	data := &model.BulkPricingData{
		Summary: model.PricingSummary{
			TotalItems:        len(products),
			TotalQuantity:     totalQty,
			StandardTotal:     round2(standardGross),
			BulkTotal:         round2(bulkGross),
			TotalSavings:      round2(totalSavings),
			SavingsPercentage: round2(savingsPct),
		},
		Products: quotes,
		Delivery: model.DeliveryQuote{
			TotalWeightKg:         round2(delivery.TotalWeightKg),
			DeliveryFee:           round2(delivery.Fee),
			FreeDeliveryThreshold: round2(delivery.FreeDeliveryThreshold),
			FreeDeliveryApplied:   delivery.Waived,
			Region:                delivery.Region,
		},
		Regional: model.RegionalInfo{
			Postcode:   postcode,
			Region:     region.Region,
			Multiplier: region.Multiplier,
		},
		CustomerType: string(class),
		DiscountEligibility: model.DiscountEligibility{
			CurrentClass:     string(class),
			UpgradeAvailable: pricing.UpgradeFor(class),
		},
		// Quote validity is independent of the cache TTL: a quoted
		// price may outlive its cache entry.
		ValidUntil: now.Add(s.quoteValidity).Format(time.RFC3339),
		Terms: fmt.Sprintf(
			"Prices include VAT where applicable. Quote valid for %s from issue. Delivery subject to stock availability.",
			s.quoteValidity),
	}
	return data, nil
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func tierView(t pricing.Tier) model.TierView {
	return model.TierView{
		MinQuantity:     t.MinQuantity,
		MaxQuantity:     t.MaxQuantity,
		UnitPrice:       round2(t.UnitPrice),
		DiscountPercent: round2(t.DiscountPercent),
		SavingsPerUnit:  round2(t.SavingsPerUnit),
		TotalSavings:    round2(t.TotalSavings),
	}
}

func tierViews(tiers []pricing.Tier) []model.TierView {
	views := make([]model.TierView, len(tiers))
	for i, t := range tiers {
		views[i] = tierView(t)
	}
	return views
}
