package service

import (
	"context"
	"fmt"

	"github.com/BuildMate/matgate/internal/catalog"
	"github.com/BuildMate/matgate/internal/config"
	"github.com/BuildMate/matgate/internal/model"
	"github.com/BuildMate/matgate/internal/pkg/apperrors"
	"github.com/BuildMate/matgate/internal/pricing"
	"github.com/shopspring/decimal"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CatalogService serves the browse endpoint: filtering, pagination and
// per-product regionally adjusted display pricing. No caching here; the
// browse path is cheap enough to compute per request.
type CatalogService struct {
	catalog         *catalog.Catalog
	stock           *catalog.StockGenerator
	vatRate         decimal.Decimal
	defaultPostcode string
}

func NewCatalogService(cat *catalog.Catalog, stock *catalog.StockGenerator, cfg *config.Config) *CatalogService {
	return &CatalogService{
		catalog:         cat,
		stock:           stock,
		vatRate:         decimal.NewFromFloat(cfg.Pricing.VATRate),
		defaultPostcode: cfg.Pricing.DefaultPostcode,
	}
}

func (s *CatalogService) Browse(_ context.Context, q model.CatalogQuery) (*model.CatalogData, error) {
	if q.Limit <= 0 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Postcode == "" {
		q.Postcode = s.defaultPostcode
	}
	if q.CustomerType == "" {
		q.CustomerType = string(pricing.ClassRetail)
	}

	region := pricing.Resolve(q.Postcode)
	matched := s.catalog.Filter(q.Category, q.Search)
	total := len(matched)

	start := q.Offset
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	page := matched[start:end]

	mult := decimal.NewFromFloat(region.Multiplier)
	materials := make([]model.MaterialView, 0, len(page))
	for _, p := range page {
		adjusted := p.BasePrice.Mul(mult)
		vat := pricing.CalculateVAT(adjusted, s.vatRate)
		materials = append(materials, model.MaterialView{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Category:     p.Category,
			Subcategory:  p.Subcategory,
			Supplier:     p.Supplier,
			Unit:         p.Unit,
			BasePrice:    round2(p.BasePrice),
			UnitPrice:    round2(vat.Net),
			VAT:          round2(vat.VAT),
			GrossPrice:   round2(vat.Gross),
			BulkEligible: p.BulkEligible,
			UnitWeightKg: p.UnitWeightKg,
			Stock:        s.stock.For(p),
			AffiliateURL: catalog.AffiliateURL(p),
		})
	}

	return &model.CatalogData{
		Materials: materials,
		Pagination: model.Pagination{
			Total:   total,
			Limit:   q.Limit,
			Offset:  q.Offset,
			HasMore: q.Offset+q.Limit < total,
		},
		Filters: model.CatalogFilters{
			Category:     q.Category,
			Search:       q.Search,
			Postcode:     q.Postcode,
			CustomerType: q.CustomerType,
			Region:       region.Region,
		},
	}, nil
}

// Affiliate resolves the stable tracking mapping for one product.
func (s *CatalogService) Affiliate(_ context.Context, productID string) (*model.AffiliateInfo, error) {
	p, ok := s.catalog.Get(productID)
	if !ok {
		return nil, apperrors.NewNotFound(fmt.Sprintf("unknown product id: %s", productID))
	}
	return &model.AffiliateInfo{
		ProductID:   p.ID,
		Supplier:    p.Supplier,
		TrackingURL: catalog.AffiliateURL(p),
	}, nil
}
