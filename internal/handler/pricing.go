package handler

import (
	"net/http"

	"github.com/BuildMate/matgate/internal/middleware"
	"github.com/BuildMate/matgate/internal/model"
	"github.com/BuildMate/matgate/internal/pkg/apperrors"
	"github.com/BuildMate/matgate/internal/service"
	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	svc *service.PricingService
}

func NewPricingHandler(svc *service.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

func (h *PricingHandler) BulkPricing(c *gin.Context) {
	var req model.BulkPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidation(err.Error()))
		return
	}

	data, cached, err := h.svc.Quote(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	middleware.AddAuditContext(c, "product_count", len(req.ProductIDs))
	middleware.AddAuditContext(c, "customer_type", data.CustomerType)
	middleware.AddAuditContext(c, "cache_hit", cached)

	// The request id is minted per request even when the payload came
	// from the cache.
	meta := model.NewMetadata(middleware.RequestID(c), middleware.RateLimitMeta(c))
	meta.Cached = cached

	c.JSON(http.StatusOK, model.Response{
		Success:  true,
		Data:     data,
		Metadata: meta,
	})
}
