package handler

import (
	"net/http"

	"github.com/BuildMate/matgate/internal/middleware"
	"github.com/BuildMate/matgate/internal/model"
	"github.com/BuildMate/matgate/internal/pkg/apperrors"
	"github.com/BuildMate/matgate/internal/service"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) Browse(c *gin.Context) {
	var query model.CatalogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(apperrors.NewValidation(err.Error()))
		return
	}

	data, err := h.svc.Browse(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}

	middleware.AddAuditContext(c, "materials_returned", len(data.Materials))

	meta := model.NewMetadata(middleware.RequestID(c), middleware.RateLimitMeta(c))
	meta.Affiliate = &model.AffiliateMeta{
		Partner:    "BuildMate Partners",
		Disclosure: "Supplier links may earn BuildMate a commission at no cost to you.",
	}

	c.JSON(http.StatusOK, model.Response{
		Success:  true,
		Data:     data,
		Metadata: meta,
	})
}

func (h *CatalogHandler) GetAffiliate(c *gin.Context) {
	productID := c.Param("id")
	if productID == "" {
		c.Error(apperrors.NewValidation("product id is required"))
		return
	}

	info, err := h.svc.Affiliate(c.Request.Context(), productID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success:  true,
		Data:     info,
		Metadata: model.NewMetadata(middleware.RequestID(c), middleware.RateLimitMeta(c)),
	})
}
