package handler

import (
	"net/http"
	"strconv"

	"github.com/BuildMate/matgate/internal/middleware"
	"github.com/BuildMate/matgate/internal/model"
	"github.com/BuildMate/matgate/internal/service"
	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	svc *service.AuditService
}

func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

func (h *AuditHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	path := c.Query("path")

	records, err := h.svc.List(c.Request.Context(), path, limit)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success:  true,
		Data:     gin.H{"entries": records, "count": len(records)},
		Metadata: model.NewMetadata(middleware.RequestID(c), nil),
	})
}
