package middleware

import (
	"github.com/BuildMate/matgate/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextRequestID = "request_id"
	ContextRateLimit = "rate_limit"
	ContextAuditLog  = "audit_log"
)

// RequestID returns the id minted for this request, or a fresh one if
// no middleware has set it. Every response carries a unique id, even
// when its payload came from the pricing cache.
func RequestID(c *gin.Context) string {
	if id, ok := c.Get(ContextRequestID); ok {
		return id.(string)
	}
	return uuid.New().String()
}

// RateLimitMeta returns the quota snapshot recorded by the rate-limit
// middleware, if any.
func RateLimitMeta(c *gin.Context) *model.RateLimitMeta {
	if val, ok := c.Get(ContextRateLimit); ok {
		return val.(*model.RateLimitMeta)
	}
	return nil
}
