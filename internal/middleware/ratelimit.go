package middleware

import (
	"net/http"
	"time"

	"github.com/BuildMate/matgate/internal/model"
	"github.com/BuildMate/matgate/internal/pkg/logger"
	"github.com/BuildMate/matgate/internal/pkg/metrics"
	"github.com/BuildMate/matgate/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware enforces one fixed-window limiter, keyed by
// client IP. The decision snapshot lands in the context so handlers can
// echo remaining/reset in response metadata.
func RateLimitMiddleware(limiter *ratelimit.Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Store trouble fails open: pricing availability beats
			// quota precision.
			logger.Warn("rate limit store unavailable, admitting request",
				"scope", scope, "error", err.Error())
		}

		meta := &model.RateLimitMeta{
			Remaining: decision.Remaining,
			ResetTime: decision.ResetTime.UTC().Format(time.RFC3339),
		}
		c.Set(ContextRateLimit, meta)

		if !decision.Allowed {
			metrics.RateLimitRejects.WithLabelValues(scope).Inc()
			c.JSON(http.StatusTooManyRequests, model.Response{
				Success:  false,
				Error:    "rate limit exceeded",
				Metadata: model.NewMetadata(RequestID(c), meta),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
