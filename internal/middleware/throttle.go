package middleware

import (
	"net/http"

	"github.com/BuildMate/matgate/internal/model"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ThrottleMiddleware is a process-wide token bucket in front of the
// per-client hourly windows; it bounds total throughput during floods
// rather than apportioning quota.
func ThrottleMiddleware(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, model.Response{
				Success:  false,
				Error:    "server busy, retry shortly",
				Metadata: model.NewMetadata(RequestID(c), nil),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
