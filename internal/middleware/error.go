package middleware

import (
	"errors"

	"github.com/BuildMate/matgate/internal/model"
	"github.com/BuildMate/matgate/internal/pkg/apperrors"
	"github.com/BuildMate/matgate/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last context error in the shared envelope
// shape so callers branch on a single success field.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperrors.AppError

		if !errors.As(err, &appErr) {
			appErr = apperrors.Wrap(err)
		}

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"code", appErr.Type,
			"client_ip", c.ClientIP(),
		}

		message := appErr.Message
		if appErr.HTTPStatus >= 500 {
			logger.LogError(c.Request.Context(), appErr, "Internal Server Error", logFields...)
			// Do not leak the cause to the caller.
			message = "internal error"
		} else {
			logger.Warn(appErr.Message, logFields...)
		}

		c.JSON(appErr.HTTPStatus, model.Response{
			Success:  false,
			Error:    message,
			Metadata: model.NewMetadata(RequestID(c), RateLimitMeta(c)),
		})
	}
}
