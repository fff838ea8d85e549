package middleware

import (
	"bytes"
	"io"
	"time"

	"github.com/BuildMate/matgate/internal/model"
	"github.com/BuildMate/matgate/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxAuditBody = 8 * 1024

// bodyLogWriter tees the response body for the audit record.
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// AuditMiddleware mints the request id and captures the full exchange
// for the async audit trail. Handlers may attach business context via
// AddAuditContext.
func AuditMiddleware(auditSvc *service.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.New().String()
		c.Set(ContextRequestID, reqID)
		c.Header("X-Request-ID", reqID)

		// Read the body up front and put it back for binding.
		var reqBodyBytes []byte
		if c.Request.Body != nil {
			reqBodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(reqBodyBytes))
		}

		auditEntry := &model.AuditLog{
			ID:        reqID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			CreatedAt: start,
			Context:   make(map[string]interface{}),
		}
		c.Set(ContextAuditLog, auditEntry)

		blw := &bodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		auditEntry.RequestBody = truncateBody(reqBodyBytes)
		auditEntry.StatusCode = c.Writer.Status()
		auditEntry.ResponseBody = truncateBody(blw.body.Bytes())
		auditEntry.LatencyMs = time.Since(start).Milliseconds()

		auditSvc.Log(auditEntry)
	}
}

// AddAuditContext lets handlers attach business fields to the record.
func AddAuditContext(c *gin.Context, key string, value interface{}) {
	if val, exists := c.Get(ContextAuditLog); exists {
		if entry, ok := val.(*model.AuditLog); ok {
			entry.Context[key] = value
		}
	}
}

func truncateBody(b []byte) string {
	if len(b) > maxAuditBody {
		return string(b[:maxAuditBody]) + "...[truncated]"
	}
	return string(b)
}
