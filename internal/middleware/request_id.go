package middleware

import (
	"time"

	"go-cpq/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	maxRequestIDLen = 128
)

// RequestID honours a well-formed X-Request-ID from the client or mints one,
// echoes it back and puts a request-scoped logger on the context. Public
// routes that never reach ContextLogger still log with the id. One access
// line is written per request.
func RequestID(logger ...*zap.Logger) gin.HandlerFunc {
	base := zap.L().Named("http.access")
	if len(logger) > 0 && logger[0] != nil {
		base = logger[0].Named("http.access")
	}

	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetHeader(requestIDHeader)
		if !validRequestID(rid) {
			rid = uuid.New().String()
		}
		c.Set("request_id", rid)
		c.Header(requestIDHeader, rid)

		reqLogger := base.With(zap.String("request_id", rid))
		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		reqLogger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("company_name", c.GetString("company_name")),
		)
	}
}

// validRequestID accepts ids a proxy or client would plausibly send and
// rejects anything that could break log lines or headers.
func validRequestID(rid string) bool {
	if rid == "" || len(rid) > maxRequestIDLen {
		return false
	}
	for _, r := range rid {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return false
		}
	}
	return true
}
