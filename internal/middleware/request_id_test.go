package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-cpq/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tc := range []struct {
		name   string
		header string
		keep   bool
	}{
		{"keeps a well formed id", "req-42_a.b:c", true},
		{"mints when missing", "", false},
		{"mints when too long", strings.Repeat("a", maxRequestIDLen+1), false},
		{"mints when it carries spaces", "req 42", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestID(zap.NewNop()))
			var fromCtx string
			r.GET("/ping", func(c *gin.Context) {
				fromCtx = contextutil.GetRequestID(c.Request.Context())
				c.Status(http.StatusNoContent)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.header != "" {
				req.Header.Set(requestIDHeader, tc.header)
			}
			r.ServeHTTP(w, req)

			got := w.Header().Get(requestIDHeader)
			assert.NotEmpty(t, got)
			assert.Equal(t, got, fromCtx)
			if tc.keep {
				assert.Equal(t, tc.header, got)
			} else {
				assert.NotEqual(t, tc.header, got)
			}
		})
	}
}
