package keepalive_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-cpq/internal/keepalive"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPinger_Ping(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		p := keepalive.NewPinger(srv.URL+"/health", zap.NewNop())
		assert.NoError(t, p.Ping(context.Background()))
	})

	t.Run("unhealthy", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		p := keepalive.NewPinger(srv.URL, zap.NewNop())
		assert.ErrorContains(t, p.Ping(context.Background()), "503")
	})
}

func TestStart(t *testing.T) {
	t.Run("disabled without url", func(t *testing.T) {
		c, err := keepalive.Start("@every 1m", "", zap.NewNop())
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("invalid schedule", func(t *testing.T) {
		_, err := keepalive.Start("every minute", "http://localhost/health", zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("scheduled", func(t *testing.T) {
		c, err := keepalive.Start("@every 1m", "http://localhost/health", zap.NewNop())
		assert.NoError(t, err)
		assert.Len(t, c.Entries(), 1)
		c.Stop()
	})
}
