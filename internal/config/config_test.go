package config_test

import (
	"testing"
	"time"

	"go-cpq/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	assert.NoError(t, err)
	assert.Equal(t, "3000", cfg.HTTP.Port)
	assert.Equal(t, "RS256", cfg.Auth.Algorithm)
	assert.Equal(t, "images", cfg.Storage.ImagesContainer)
	assert.Equal(t, "documents", cfg.Storage.DocsContainer)
	assert.Equal(t, "quote-pdfs", cfg.Storage.QuotePDFs)
	assert.Equal(t, "@every 1m", cfg.KeepAlive.Schedule)
	assert.Equal(t, 5*time.Second, cfg.PDF.FetchTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("AUTH_ISSUER", "https://idp.example.com/")

	cfg, err := config.Load("")
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "https://idp.example.com/", cfg.Auth.Issuer)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
}

func TestValidateAPI(t *testing.T) {
	cfg, err := config.Load("")
	assert.NoError(t, err)
	assert.Error(t, cfg.ValidateAPI())

	cfg.Auth.JWKSURL = "https://idp.example.com/.well-known/jwks.json"
	cfg.Auth.Issuer = "https://idp.example.com/"
	cfg.Auth.Audience = "cpq-api"
	cfg.Storage.AccountURL = "https://acct.blob.core.windows.net"
	assert.NoError(t, cfg.ValidateAPI())

	cfg.Auth.Algorithm = "HS256"
	assert.Error(t, cfg.ValidateAPI())
}
