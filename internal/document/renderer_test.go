package document_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-cpq/internal/document"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleDocument(logoURL string) document.Document {
	return document.Document{
		Title:    "Quotation",
		Number:   "001",
		Date:     time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		LogoURL:  logoURL,
		Currency: "USD",
		Meta:     []document.Field{{Label: "Status", Value: "Drafted"}},
		From:     document.Party{Heading: "From", Name: "Acme"},
		To:       document.Party{Heading: "Bill To", Name: "Globex-East", Lines: []string{"1 Main St", "Springfield"}},
		Items: []document.LineItem{{
			Name:      "Widget",
			Quantity:  decimal.NewFromInt(2),
			UnitPrice: decimal.NewFromInt(100),
			Tax:       decimal.NewFromInt(18),
			Discount:  decimal.Zero,
			Amount:    decimal.NewFromInt(236),
		}},
		Totals: []document.Field{{Label: "Total", Value: document.Money("USD", decimal.NewFromInt(236))}},
		Notes:  "Prices valid for 30 days.",
		Terms:  "Net 30. Café au lait shipping.",
	}
}

func TestRenderer_Render(t *testing.T) {
	ctx := context.Background()

	t.Run("renders with logo", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		img.Set(1, 1, color.RGBA{R: 255, A: 255})
		var logo bytes.Buffer
		require.NoError(t, png.Encode(&logo, img))

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(logo.Bytes())
		}))
		defer srv.Close()

		out, err := document.NewRenderer(time.Second, zap.NewNop()).Render(ctx, sampleDocument(srv.URL+"/logo.png"))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	})

	t.Run("logo failure is ignored", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		out, err := document.NewRenderer(time.Second, zap.NewNop()).Render(ctx, sampleDocument(srv.URL+"/missing.png"))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	})

	t.Run("no items", func(t *testing.T) {
		doc := sampleDocument("")
		doc.Items = nil

		out, err := document.NewRenderer(0).Render(ctx, doc)
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	})
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "quote-001.pdf", document.FileName("quote", "001"))
	assert.Equal(t, "order-draft.pdf", document.FileName("order", ""))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "USD 12.50", document.Money("USD", decimal.RequireFromString("12.5")))
	assert.Equal(t, "3.00", document.Money("", decimal.NewFromInt(3)))
}
