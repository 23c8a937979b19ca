package order_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-cpq/internal/order"
	ordererrors "go-cpq/internal/order/errors"
	mock_order "go-cpq/internal/order/mock"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestOrderHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("created with exact money", func(t *testing.T) {
		svc := mock_order.NewMockService(gomock.NewController(t))
		svc.EXPECT().Create(gomock.Any(), "Acme", "u-1", gomock.Any(), order.OrderFiles{}).DoAndReturn(
			func(_ context.Context, _ string, _ string, req order.CreateOrderRequest, _ order.OrderFiles) (order.OrderResponse, error) {
				assert.True(t, req.Items[0].UnitPrice.Equal(decimal.RequireFromString("19.99")))
				return order.OrderResponse{
					ID:          11,
					OrderNumber: "ACME-260305-GLOBEX-000",
					Status:      order.StatusPending,
					TotalAmount: decimal.RequireFromString("58.47"),
				}, nil
			})
		h := order.NewHandler(svc, zap.NewNop())

		body := `{"customerId":5,"orderDate":"2026-03-05","items":[{"productName":"Gadget","unitPrice":"19.99","quantity":"3","taxRate":"7.5","discountRate":"10"}]}`
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("company_name", "Acme")
		c.Set("user_id", "u-1")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"orderNumber":"ACME-260305-GLOBEX-000"`)
		assert.Contains(t, w.Body.String(), `"totalAmount":"58.47"`)
	})

	t.Run("taken order number", func(t *testing.T) {
		svc := mock_order.NewMockService(gomock.NewController(t))
		svc.EXPECT().Create(gomock.Any(), "Acme", "u-1", gomock.Any(), order.OrderFiles{}).
			Return(order.OrderResponse{}, ordererrors.ErrOrderNumberExists)
		h := order.NewHandler(svc, zap.NewNop())

		body := `{"customerId":5,"orderNumber":"PO-1","items":[{"productName":"Gadget","unitPrice":"1","quantity":"1"}]}`
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("company_name", "Acme")
		c.Set("user_id", "u-1")

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Order number already exists")
	})

	t.Run("bad order date", func(t *testing.T) {
		svc := mock_order.NewMockService(gomock.NewController(t))
		h := order.NewHandler(svc, zap.NewNop())

		body := `{"customerId":5,"orderDate":"05/03/2026","items":[{"productName":"Gadget","unitPrice":"1","quantity":"1"}]}`
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := mock_order.NewMockService(gomock.NewController(t))
	svc.EXPECT().GetAll(gomock.Any(), "Acme", order.Filter{CustomerID: 5, QuoteID: 9}).Return([]order.OrderResponse{
		{ID: 1, OrderNumber: "ACME-260301-GLOBEX-000", TotalAmount: decimal.NewFromInt(10)},
		{ID: 2, OrderNumber: "ACME-260302-GLOBEX-000", TotalAmount: decimal.NewFromInt(30)},
		{ID: 3, OrderNumber: "PO-1", TotalAmount: decimal.NewFromInt(20)},
	}, nil)
	h := order.NewHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/orders?customerId=5&quoteId=9&q=globex&sort_by=total&sort_dir=desc", nil)
	c.Set("company_name", "Acme")

	h.GetAll(c)

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, body, "PO-1")
	assert.Less(t, strings.Index(body, "ACME-260302"), strings.Index(body, "ACME-260301"))
}

func TestOrderHandler_GetByNumber(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := mock_order.NewMockService(gomock.NewController(t))
	svc.EXPECT().GetByNumber(gomock.Any(), "Acme", "PO-404").Return(order.OrderResponse{}, ordererrors.ErrOrderNotFound)
	h := order.NewHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/orders/number/PO-404", nil)
	c.Params = gin.Params{{Key: "orderNumber", Value: "PO-404"}}
	c.Set("company_name", "Acme")

	h.GetByNumber(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_DownloadPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := mock_order.NewMockService(gomock.NewController(t))
	svc.EXPECT().RenderPDF(gomock.Any(), "Acme", uint(11)).Return(order.PDFFile{FileName: "order-PO-1.pdf", Data: []byte("%PDF-1.3")}, nil)
	h := order.NewHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/orders/11/pdf?download=1", nil)
	c.Params = gin.Params{{Key: "id", Value: "11"}}
	c.Set("company_name", "Acme")

	h.DownloadPDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="order-PO-1.pdf"`, w.Header().Get("Content-Disposition"))
}
