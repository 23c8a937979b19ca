package product_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-cpq/internal/product"
	mock_product "go-cpq/internal/product/mock"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestProductHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := mock_product.NewMockService(gomock.NewController(t))
	svc.EXPECT().GetAll(gomock.Any(), "Acme").Return([]product.ProductResponse{
		{ID: 1, Name: "Widget", Category: "hw", UnitPrice: decimal.NewFromInt(10), IsActive: true},
		{ID: 2, Name: "Gadget", Category: "hw", UnitPrice: decimal.NewFromInt(5), IsActive: true},
		{ID: 3, Name: "Licence", Category: "sw", UnitPrice: decimal.NewFromInt(1), IsActive: true},
		{ID: 4, Name: "Old widget", Category: "hw", IsActive: false},
	}, nil)
	h := product.NewHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/products?category=hw&active=true&sort_by=price&sort_dir=asc", nil)
	c.Set("company_name", "Acme")

	h.GetAll(c)

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, body, "Licence")
	assert.NotContains(t, body, "Old widget")
	assert.Less(t, strings.Index(body, "Gadget"), strings.Index(body, `"Widget"`))
}

func TestProductHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := mock_product.NewMockService(gomock.NewController(t))
	svc.EXPECT().Create(gomock.Any(), "Acme", "u-1", gomock.Any(), gomock.Nil()).
		Return(product.ProductResponse{ID: 1, Name: "Widget"}, nil)
	h := product.NewHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Widget","unitPrice":"100","taxRate":18}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_name", "Acme")
	c.Set("user_id", "u-1")

	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
}
