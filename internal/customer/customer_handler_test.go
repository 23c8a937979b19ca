package customer_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-cpq/internal/customer"
	mock_customer "go-cpq/internal/customer/mock"
	"go-cpq/internal/middleware"
	"go-cpq/internal/shared/apperror"
	"go-cpq/internal/shared/upload"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func setupHandler(t *testing.T) (*mock_customer.MockService, *customer.Handler) {
	ctrl := gomock.NewController(t)
	svc := mock_customer.NewMockService(ctrl)
	return svc, customer.NewHandler(svc, zap.NewNop())
}

func TestCustomerHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, h := setupHandler(t)
	svc.EXPECT().GetAll(gomock.Any(), "Acme").Return([]customer.CustomerResponse{
		{ID: 1, DisplayName: "Globex"},
		{ID: 2, DisplayName: "Initech"},
		{ID: 3, DisplayName: "Globex-EU"},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/customers?q=globex&sort_by=name&sort_dir=asc", nil)
	c.Set("company_name", "Acme")

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "Initech")
	assert.Less(t, strings.Index(body, `"Globex"`), strings.Index(body, `"Globex-EU"`))
}

func TestCustomerHandler_GetByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("forbidden", func(t *testing.T) {
		svc, h := setupHandler(t)
		svc.EXPECT().GetByID(gomock.Any(), "Acme", uint(7)).Return(customer.CustomerResponse{}, apperror.ErrForbidden)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/customers/7", nil)
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		c.Set("company_name", "Acme")

		h.GetByID(c)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, h := setupHandler(t)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/customers/x", nil)
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		h.GetByID(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCustomerHandler_CreateMultipart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, h := setupHandler(t)

	svc.EXPECT().
		Create(gomock.Any(), "Acme", "u-1", customer.CreateCustomerRequest{Name: "Globex"}, gomock.Len(1)).
		Return(customer.CustomerResponse{ID: 1, Name: "Globex"}, nil)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("data", `{"name":"Globex"}`))
	part, err := mw.CreateFormFile(customer.DocumentsField, "nda.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.7\n1 0 obj\n"))
	require.NoError(t, mw.Close())

	r := gin.New()
	r.POST("/customers", func(c *gin.Context) {
		c.Set("company_name", "Acme")
		c.Set("user_id", "u-1")
		c.Next()
	}, middleware.UploadFilter(upload.Rule{Field: customer.DocumentsField, MaxCount: 10, Allowed: upload.DocumentTypes}), h.Create)

	req := httptest.NewRequest(http.MethodPost, "/customers", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCustomerHandler_CreateValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, h := setupHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"email":"nope"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
