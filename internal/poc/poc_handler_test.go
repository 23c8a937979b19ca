package poc_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-cpq/internal/poc"
	mock_poc "go-cpq/internal/poc/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestPocHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("filters by customer", func(t *testing.T) {
		svc := mock_poc.NewMockService(gomock.NewController(t))
		svc.EXPECT().GetAll(gomock.Any(), "Acme", uint(5)).Return([]poc.PocResponse{{ID: 1, Name: "Jane"}}, nil)
		h := poc.NewHandler(svc, zap.NewNop())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/poc?customerId=5", nil)
		c.Set("company_name", "Acme")

		h.GetAll(c)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Jane")
	})

	t.Run("bad customer id", func(t *testing.T) {
		h := poc.NewHandler(mock_poc.NewMockService(gomock.NewController(t)), zap.NewNop())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/poc?customerId=abc", nil)

		h.GetAll(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPocHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := mock_poc.NewMockService(gomock.NewController(t))
	svc.EXPECT().
		Create(gomock.Any(), "Acme", poc.CreatePocRequest{CustomerID: 5, Name: "Jane", IsPrimary: true}).
		Return(poc.PocResponse{ID: 9, CustomerID: 5, Name: "Jane", IsPrimary: true}, nil)
	h := poc.NewHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/poc", strings.NewReader(`{"customerId":5,"name":"Jane","isPrimary":true}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_name", "Acme")

	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
}
