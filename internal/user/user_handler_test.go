package user_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-cpq/internal/domain"
	"go-cpq/internal/user"
	usererrors "go-cpq/internal/user/errors"
	mock_user "go-cpq/internal/user/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func setupHandler(t *testing.T) (*mock_user.MockService, *user.Handler) {
	ctrl := gomock.NewController(t)
	svc := mock_user.NewMockService(ctrl)
	return svc, user.NewHandler(svc, zap.NewNop())
}

func TestUserHandler_EmailExists(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, h := setupHandler(t)
	svc.EXPECT().EmailExists(gomock.Any(), "a@acme.test").Return(true, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/users/exists?email=a@acme.test", nil)

	h.EmailExists(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"exists":true`)
}

func TestUserHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc, h := setupHandler(t)
		svc.EXPECT().
			Register(gomock.Any(), "sub-1", "a@acme.test", user.RegisterRequest{Name: "Ada", CompanyName: "Acme"}).
			Return(user.UserResponse{ID: "sub-1", Role: domain.RoleAdmin}, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Ada","companyName":"Acme"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", "sub-1")
		c.Set("token_email", "a@acme.test")

		h.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"admin"`)
	})

	t.Run("validation error", func(t *testing.T) {
		_, h := setupHandler(t)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Ada"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", "sub-1")

		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Company Name")
	})

	t.Run("conflict", func(t *testing.T) {
		svc, h := setupHandler(t)
		svc.EXPECT().Register(gomock.Any(), "sub-1", "", gomock.Any()).Return(user.UserResponse{}, usererrors.ErrProfileAlreadyExists)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Ada","companyName":"Acme","email":"a@acme.test"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", "sub-1")

		h.Register(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestUserHandler_GetCompanyUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, h := setupHandler(t)
	svc.EXPECT().GetCompanyUsers(gomock.Any(), "Acme").Return([]user.UserResponse{
		{ID: "1", Name: "Zed", Email: "z@acme.test", Role: domain.RoleSales},
		{ID: "2", Name: "Ada", Email: "a@acme.test", Role: domain.RoleManager},
		{ID: "3", Name: "Bob", Email: "b@acme.test", Role: domain.RoleManager},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/users?role=manager&page=1&page_size=1", nil)
	c.Set("company_name", "Acme")

	h.GetCompanyUsers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Ada")
	assert.NotContains(t, body, "Bob")
	assert.NotContains(t, body, "Zed")
	assert.Contains(t, body, `"total":2`)
}

func TestUserHandler_AssignRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, h := setupHandler(t)
	svc.EXPECT().
		AssignRole(gomock.Any(), "Acme", "u-1", "u-2", user.AssignRoleRequest{Role: domain.RoleViewer}).
		Return(user.UserResponse{ID: "u-2", Role: domain.RoleViewer}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/users/u-2/role", strings.NewReader(`{"role":"viewer"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "u-2"}}
	c.Set("company_name", "Acme")
	c.Set("user_id", "u-1")

	h.AssignRole(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
