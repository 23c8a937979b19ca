package license_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-cpq/internal/license"
	mock_license "go-cpq/internal/license/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestLicenseHandler_GetExpiring(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		query    string
		days     int
		wantCall bool
		want     int
	}{
		{name: "default", query: "", days: 0, wantCall: true, want: http.StatusOK},
		{name: "explicit", query: "?days=7", days: 7, wantCall: true, want: http.StatusOK},
		{name: "not a number", query: "?days=soon", want: http.StatusBadRequest},
		{name: "zero", query: "?days=0", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mock_license.NewMockService(gomock.NewController(t))
			if tt.wantCall {
				svc.EXPECT().GetExpiring(gomock.Any(), "Acme", tt.days).Return([]license.LicenseResponse{{ID: 3, LicenseNumber: "LIC-1"}}, nil)
			}
			h := license.NewHandler(svc, zap.NewNop())

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/licenses/expiring"+tt.query, nil)
			c.Set("company_name", "Acme")

			h.GetExpiring(c)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestLicenseHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("issue date is required", func(t *testing.T) {
		svc := mock_license.NewMockService(gomock.NewController(t))
		h := license.NewHandler(svc, zap.NewNop())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/licenses", strings.NewReader(`{"customerId":5,"licenseNumber":"LIC-1"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("created", func(t *testing.T) {
		svc := mock_license.NewMockService(gomock.NewController(t))
		svc.EXPECT().Create(gomock.Any(), "Acme", "u-1", gomock.Any(), license.LicenseFiles{}).
			Return(license.LicenseResponse{ID: 3, LicenseNumber: "LIC-1", Devices: []license.DeviceResponse{}}, nil)
		h := license.NewHandler(svc, zap.NewNop())

		body := `{"customerId":5,"licenseNumber":"LIC-1","issueDate":"2026-01-10","devices":[{"deviceName":"Router"}]}`
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/licenses", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("company_name", "Acme")
		c.Set("user_id", "u-1")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"licenseNumber":"LIC-1"`)
	})
}
