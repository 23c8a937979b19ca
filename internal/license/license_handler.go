package license

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	licenseerrors "go-cpq/internal/license/errors"
	"go-cpq/internal/middleware"
	"go-cpq/internal/shared/apperror"
	"go-cpq/internal/shared/request"
	"go-cpq/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("license.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("license.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("license request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLicenseRequest
	if err := request.BindBody(c, &req); err != nil {
		h.logger.Warn("http create license validation failed", zap.Error(err))
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Create(
		c.Request.Context(),
		c.GetString("company_name"),
		c.GetString("user_id"),
		req,
		FilesFrom(middleware.UploadedFiles(c)),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	customerID, err := request.QueryID(c, "customerId")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	orderID, err := request.QueryID(c, "orderId")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	filter := Filter{
		Status:     strings.TrimSpace(c.Query("status")),
		CustomerID: customerID,
		OrderID:    orderID,
	}

	resp, err := h.service.GetAll(c.Request.Context(), c.GetString("company_name"), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	if q != "" {
		filtered := make([]LicenseResponse, 0, len(resp))
		for _, r := range resp {
			if strings.Contains(strings.ToLower(r.LicenseNumber), q) || strings.Contains(strings.ToLower(r.LicenseType), q) {
				filtered = append(filtered, r)
			}
		}
		resp = filtered
	}

	sortBy := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_by", "created_at")))
	desc := !strings.EqualFold(c.DefaultQuery("sort_dir", "desc"), "asc")
	sort.SliceStable(resp, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "license_number":
			less = resp[i].LicenseNumber < resp[j].LicenseNumber
		case "issue_date":
			less = resp[i].IssueDate < resp[j].IssueDate
		case "expiry_date":
			less = expiryKey(resp[i]) < expiryKey(resp[j])
		case "status":
			less = resp[i].Status < resp[j].Status
		default:
			less = resp[i].ID < resp[j].ID
		}
		if desc {
			return !less
		}
		return less
	})

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

// licenses without an expiry sort last
func expiryKey(r LicenseResponse) string {
	if r.ExpiryDate == nil {
		return "9999-12-31"
	}
	return *r.ExpiryDate
}

func (h *Handler) GetExpiring(c *gin.Context) {
	days := 0
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n == 0 {
			h.writeServiceError(c, licenseerrors.ErrInvalidDays)
			return
		}
		days = n
	}

	resp, err := h.service.GetExpiring(c.Request.Context(), c.GetString("company_name"), days)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), c.GetString("company_name"), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req UpdateLicenseRequest
	if err := request.BindBody(c, &req); err != nil {
		h.logger.Warn("http update license validation failed", zap.Error(err))
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Update(
		c.Request.Context(),
		c.GetString("company_name"),
		id,
		req,
		FilesFrom(middleware.UploadedFiles(c)),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetString("company_name"), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
