package customer

import (
	"net/http"
	"sort"
	"strings"

	"go-cpq/internal/middleware"
	"go-cpq/internal/shared/apperror"
	"go-cpq/internal/shared/request"
	"go-cpq/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentsField is the multipart field for customer documents.
const DocumentsField = "documents"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("customer.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("customer.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("customer request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := request.BindBody(c, &req); err != nil {
		h.logger.Warn("http create customer validation failed", zap.Error(err))
		h.writeServiceError(c, err)
		return
	}

	files := middleware.UploadedFiles(c)
	resp, err := h.service.Create(c.Request.Context(), c.GetString("company_name"), c.GetString("user_id"), req, files.Get(DocumentsField))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyName := c.GetString("company_name")
	h.logger.Debug("http get all customers", zap.String("company_name", companyName))

	resp, err := h.service.GetAll(c.Request.Context(), companyName)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	if q != "" {
		filtered := make([]CustomerResponse, 0, len(resp))
		for _, cu := range resp {
			if strings.Contains(strings.ToLower(cu.DisplayName), q) ||
				strings.Contains(strings.ToLower(cu.Email), q) ||
				strings.Contains(strings.ToLower(cu.City), q) {
				filtered = append(filtered, cu)
			}
		}
		resp = filtered
	}

	sortBy := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_by", "created_at")))
	desc := !strings.EqualFold(c.DefaultQuery("sort_dir", "desc"), "asc")
	sort.SliceStable(resp, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "name":
			less = strings.ToLower(resp[i].DisplayName) < strings.ToLower(resp[j].DisplayName)
		case "country":
			less = resp[i].Country < resp[j].Country
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

func (h *Handler) GetOptions(c *gin.Context) {
	resp, err := h.service.GetOptions(c.Request.Context(), c.GetString("company_name"))
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

	var req UpdateCustomerRequest
	if err := request.BindBody(c, &req); err != nil {
		h.logger.Warn("http update customer validation failed", zap.Error(err))
		h.writeServiceError(c, err)
		return
	}

	files := middleware.UploadedFiles(c)
	resp, err := h.service.Update(c.Request.Context(), c.GetString("company_name"), id, req, files.Get(DocumentsField))
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
