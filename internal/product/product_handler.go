package product

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

// ImagesField is the multipart field for product images.
const ImagesField = "images"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("product.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("product.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("product request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := request.BindBody(c, &req); err != nil {
		h.logger.Warn("http create product validation failed", zap.Error(err))
		h.writeServiceError(c, err)
		return
	}

	files := middleware.UploadedFiles(c)
	resp, err := h.service.Create(c.Request.Context(), c.GetString("company_name"), c.GetString("user_id"), req, files.Get(ImagesField))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyName := c.GetString("company_name")
	h.logger.Debug("http get all products", zap.String("company_name", companyName))

	resp, err := h.service.GetAll(c.Request.Context(), companyName)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	category := strings.TrimSpace(c.Query("category"))
	activeOnly := c.Query("active") == "true"
	filtered := make([]ProductResponse, 0, len(resp))
	for _, p := range resp {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.SKU), q) {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if activeOnly && !p.IsActive {
			continue
		}
		filtered = append(filtered, p)
	}
	resp = filtered

	sortBy := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_by", "created_at")))
	desc := !strings.EqualFold(c.DefaultQuery("sort_dir", "desc"), "asc")
	sort.SliceStable(resp, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "name":
			less = strings.ToLower(resp[i].Name) < strings.ToLower(resp[j].Name)
		case "price":
			less = resp[i].UnitPrice.LessThan(resp[j].UnitPrice)
		case "sku":
			less = resp[i].SKU < resp[j].SKU
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

	var req UpdateProductRequest
	if err := request.BindBody(c, &req); err != nil {
		h.logger.Warn("http update product validation failed", zap.Error(err))
		h.writeServiceError(c, err)
		return
	}

	files := middleware.UploadedFiles(c)
	resp, err := h.service.Update(c.Request.Context(), c.GetString("company_name"), id, req, files.Get(ImagesField))
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
