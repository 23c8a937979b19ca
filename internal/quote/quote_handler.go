package quote

import (
	"net/http"
	"sort"
	"strings"

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
	l := zap.L().Named("quote.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("quote.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("quote request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateQuoteRequest
	if err := request.BindBody(c, &req); err != nil {
		h.logger.Warn("http create quote validation failed", zap.Error(err))
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), c.GetString("company_name"), c.GetString("user_id"), req)
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

	filter := Filter{
		Status:     strings.TrimSpace(c.Query("status")),
		CustomerID: customerID,
	}

	resp, err := h.service.GetAll(c.Request.Context(), c.GetString("company_name"), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	if q != "" {
		filtered := make([]QuoteResponse, 0, len(resp))
		for _, r := range resp {
			if strings.Contains(strings.ToLower(r.RefNo), q) || strings.Contains(strings.ToLower(r.Title), q) {
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
		case "ref_no":
			less = resp[i].RefNo < resp[j].RefNo
		case "total":
			less = resp[i].TotalAmount.LessThan(resp[j].TotalAmount)
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

func (h *Handler) GetByRefNo(c *gin.Context) {
	resp, err := h.service.GetByRefNo(c.Request.Context(), c.GetString("company_name"), c.Param("refNo"))
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

	var req UpdateQuoteRequest
	if err := request.BindBody(c, &req); err != nil {
		h.logger.Warn("http update quote validation failed", zap.Error(err))
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.GetString("company_name"), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req UpdateQuoteStatusRequest
	if err := request.BindBody(c, &req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), c.GetString("company_name"), c.GetString("user_id"), id, req)
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

// DownloadPDF streams a freshly rendered PDF, inline unless download=1.
func (h *Handler) DownloadPDF(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	file, err := h.service.RenderPDF(c.Request.Context(), c.GetString("company_name"), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	disposition := "inline"
	if c.Query("download") == "1" || c.Query("download") == "true" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, "application/pdf", file.Data)
}

func (h *Handler) RequestPDF(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if err := h.service.RequestPDF(c.Request.Context(), c.GetString("company_name"), c.GetString("user_id"), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"queued": true}, nil)
}
