package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const FileUploadError = "File upload error"

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

// PageParams reads page and pageSize (or page_size) from the query string.
func PageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size := c.Query("pageSize")
	if size == "" {
		size = c.DefaultQuery("page_size", "10")
	}
	pageSize, _ := strconv.Atoi(size)
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 200 {
		pageSize = 200
	}
	return page, pageSize
}

// Paginate slices an already filtered and sorted list. Pages past the end
// return an empty slice.
func Paginate[T any](items []T, page, pageSize int) ([]T, PaginationMeta) {
	total := int64(len(items))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	// compare by page count first so (page-1)*pageSize cannot overflow
	start := len(items)
	if page-1 < (len(items)+pageSize-1)/pageSize {
		start = (page - 1) * pageSize
	}
	end := len(items)
	if pageSize < end-start {
		end = start + pageSize
	}
	return items[start:end], NewPaginationMeta(total, page, pageSize)
}

type ApiEnvelope struct {
	Ok      bool            `json:"ok"`
	Data    any             `json:"data,omitempty"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   any             `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:   true,
		Data: data,
		Meta: meta,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok:      false,
		Message: message,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}

// UploadError is the rejection body for multipart uploads: the reason goes in
// message and error is always the fixed "File upload error" string.
func UploadError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ApiEnvelope{
		Ok:      false,
		Message: message,
		Error:   FileUploadError,
	})
}
