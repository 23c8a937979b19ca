package request

import (
	"encoding/json"
	"strconv"
	"strings"

	"go-cpq/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// DataField carries the JSON document of a multipart request.
const DataField = "data"

// IsMultipart reports whether the request body is multipart/form-data.
func IsMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// BindBody decodes a JSON body, or the "data" field of a multipart body, into
// dst and runs the binding validator. Errors are already mapped to AppErrors.
func BindBody(c *gin.Context, dst any) error {
	if !IsMultipart(c) {
		if err := c.ShouldBindJSON(dst); err != nil {
			return apperror.MapValidationError(err)
		}
		return nil
	}

	raw := strings.TrimSpace(c.PostForm(DataField))
	if raw == "" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return apperror.MapValidationError(err)
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return apperror.MapValidationError(err)
	}
	return nil
}

// ParseID reads a positive numeric path parameter.
func ParseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.ErrInvalidID
	}
	return uint(id), nil
}

// QueryID reads an optional numeric query parameter. Missing yields 0.
func QueryID(c *gin.Context, name string) (uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.InvalidField(name)
	}
	return uint(id), nil
}
