package middleware

import (
	"net/http"
	"strings"

	"go-cpq/internal/shared/contextutil"
	"go-cpq/internal/shared/response"
	"go-cpq/internal/shared/upload"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	uploadedFilesKey   = "uploaded_files"
	maxMultipartMemory = 32 << 20
	formFieldAllowance = 1 << 20
)

// UploadFilter accepts multipart bodies whose files satisfy rules. JSON bodies
// pass through untouched. Rejections answer 400 with "File upload error".
func UploadFilter(rules ...upload.Rule) gin.HandlerFunc {
	limit := int64(formFieldAllowance)
	for _, r := range rules {
		n := r.MaxCount
		if n < 1 {
			n = 1
		}
		limit += int64(n) * upload.MaxFileSize
	}

	return func(c *gin.Context) {
		if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			c.Next()
			return
		}

		log := contextutil.GetLogger(c.Request.Context(), zap.L())
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

		if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
			log.Warn("multipart parse failed", zap.Error(err))
			msg := "Malformed multipart body"
			if strings.Contains(err.Error(), "too large") {
				msg = "Request body exceeds the upload limit"
			}
			response.UploadError(c, msg)
			return
		}

		files, err := upload.Validate(c.Request.MultipartForm, rules)
		if err != nil {
			log.Warn("upload rejected", zap.Error(err))
			response.UploadError(c, err.Error())
			return
		}

		c.Set(uploadedFilesKey, files)
		c.Next()
	}
}

// UploadedFiles returns the files accepted by UploadFilter, or nil.
func UploadedFiles(c *gin.Context) upload.Files {
	if v, ok := c.Get(uploadedFilesKey); ok {
		if files, ok := v.(upload.Files); ok {
			return files
		}
	}
	return nil
}
