package middleware

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-cpq/internal/shared/response"
	"go-cpq/internal/shared/upload"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pdfHeader = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

func multipartBody(t *testing.T, field, name string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("data", `{"customerId":"c-1"}`))
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func newUploadRouter(rules ...upload.Rule) (*gin.Engine, *upload.Files) {
	gin.SetMode(gin.TestMode)
	var got upload.Files
	r := gin.New()
	r.POST("/orders", UploadFilter(rules...), func(c *gin.Context) {
		got = UploadedFiles(c)
		c.Status(http.StatusCreated)
	})
	return r, &got
}

func TestUploadFilter(t *testing.T) {
	bankGuarantee := upload.Rule{Field: "performanceBankGuarantee", MaxCount: 1, Allowed: upload.CertificateTypes}

	t.Run("accepts_valid_pdf", func(t *testing.T) {
		r, got := newUploadRouter(bankGuarantee)
		body, ct := multipartBody(t, "performanceBankGuarantee", "pbg.pdf", append(pdfHeader, []byte("content")...))

		req := httptest.NewRequest(http.MethodPost, "/orders", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		f := got.First("performanceBankGuarantee")
		require.NotNil(t, f)
		assert.Equal(t, "application/pdf", f.ContentType)
		assert.Equal(t, "pbg.pdf", f.Name)
	})

	t.Run("rejects_file_over_limit", func(t *testing.T) {
		r, _ := newUploadRouter(bankGuarantee)
		data := make([]byte, upload.MaxFileSize+1)
		copy(data, pdfHeader)
		body, ct := multipartBody(t, "performanceBankGuarantee", "big.pdf", data)

		req := httptest.NewRequest(http.MethodPost, "/orders", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env response.ApiEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Ok)
		assert.Equal(t, response.FileUploadError, env.Error)
		assert.NotEmpty(t, env.Message)
	})

	t.Run("rejects_disallowed_type", func(t *testing.T) {
		r, _ := newUploadRouter(bankGuarantee)
		body, ct := multipartBody(t, "performanceBankGuarantee", "run.exe", []byte("MZ\x90\x00\x03\x00\x00\x00"))

		req := httptest.NewRequest(http.MethodPost, "/orders", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), response.FileUploadError)
	})

	t.Run("rejects_unknown_field", func(t *testing.T) {
		r, _ := newUploadRouter(bankGuarantee)
		body, ct := multipartBody(t, "other", "a.pdf", pdfHeader)

		req := httptest.NewRequest(http.MethodPost, "/orders", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("json_passes_through", func(t *testing.T) {
		r, got := newUploadRouter(bankGuarantee)
		req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Nil(t, *got)
	})
}
