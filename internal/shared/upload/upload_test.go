package upload_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"go-cpq/internal/shared/upload"

	"github.com/stretchr/testify/assert"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func buildForm(t *testing.T, files map[string][][]byte) *multipart.Form {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, contents := range files {
		for i, c := range contents {
			fw, err := w.CreateFormFile(field, field+"_"+string(rune('a'+i))+".bin")
			assert.NoError(t, err)
			_, _ = fw.Write(c)
		}
	}
	assert.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	assert.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm
}

func TestValidate(t *testing.T) {
	rules := []upload.Rule{
		{Field: "images", MaxCount: 2, Allowed: upload.ImageTypes},
		{Field: "performanceBankGuarantee", MaxCount: 1, Allowed: upload.CertificateTypes},
	}

	t.Run("accepts allowed files", func(t *testing.T) {
		form := buildForm(t, map[string][][]byte{"images": {pngHeader}})
		files, err := upload.Validate(form, rules)
		assert.NoError(t, err)
		if assert.Len(t, files.Get("images"), 1) {
			assert.Equal(t, "image/png", files.Get("images")[0].ContentType)
		}
	})

	t.Run("rejects unknown field", func(t *testing.T) {
		form := buildForm(t, map[string][][]byte{"avatar": {pngHeader}})
		_, err := upload.Validate(form, rules)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected file field")
	})

	t.Run("rejects too many files", func(t *testing.T) {
		form := buildForm(t, map[string][][]byte{"images": {pngHeader, pngHeader, pngHeader}})
		_, err := upload.Validate(form, rules)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "too many files")
	})

	t.Run("rejects disallowed type", func(t *testing.T) {
		form := buildForm(t, map[string][][]byte{"images": {[]byte("just some text")}})
		_, err := upload.Validate(form, rules)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not allowed")
	})

	t.Run("rejects file larger than 10 MB", func(t *testing.T) {
		big := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), int(upload.MaxFileSize))...)
		form := buildForm(t, map[string][][]byte{"performanceBankGuarantee": {big}})
		_, err := upload.Validate(form, rules)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "10 MB")
	})
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "report_final.pdf", upload.SanitizeName("report final.pdf"))
	assert.Equal(t, "passwd", upload.SanitizeName("../../etc/passwd"))
	assert.Equal(t, "file", upload.SanitizeName(""))
	assert.False(t, strings.Contains(upload.SanitizeName(`C:\docs\a b.pdf`), "\\"))
}
