package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxFileSize is the per-file limit for every upload field.
const MaxFileSize int64 = 10 << 20

var (
	ImageTypes    = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	DocumentTypes = []string{
		"application/pdf",
		"image/jpeg",
		"image/png",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"text/plain",
		"text/csv",
	}
	CertificateTypes = []string{"application/pdf", "image/jpeg", "image/png"}
)

// Rule describes one multipart file field.
type Rule struct {
	Field    string
	MaxCount int
	Allowed  []string
}

// File is an accepted upload held in memory until it is pushed to storage.
type File struct {
	Field       string
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Files groups accepted uploads by field name.
type Files map[string][]File

func (f Files) Get(field string) []File {
	if f == nil {
		return nil
	}
	return f[field]
}

func (f Files) First(field string) *File {
	files := f.Get(field)
	if len(files) == 0 {
		return nil
	}
	return &files[0]
}

type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// Validate checks a parsed multipart form against rules and loads accepted files.
func Validate(form *multipart.Form, rules []Rule) (Files, error) {
	out := Files{}
	if form == nil {
		return out, nil
	}

	byField := make(map[string]Rule, len(rules))
	for _, r := range rules {
		byField[r.Field] = r
	}

	for field, headers := range form.File {
		rule, ok := byField[field]
		if !ok {
			return nil, &Error{Field: field, Reason: "unexpected file field"}
		}
		if rule.MaxCount > 0 && len(headers) > rule.MaxCount {
			return nil, &Error{Field: field, Reason: fmt.Sprintf("too many files (max %d)", rule.MaxCount)}
		}

		for _, fh := range headers {
			file, err := load(fh, rule)
			if err != nil {
				return nil, err
			}
			out[field] = append(out[field], file)
		}
	}

	return out, nil
}

func load(fh *multipart.FileHeader, rule Rule) (File, error) {
	if fh.Size > MaxFileSize {
		return File{}, &Error{Field: rule.Field, Reason: "file exceeds the 10 MB limit"}
	}

	src, err := fh.Open()
	if err != nil {
		return File{}, &Error{Field: rule.Field, Reason: "cannot read file"}
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxFileSize+1))
	if err != nil {
		return File{}, &Error{Field: rule.Field, Reason: "cannot read file"}
	}
	if int64(len(data)) > MaxFileSize {
		return File{}, &Error{Field: rule.Field, Reason: "file exceeds the 10 MB limit"}
	}

	contentType, ok := Allowed(data, rule.Allowed)
	if !ok {
		return File{}, &Error{Field: rule.Field, Reason: fmt.Sprintf("file type %s is not allowed", contentType)}
	}

	return File{
		Field:       rule.Field,
		Name:        SanitizeName(fh.Filename),
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

// Allowed sniffs data and reports its MIME type and whether it is in the allowlist.
func Allowed(data []byte, allowed []string) (string, bool) {
	detected := mimetype.Detect(data)
	for _, a := range allowed {
		if detected.Is(a) {
			return a, true
		}
	}
	return detected.String(), false
}

// SanitizeName keeps the base name and replaces characters that break blob paths.
func SanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}
