package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"go-cpq/internal/shared/upload"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidBlobURL = errors.New("invalid blob url")

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type Storage interface {
	Upload(ctx context.Context, container, blobName, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, blobURL string) error
}

// Containers names the three logical buckets uploads are sorted into.
type Containers struct {
	Images    string
	Documents string
	QuotePDFs string
}

// ParseBlobURL resolves the container and blob name from a public blob URL
// of the form https://host/<container>/<blob...>.
func ParseBlobURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", "", ErrInvalidBlobURL
	}

	p := strings.TrimPrefix(u.Path, "/")
	container, blob, ok := strings.Cut(p, "/")
	if !ok || container == "" || blob == "" {
		return "", "", ErrInvalidBlobURL
	}

	blob, err = url.PathUnescape(blob)
	if err != nil {
		return "", "", ErrInvalidBlobURL
	}
	return container, blob, nil
}

// BlobName builds a collision free name: <prefix>/<yyyy/mm>/<uuid>-<file>.
func BlobName(prefix, fileName string) string {
	return path.Join(prefix, time.Now().UTC().Format("2006/01"), uuid.NewString()+"-"+upload.SanitizeName(fileName))
}

// UploadFiles pushes files into container. On failure the blobs already
// written are removed before the error is returned.
func UploadFiles(ctx context.Context, store Storage, container, prefix string, files []upload.File, logger *zap.Logger) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		u, err := store.Upload(ctx, container, BlobName(prefix, f.Name), f.ContentType, f.Data)
		if err != nil {
			Cleanup(ctx, store, urls, logger)
			return nil, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// Cleanup deletes blobs best-effort. Failures are logged and never returned:
// the primary operation has already been decided by the time cleanup runs.
func Cleanup(ctx context.Context, store Storage, urls []string, logger *zap.Logger) {
	if store == nil {
		return
	}
	if logger == nil {
		logger = zap.L()
	}
	for _, u := range urls {
		if u == "" {
			continue
		}
		if err := store.Delete(context.WithoutCancel(ctx), u); err != nil {
			logger.Warn("blob cleanup failed", zap.String("url", u), zap.Error(err))
		}
	}
}

// SplitURLs partitions current into kept and removed URLs. ok is false when
// remove names a URL that current does not hold.
func SplitURLs(current, remove []string) (kept, removed []string, ok bool) {
	drop := make(map[string]struct{}, len(remove))
	for _, u := range remove {
		drop[u] = struct{}{}
	}

	kept = make([]string, 0, len(current))
	removed = make([]string, 0, len(remove))
	for _, u := range current {
		if _, hit := drop[u]; hit {
			removed = append(removed, u)
			delete(drop, u)
			continue
		}
		kept = append(kept, u)
	}
	return kept, removed, len(drop) == 0
}
