package storage_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-cpq/internal/shared/storage"
	storageMock "go-cpq/internal/shared/storage/mock"
	"go-cpq/internal/shared/upload"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestParseBlobURL(t *testing.T) {
	cases := []struct {
		name      string
		url       string
		container string
		blob      string
		wantErr   bool
	}{
		{"simple", "https://acct.blob.core.windows.net/images/a.png", "images", "a.png", false},
		{"nested", "https://acct.blob.core.windows.net/documents/orders/2026/01/x-y.pdf", "documents", "orders/2026/01/x-y.pdf", false},
		{"escaped", "https://acct.blob.core.windows.net/quote-pdfs/quote%20001.pdf", "quote-pdfs", "quote 001.pdf", false},
		{"no blob", "https://acct.blob.core.windows.net/images", "", "", true},
		{"not a url", "images/a.png", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			container, blob, err := storage.ParseBlobURL(tc.url)
			if tc.wantErr {
				assert.ErrorIs(t, err, storage.ErrInvalidBlobURL)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.container, container)
			assert.Equal(t, tc.blob, blob)
		})
	}
}

func TestBlobName(t *testing.T) {
	name := storage.BlobName("orders", "bank guarantee.pdf")
	assert.True(t, strings.HasPrefix(name, "orders/"))
	assert.True(t, strings.HasSuffix(name, "-bank_guarantee.pdf"))
}

func TestUploadFiles(t *testing.T) {
	ctx := context.Background()
	files := []upload.File{
		{Name: "a.pdf", ContentType: "application/pdf", Data: []byte("a")},
		{Name: "b.pdf", ContentType: "application/pdf", Data: []byte("b")},
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := storageMock.NewMockStorage(ctrl)
		store.EXPECT().Upload(ctx, "documents", gomock.Any(), "application/pdf", []byte("a")).Return("https://x/documents/a", nil)
		store.EXPECT().Upload(ctx, "documents", gomock.Any(), "application/pdf", []byte("b")).Return("https://x/documents/b", nil)

		urls, err := storage.UploadFiles(ctx, store, "documents", "orders", files, zap.NewNop())
		assert.NoError(t, err)
		assert.Equal(t, []string{"https://x/documents/a", "https://x/documents/b"}, urls)
	})

	t.Run("failure removes already uploaded blobs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := storageMock.NewMockStorage(ctrl)
		gomock.InOrder(
			store.EXPECT().Upload(ctx, "documents", gomock.Any(), gomock.Any(), []byte("a")).Return("https://x/documents/a", nil),
			store.EXPECT().Upload(ctx, "documents", gomock.Any(), gomock.Any(), []byte("b")).Return("", errors.New("503")),
			store.EXPECT().Delete(gomock.Any(), "https://x/documents/a").Return(nil),
		)

		urls, err := storage.UploadFiles(ctx, store, "documents", "orders", files, zap.NewNop())
		assert.Error(t, err)
		assert.Nil(t, urls)
	})
}

func TestCleanup_IgnoresFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storageMock.NewMockStorage(ctrl)
	store.EXPECT().Delete(gomock.Any(), "https://x/images/a").Return(errors.New("gone"))
	store.EXPECT().Delete(gomock.Any(), "https://x/images/b").Return(nil)

	assert.NotPanics(t, func() {
		storage.Cleanup(context.Background(), store, []string{"https://x/images/a", "", "https://x/images/b"}, zap.NewNop())
	})
}

func TestSplitURLs(t *testing.T) {
	kept, removed, ok := storage.SplitURLs([]string{"a", "b", "c"}, []string{"b"})
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "c"}, kept)
	assert.Equal(t, []string{"b"}, removed)

	_, _, ok = storage.SplitURLs([]string{"a"}, []string{"x"})
	assert.False(t, ok)
}
