package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"go.uber.org/zap"
)

type azureStorage struct {
	client *azblob.Client
	logger *zap.Logger
}

// NewAzureStorage connects with a connection string when given, otherwise
// with the default Azure credential chain against accountURL.
func NewAzureStorage(accountURL, connectionString string, logger ...*zap.Logger) (Storage, error) {
	l := zap.L().Named("storage.azure")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.azure")
	}

	var (
		client *azblob.Client
		err    error
	)
	if connectionString != "" {
		client, err = azblob.NewClientFromConnectionString(connectionString, nil)
	} else {
		cred, credErr := azidentity.NewDefaultAzureCredential(nil)
		if credErr != nil {
			return nil, fmt.Errorf("azure credential: %w", credErr)
		}
		client, err = azblob.NewClient(accountURL, cred, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("azure blob client: %w", err)
	}

	return &azureStorage{client: client, logger: l}, nil
}

func (s *azureStorage) Upload(ctx context.Context, container, blobName, contentType string, data []byte) (string, error) {
	_, err := s.client.UploadBuffer(ctx, container, blobName, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: to.Ptr(contentType),
		},
	})
	if err != nil {
		s.logger.Error("blob upload failed",
			zap.String("container", container),
			zap.String("blob", blobName),
			zap.Error(err),
		)
		return "", err
	}

	s.logger.Debug("blob uploaded",
		zap.String("container", container),
		zap.String("blob", blobName),
		zap.Int("bytes", len(data)),
	)
	return s.publicURL(container, blobName), nil
}

func (s *azureStorage) Delete(ctx context.Context, blobURL string) error {
	container, blobName, err := ParseBlobURL(blobURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteBlob(ctx, container, blobName, nil)
	if err != nil && bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return nil
	}
	return err
}

func (s *azureStorage) publicURL(container, blobName string) string {
	segments := strings.Split(blobName, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimRight(s.client.URL(), "/") + "/" + container + "/" + strings.Join(segments, "/")
}
