package domain

import (
	"context"
	"time"
)

// FileUpload is a decoded multipart file ready for the blob store.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BlobStore is the external object storage service. Keys are
// "{purpose}/{uid}/{timestamp}_{filename}"; the signed URL is the only
// reference handed out to clients.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, validity time.Duration) (string, error)
}
