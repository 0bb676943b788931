package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"alcyxob/exercise-importer/internal/config"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 7 * 24 * time.Hour

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// Upload stores data under objectKey with the given content type.
	Upload(ctx context.Context, objectKey string, contentType string, data []byte) error

	// ObjectURL returns the URL the stored object is retrievable from.
	ObjectURL(ctx context.Context, objectKey string) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// New builds the FileStorage selected by cfg.Storage.Backend.
func New(ctx context.Context, cfg config.Config) (FileStorage, error) {
	switch cfg.Storage.Backend {
	case config.BackendS3:
		return NewS3Storage(ctx, cfg.S3, cfg.Storage)
	case config.BackendMinIO:
		return NewMinIOStorage(cfg.S3, cfg.Storage)
	case config.BackendGCS:
		return NewGCSStorage(ctx, cfg.GCS, cfg.Storage)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// joinURL appends an object key to a base URL, escaping each path segment.
func joinURL(base, objectKey string) string {
	segments := strings.Split(objectKey, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}

func expiryOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultPresignedURLExpiry
	}
	return d
}
