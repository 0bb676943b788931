package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"alcyxob/exercise-importer/internal/config"
)

// minioStorage implements FileStorage with the MinIO client, for self-hosted buckets.
type minioStorage struct {
	api           *minio.Client
	bucketName    string
	urlMode       string
	publicBaseURL string
	urlExpiry     time.Duration
}

// NewMinIOStorage creates a MinIO-backed storage. cfg.Endpoint is host[:port] without scheme.
func NewMinIOStorage(cfg config.S3Config, urls config.StorageConfig) (FileStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		log.Printf("ERROR: Failed to create MinIO client for %s: %v", cfg.Endpoint, err)
		return nil, err
	}

	publicBase := urls.PublicBaseURL
	if publicBase == "" {
		publicBase = fmt.Sprintf("%s/%s", client.EndpointURL().String(), cfg.BucketName)
	}

	log.Printf("MinIO Storage Service initialized for endpoint: %s, bucket: %s", cfg.Endpoint, cfg.BucketName)

	return &minioStorage{
		api:           client,
		bucketName:    cfg.BucketName,
		urlMode:       urls.URLMode,
		publicBaseURL: publicBase,
		urlExpiry:     expiryOrDefault(urls.URLExpiry),
	}, nil
}

func (m *minioStorage) Upload(ctx context.Context, objectKey string, contentType string, data []byte) error {
	_, err := m.api.PutObject(ctx, m.bucketName, objectKey, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		log.Printf("ERROR: Failed to upload object '%s' to bucket '%s': %v", objectKey, m.bucketName, err)
		return err
	}
	return nil
}

func (m *minioStorage) ObjectURL(ctx context.Context, objectKey string) (string, error) {
	if m.urlMode != config.URLModePresigned {
		return joinURL(m.publicBaseURL, objectKey), nil
	}

	u, err := m.api.PresignedGetObject(ctx, m.bucketName, objectKey, m.urlExpiry, url.Values{})
	if err != nil {
		log.Printf("ERROR: Failed to generate presigned GET URL for key '%s': %v", objectKey, err)
		return "", err
	}
	return u.String(), nil
}

func (m *minioStorage) DeleteObject(ctx context.Context, objectKey string) error {
	if err := m.api.RemoveObject(ctx, m.bucketName, objectKey, minio.RemoveObjectOptions{}); err != nil {
		log.Printf("ERROR: Failed to delete object '%s' from bucket '%s': %v", objectKey, m.bucketName, err)
		return err
	}

	log.Printf("INFO: Deleted object '%s' from bucket '%s'", objectKey, m.bucketName)
	return nil
}
