package storage

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"alcyxob/exercise-importer/internal/config"
)

// gcsStorage implements FileStorage on Google Cloud Storage.
type gcsStorage struct {
	bucket        *gcs.BucketHandle
	bucketName    string
	urlMode       string
	publicBaseURL string
	urlExpiry     time.Duration
}

// NewGCSStorage creates a GCS-backed storage using the given service account file,
// or application default credentials when none is set.
func NewGCSStorage(ctx context.Context, cfg config.GCSConfig, urls config.StorageConfig) (FileStorage, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		log.Printf("ERROR: Failed to create GCS client: %v", err)
		return nil, err
	}

	log.Printf("GCS Storage Service initialized for bucket: %s", cfg.BucketName)
	return newGCSStorage(client, cfg.BucketName, urls), nil
}

func newGCSStorage(client *gcs.Client, bucketName string, urls config.StorageConfig) *gcsStorage {
	publicBase := urls.PublicBaseURL
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://storage.googleapis.com/%s", bucketName)
	}

	return &gcsStorage{
		bucket:        client.Bucket(bucketName),
		bucketName:    bucketName,
		urlMode:       urls.URLMode,
		publicBaseURL: publicBase,
		urlExpiry:     expiryOrDefault(urls.URLExpiry),
	}
}

func (g *gcsStorage) Upload(ctx context.Context, objectKey string, contentType string, data []byte) error {
	wc := g.bucket.Object(objectKey).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		log.Printf("ERROR: Failed to upload object '%s' to bucket '%s': %v", objectKey, g.bucketName, err)
		return err
	}
	if err := wc.Close(); err != nil {
		log.Printf("ERROR: Failed to finalize object '%s' in bucket '%s': %v", objectKey, g.bucketName, err)
		return err
	}
	return nil
}

func (g *gcsStorage) ObjectURL(ctx context.Context, objectKey string) (string, error) {
	if g.urlMode != config.URLModePresigned {
		return joinURL(g.publicBaseURL, objectKey), nil
	}

	u, err := g.bucket.SignedURL(objectKey, &gcs.SignedURLOptions{
		Method:  http.MethodGet,
		Expires: time.Now().Add(g.urlExpiry),
		Scheme:  gcs.SigningSchemeV4,
	})
	if err != nil {
		log.Printf("ERROR: Failed to generate signed URL for key '%s': %v", objectKey, err)
		return "", err
	}
	return u, nil
}

func (g *gcsStorage) DeleteObject(ctx context.Context, objectKey string) error {
	if err := g.bucket.Object(objectKey).Delete(ctx); err != nil {
		log.Printf("ERROR: Failed to delete object '%s' from bucket '%s': %v", objectKey, g.bucketName, err)
		return err
	}

	log.Printf("INFO: Deleted object '%s' from bucket '%s'", objectKey, g.bucketName)
	return nil
}
