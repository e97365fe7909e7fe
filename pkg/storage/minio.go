package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds MinIO connection details.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioImageStorage stores product images in a MinIO bucket and hands out
// presigned read URLs.
type MinioImageStorage struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewMinioImageStorage creates the client and makes sure the bucket exists.
func NewMinioImageStorage(cfg Config) (*MinioImageStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &MinioImageStorage{
		client: client,
		bucket: cfg.Bucket,
		expiry: 15 * time.Minute,
	}, nil
}

// UploadProductImage stores the image under products/<id>/<uuid><ext> and
// returns the object key.
func (s *MinioImageStorage) UploadProductImage(productID, filename, contentType string, file io.Reader, size int64) (string, error) {
	objectKey := fmt.Sprintf("products/%s/%s%s", productID, uuid.New().String(),
		strings.ToLower(filepath.Ext(filename)))

	_, err := s.client.PutObject(context.Background(), s.bucket, objectKey, file, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", objectKey, err)
	}
	return objectKey, nil
}

// PresignedURL returns a time-limited read URL for the object.
func (s *MinioImageStorage) PresignedURL(objectKey string) (string, error) {
	url, err := s.client.PresignedGetObject(context.Background(), s.bucket, objectKey, s.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", objectKey, err)
	}
	return url.String(), nil
}
