package filestorage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sharecrm/share/internal/pkg/logger"
)

// MinioConfig configures an S3-compatible bucket
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	URLExpiry time.Duration
}

// MinioStorage stores objects in an S3-compatible bucket and hands out presigned URLs
type MinioStorage struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewMinioStorage connects to the endpoint and creates the bucket when missing
func NewMinioStorage(ctx context.Context, cfg MinioConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info().Str("bucket", cfg.Bucket).Msg("Created storage bucket")
	}

	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	return &MinioStorage{client: client, bucket: cfg.Bucket, expiry: expiry}, nil
}

// Save implements Storage
func (ms *MinioStorage) Save(ctx context.Context, dir, filename string, r io.Reader, size int64, contentType string) (*StoredObject, error) {
	key := objectKey(dir, filename)
	info, err := ms.client.PutObject(ctx, ms.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		logger.Error().Err(err).Str("bucket", ms.bucket).Str("key", key).Msg("Failed to upload object")
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}
	return &StoredObject{Key: key, Size: info.Size, ContentType: contentType}, nil
}

// Delete implements Storage
func (ms *MinioStorage) Delete(ctx context.Context, key string) error {
	if err := ms.client.RemoveObject(ctx, ms.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		logger.Error().Err(err).Str("bucket", ms.bucket).Str("key", key).Msg("Failed to delete object")
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// URL implements Storage with a presigned GET link
func (ms *MinioStorage) URL(ctx context.Context, key string) (string, error) {
	u, err := ms.client.PresignedGetObject(ctx, ms.bucket, key, ms.expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object url: %w", err)
	}
	return u.String(), nil
}
