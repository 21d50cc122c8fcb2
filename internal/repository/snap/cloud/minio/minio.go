package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wb-go/wbf/zlog"

	"github.com/Nurash908/Selfie2Snap/internal/config"
	"github.com/Nurash908/Selfie2Snap/internal/repository/snap"
)

// FileRepository stores generated frames and rendered exports as objects.
type FileRepository struct {
	client *minio.Client
	bucket string
	logger *zlog.Zerolog
}

func NewFileRepository(cfg *config.Config, logger *zlog.Zerolog) (*FileRepository, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &FileRepository{
		client: client,
		bucket: cfg.Minio.Bucket,
		logger: logger,
	}, nil
}

func (r *FileRepository) EnsureBucket(ctx context.Context) error {
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}

	if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{}); err != nil {
		exists, checkErr := r.client.BucketExists(ctx, r.bucket)
		if checkErr == nil && exists {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", r.bucket, err)
	}

	r.logger.Info().Str("bucket", r.bucket).Msg("Bucket created")
	return nil
}

func (r *FileRepository) SaveObject(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := r.client.PutObject(ctx, r.bucket, path, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", path, err)
	}
	return nil
}

func (r *FileRepository) GetObject(ctx context.Context, path string) (io.ReadCloser, error) {
	obj, err := r.client.GetObject(ctx, r.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", path, err)
	}

	// GetObject is lazy; stat to surface missing keys now.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchObject" {
			return nil, snap.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to stat object %s: %w", path, err)
	}

	return obj, nil
}

func (r *FileRepository) DeleteObject(ctx context.Context, path string) error {
	if err := r.client.RemoveObject(ctx, r.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", path, err)
	}
	return nil
}

// PresignedGetURL returns a time-limited direct download URL for an object.
func (r *FileRepository) PresignedGetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	u, err := r.client.PresignedGetObject(ctx, r.bucket, path, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", path, err)
	}
	return u.String(), nil
}
