// Package objectstore keeps evento and palestrante images in an
// S3-compatible bucket served by MinIO.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/gravadigital/proagil-api/internal/config"
	"github.com/gravadigital/proagil-api/internal/logger"
)

// ImageStore stores an image and returns the URL it can be fetched from
type ImageStore interface {
	Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
}

// MinioImageStore implements ImageStore on a single bucket
type MinioImageStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
	log       *log.Logger
}

// NewMinioImageStore creates the client. No request is made until EnsureBucket or Upload.
func NewMinioImageStore(cfg *config.Config) (*MinioImageStore, error) {
	client, err := minio.New(cfg.ObjectStore.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ObjectStore.AccessKey, cfg.ObjectStore.SecretKey, ""),
		Secure: cfg.ObjectStore.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	publicURL := cfg.ObjectStore.PublicURL
	if publicURL == "" {
		publicURL = client.EndpointURL().String()
	}

	return &MinioImageStore{
		client:    client,
		bucket:    cfg.ObjectStore.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       logger.Storage(),
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet
func (s *MinioImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		s.log.Error("Failed to check bucket", "bucket", s.bucket, "error", err)
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		s.log.Error("Failed to create bucket", "bucket", s.bucket, "error", err)
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}

	s.log.Info("Bucket created", "bucket", s.bucket)
	return nil
}

func (s *MinioImageStore) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.log.Error("Failed to upload image", "object", objectName, "error", err)
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	s.log.Info("Image uploaded", "object", objectName, "size", info.Size)
	return s.ObjectURL(objectName), nil
}

// ObjectURL is the public URL of an object in the bucket
func (s *MinioImageStore) ObjectURL(objectName string) string {
	return s.publicURL + "/" + path.Join(s.bucket, objectName)
}

// ObjectName builds a collision-free object key under prefix, keeping the
// original file extension.
func ObjectName(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(prefix, uuid.NewString()+ext)
}
