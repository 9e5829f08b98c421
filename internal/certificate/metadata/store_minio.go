package metadata

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"skillforge/internal/certificate/models"
	"skillforge/pkg/platform/sentinel"
)

// MinioConfig locates the bucket documents are written to.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore keeps documents as "<contentHash>.json" objects in one bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to the endpoint and creates the bucket if missing.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w: %w", cfg.Bucket, err, sentinel.ErrUnavailable)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}
	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) Put(ctx context.Context, contentHash string, doc *models.MetadataDocument) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, ObjectKey(contentHash), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("put metadata %s: %w", contentHash, err)
	}
	return nil
}

func (s *MinioStore) Get(ctx context.Context, contentHash string) (*models.MetadataDocument, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, ObjectKey(contentHash), minio.GetObjectOptions{})
	if err != nil {
		return nil, s.translate(contentHash, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.translate(contentHash, err)
	}
	return Decode(data)
}

func (s *MinioStore) Delete(ctx context.Context, contentHash string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, ObjectKey(contentHash), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete metadata %s: %w", contentHash, err)
	}
	return nil
}

// Ping checks the bucket is reachable; used as a readiness check.
func (s *MinioStore) Ping(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %s missing: %w", s.bucket, sentinel.ErrUnavailable)
	}
	return nil
}

func (s *MinioStore) translate(contentHash string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("metadata %s: %w", contentHash, sentinel.ErrNotFound)
	}
	return fmt.Errorf("get metadata %s: %w", contentHash, err)
}
