package storage

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rotisserie/eris"
)

// MinIOConfig holds the object storage connection settings.
type MinIOConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	UseSSL         bool   `mapstructure:"use_ssl"`
	Region         string `mapstructure:"region"`
	Bucket         string `mapstructure:"bucket"`
	MaxResumeBytes int64  `mapstructure:"max_resume_bytes"`
}

// MinIO is an ObjectStore bound to a single bucket.
type MinIO struct {
	client *minio.Client
	bucket string
	region string
}

var _ ObjectStore = (*MinIO)(nil)

func NewMinIO(cfg MinIOConfig) (*MinIO, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "creating minio client for %s", cfg.Endpoint)
	}
	return &MinIO{client: client, bucket: cfg.Bucket, region: cfg.Region}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (m *MinIO) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return eris.Wrapf(err, "checking bucket %s", m.bucket)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: m.region}); err != nil {
		return eris.Wrapf(err, "creating bucket %s", m.bucket)
	}
	return nil
}

func (m *MinIO) PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string, meta map[string]string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: meta,
	})
	if err != nil {
		return eris.Wrapf(err, "putting object %s", key)
	}
	return nil
}

// Ping checks that the bucket is reachable.
func (m *MinIO) Ping(ctx context.Context) error {
	if _, err := m.client.BucketExists(ctx, m.bucket); err != nil {
		return eris.Wrap(err, "minio health check")
	}
	return nil
}
