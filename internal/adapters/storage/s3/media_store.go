// Package s3 adapts an S3-compatible object store (MinIO in development)
// as the platform's external media host.
package s3

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/vidhub/api/internal/config"
	"github.com/vidhub/api/internal/core/domain"
	"github.com/vidhub/api/internal/core/ports"
)

type MediaStore struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

func NewMediaStore(ctx context.Context, cfg *config.Config) (*MediaStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			// MinIO serves buckets under the path, not a subdomain.
			o.UsePathStyle = true
		}
	})

	return &MediaStore{
		client:   client,
		bucket:   cfg.S3Bucket,
		endpoint: strings.TrimSuffix(cfg.S3Endpoint, "/"),
	}, nil
}

// Upload stores the file under a date-partitioned random key and returns
// the public URL together with the key needed to delete it later.
func (m *MediaStore) Upload(ctx context.Context, folder string, upload ports.FileUpload) (*domain.Asset, error) {
	key := m.storageKey(folder, upload.Filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
		Body:   upload.Reader,
	}
	if upload.ContentType != "" {
		input.ContentType = aws.String(upload.ContentType)
	}
	if upload.Size > 0 {
		input.ContentLength = aws.Int64(upload.Size)
	}

	if _, err := m.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("put object %q: %w", key, err)
	}

	return &domain.Asset{URL: m.objectURL(key), Key: key}, nil
}

func (m *MediaStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

func (m *MediaStore) storageKey(folder, filename string) string {
	d := time.Now()
	name := uuid.New().String() + strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%d/%02d/%s", folder, d.Year(), d.Month(), name)
}

func (m *MediaStore) objectURL(key string) string {
	if m.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", m.endpoint, m.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", m.bucket, key)
}
