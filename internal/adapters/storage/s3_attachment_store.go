// Package storage keeps voucher attachments in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/SscSPs/voucher_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/voucher_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/voucher_ledger/internal/platform/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectPutter is the slice of the S3 client the store needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3AttachmentStore uploads attachments and returns their public URL.
type S3AttachmentStore struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
}

var _ portsrepo.AttachmentStore = (*S3AttachmentStore)(nil)

// NewS3AttachmentStore builds a client for any S3-compatible backend
// (AWS, MinIO, RustFS, ...).
func NewS3AttachmentStore(ctx context.Context, cfg config.StorageConfig) (*S3AttachmentStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage access key and secret key are required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	publicBase, err := publicBaseURL(cfg, endpoint, region)
	if err != nil {
		return nil, err
	}
	return newS3AttachmentStore(client, cfg.Bucket, publicBase), nil
}

func newS3AttachmentStore(client objectPutter, bucket, publicBase string) *S3AttachmentStore {
	return &S3AttachmentStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBase, "/"),
	}
}

// Upload stores body under key and returns the object URL.
func (s *S3AttachmentStore) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", apperrors.NewAppError(502, "failed to upload attachment "+key, err)
	}
	return s.objectURL(key), nil
}

func (s *S3AttachmentStore) objectURL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.publicBaseURL + "/" + strings.Join(segments, "/")
}

func publicBaseURL(cfg config.StorageConfig, endpoint, region string) (string, error) {
	if cfg.PublicBaseURL != "" {
		if _, err := url.Parse(cfg.PublicBaseURL); err != nil {
			return "", fmt.Errorf("invalid storage public base URL: %w", err)
		}
		return cfg.PublicBaseURL, nil
	}
	if endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region), nil
	}
	if _, err := url.Parse(endpoint); err != nil {
		return "", fmt.Errorf("invalid storage endpoint: %w", err)
	}
	return endpoint + "/" + cfg.Bucket, nil
}
