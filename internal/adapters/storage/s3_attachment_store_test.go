package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/SscSPs/voucher_ledger/internal/platform/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		b, _ := io.ReadAll(params.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestNewS3AttachmentStore_Validation(t *testing.T) {
	t.Run("missing bucket", func(t *testing.T) {
		_, err := NewS3AttachmentStore(context.Background(), config.StorageConfig{AccessKey: "k", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := NewS3AttachmentStore(context.Background(), config.StorageConfig{Bucket: "b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key are required")
	})

	t.Run("custom endpoint", func(t *testing.T) {
		store, err := NewS3AttachmentStore(context.Background(), config.StorageConfig{
			Bucket:       "vouchers",
			AccessKey:    "k",
			SecretKey:    "s",
			Endpoint:     "http://localhost:9000/",
			UsePathStyle: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/vouchers", store.publicBaseURL)
	})

	t.Run("aws default", func(t *testing.T) {
		store, err := NewS3AttachmentStore(context.Background(), config.StorageConfig{
			Bucket: "vouchers", AccessKey: "k", SecretKey: "s", Region: "eu-west-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://vouchers.s3.eu-west-1.amazonaws.com", store.publicBaseURL)
	})
}

func TestUpload(t *testing.T) {
	putter := &fakePutter{}
	store := newS3AttachmentStore(putter, "vouchers", "https://cdn.example.com/files/")

	url, err := store.Upload(context.Background(), "vouchers/v-1/abc-bank slip.pdf", strings.NewReader("pdf"), 3, "application/pdf")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/files/vouchers/v-1/abc-bank%20slip.pdf", url)
	assert.Equal(t, "vouchers", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "vouchers/v-1/abc-bank slip.pdf", aws.ToString(putter.input.Key))
	assert.Equal(t, "application/pdf", aws.ToString(putter.input.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(putter.input.ContentLength))
	assert.Equal(t, "pdf", putter.body)
}

func TestUpload_Failure(t *testing.T) {
	store := newS3AttachmentStore(&fakePutter{err: errors.New("access denied")}, "vouchers", "https://cdn.example.com")

	_, err := store.Upload(context.Background(), "k", strings.NewReader(""), 0, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
