package client

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	appConfig "nexus-project-api/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3ClientInterface defines the interface for attachment storage operations
type S3ClientInterface interface {
	GeneratePresignedURL(ctx context.Context, key, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(key string) string
}

// AttachmentKey builds the storage key of a comment attachment.
// Format: attachments/{yyyy}/{mm}/{dd}/comment_{commentId}/{uuid}{ext}
func AttachmentKey(commentID uuid.UUID, fileName string, at time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	at = at.UTC()
	return fmt.Sprintf("attachments/%04d/%02d/%02d/comment_%s/%s%s",
		at.Year(), at.Month(), at.Day(), commentID, uuid.New(), ext)
}

// S3Client wraps AWS S3 client and implements S3ClientInterface
type S3Client struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	region        string
	endpoint      string // set when talking to MinIO
	expiry        time.Duration
}

// NewS3Client creates a new S3 client
func NewS3Client(ctx context.Context, cfg *appConfig.S3Config) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	hasKeys := cfg.AccessKey != "" && cfg.SecretKey != ""
	// MinIO requires explicit credentials
	if cfg.Endpoint != "" && !hasKeys {
		return nil, fmt.Errorf("access key and secret key are required for a custom endpoint")
	}
	if hasKeys {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	expiry := cfg.UploadExpiry
	if expiry <= 0 {
		expiry = 5 * time.Minute
	}

	return &S3Client{
		client:        s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		endpoint:      strings.TrimSuffix(cfg.Endpoint, "/"),
		expiry:        expiry,
	}, nil
}

// GeneratePresignedURL returns a presigned PUT URL for key
func (c *S3Client) GeneratePresignedURL(ctx context.Context, key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	req, err := c.presignClient.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = c.expiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return req.URL, nil
}

// DeleteFile deletes a file from S3
func (c *S3Client) DeleteFile(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// GetFileURL returns the download URL for a file
func (c *S3Client) GetFileURL(key string) string {
	return fileURL(c.endpoint, c.bucket, c.region, key)
}

func fileURL(endpoint, bucket, region, key string) string {
	if endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", endpoint, bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}
