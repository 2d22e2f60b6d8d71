package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MockS3Client implements S3ClientInterface for testing without AWS credentials
type MockS3Client struct {
	Bucket   string
	Region   string
	Endpoint string

	// Optional function overrides for custom test behavior
	GeneratePresignedURLFunc func(ctx context.Context, key, contentType string) (string, error)
	DeleteFileFunc           func(ctx context.Context, key string) error
	GetFileURLFunc           func(key string) string

	mu      sync.Mutex
	deleted []string
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		Bucket: "test-bucket",
		Region: "ap-northeast-2",
	}
}

// GeneratePresignedURL returns a URL shaped like a SigV4 presigned PUT
func (m *MockS3Client) GeneratePresignedURL(ctx context.Context, key, contentType string) (string, error) {
	if m.GeneratePresignedURLFunc != nil {
		return m.GeneratePresignedURLFunc(ctx, key, contentType)
	}
	if key == "" {
		return "", fmt.Errorf("key cannot be empty")
	}

	now := time.Now().UTC()
	return fmt.Sprintf("%s?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Credential=test-access-key%%2F%s%%2F%s%%2Fs3%%2Faws4_request&X-Amz-Date=%s&X-Amz-Expires=300&X-Amz-SignedHeaders=host&X-Amz-Signature=mocksignature123",
		m.GetFileURL(key),
		now.Format("20060102"),
		m.Region,
		now.Format("20060102T150405Z"),
	), nil
}

// DeleteFile records the deleted key
func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		if err := m.DeleteFileFunc(ctx, key); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.deleted = append(m.deleted, key)
	m.mu.Unlock()
	return nil
}

// DeletedKeys returns the keys passed to DeleteFile so far
func (m *MockS3Client) DeletedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

// GetFileURL returns the public URL for a file
func (m *MockS3Client) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}
	return fileURL(strings.TrimSuffix(m.Endpoint, "/"), m.Bucket, m.Region, key)
}

// Ensure MockS3Client implements S3ClientInterface
var _ S3ClientInterface = (*MockS3Client)(nil)
