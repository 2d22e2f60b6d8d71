package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nexus-project-api/internal/client"
	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/repository"
)

// MockAttachmentRepository is a mock implementation of AttachmentRepository
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) ListByComment(ctx context.Context, commentID uuid.UUID) ([]*domain.Attachment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Confirm(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttachmentRepository) FindExpiredTempAttachments(ctx context.Context, now time.Time) ([]*domain.Attachment, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) DeleteBatch(ctx context.Context, attachmentIDs []uuid.UUID) error {
	args := m.Called(ctx, attachmentIDs)
	return args.Error(0)
}

var _ repository.AttachmentRepository = (*MockAttachmentRepository)(nil)

var jobNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestCleanupJob(repo repository.AttachmentRepository, s3 client.S3ClientInterface) *CleanupJob {
	job := NewCleanupJob(repo, s3, zap.NewNop())
	job.now = func() time.Time { return jobNow }
	return job
}

func expiredAttachment(key string) *domain.Attachment {
	expiredTime := jobNow.Add(-2 * time.Hour)
	uploader := uuid.New()
	return &domain.Attachment{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		CommentID:   uuid.New(),
		UploaderID:  &uploader,
		Status:      domain.AttachmentStatusTemp,
		FileName:    "file.pdf",
		FileKey:     key,
		FileSize:    1024,
		ContentType: "application/pdf",
		ExpiresAt:   &expiredTime,
	}
}

func TestCleanupJob_Run_ExpiredFilesDeleted(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := client.NewMockS3Client()
	job := newTestCleanupJob(mockRepo, mockS3)

	a1 := expiredAttachment("attachments/2024/06/14/comment_1/a.pdf")
	a2 := expiredAttachment("attachments/2024/06/14/comment_2/b.png")

	mockRepo.On("FindExpiredTempAttachments", mock.Anything, jobNow).Return([]*domain.Attachment{a1, a2}, nil)
	mockRepo.On("DeleteBatch", mock.Anything, []uuid.UUID{a1.ID, a2.ID}).Return(nil)

	result, err := job.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, CleanupResult{Found: 2, Deleted: 2}, result)
	assert.Equal(t, []string{a1.FileKey, a2.FileKey}, mockS3.DeletedKeys())
	mockRepo.AssertExpectations(t)
}

func TestCleanupJob_Run_NoExpiredFiles(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := client.NewMockS3Client()
	job := newTestCleanupJob(mockRepo, mockS3)

	mockRepo.On("FindExpiredTempAttachments", mock.Anything, jobNow).Return([]*domain.Attachment{}, nil)

	job.Run()

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "DeleteBatch", mock.Anything, mock.Anything)
	assert.Empty(t, mockS3.DeletedKeys())
}

func TestCleanupJob_Run_S3DeleteFailure(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := client.NewMockS3Client()
	job := newTestCleanupJob(mockRepo, mockS3)

	failing := expiredAttachment("attachments/2024/06/14/comment_1/a.pdf")
	ok := expiredAttachment("attachments/2024/06/14/comment_2/b.pdf")
	mockS3.DeleteFileFunc = func(ctx context.Context, key string) error {
		if key == failing.FileKey {
			return errors.New("S3 error")
		}
		return nil
	}

	mockRepo.On("FindExpiredTempAttachments", mock.Anything, jobNow).Return([]*domain.Attachment{failing, ok}, nil)
	// Only the second attachment should be deleted from DB
	mockRepo.On("DeleteBatch", mock.Anything, []uuid.UUID{ok.ID}).Return(nil)

	result, err := job.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, CleanupResult{Found: 2, Deleted: 1, Failed: 1}, result)
	mockRepo.AssertExpectations(t)
}

func TestCleanupJob_Run_RepositoryFindError(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := client.NewMockS3Client()
	job := newTestCleanupJob(mockRepo, mockS3)

	mockRepo.On("FindExpiredTempAttachments", mock.Anything, jobNow).Return(nil, errors.New("database error"))

	_, err := job.RunOnce(context.Background())

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "DeleteBatch", mock.Anything, mock.Anything)
	assert.Empty(t, mockS3.DeletedKeys())
}

func TestCleanupJob_Run_DatabaseDeleteError(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	mockS3 := client.NewMockS3Client()
	job := newTestCleanupJob(mockRepo, mockS3)

	a := expiredAttachment("attachments/2024/06/14/comment_1/a.pdf")
	mockRepo.On("FindExpiredTempAttachments", mock.Anything, jobNow).Return([]*domain.Attachment{a}, nil)
	mockRepo.On("DeleteBatch", mock.Anything, []uuid.UUID{a.ID}).Return(errors.New("database error"))

	result, err := job.RunOnce(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Zero(t, result.Deleted)
	mockRepo.AssertExpectations(t)
}

func TestCleanupJob_Run_WithoutObjectStorage(t *testing.T) {
	mockRepo := new(MockAttachmentRepository)
	job := newTestCleanupJob(mockRepo, nil)

	a := expiredAttachment("attachments/2024/06/14/comment_1/a.pdf")
	mockRepo.On("FindExpiredTempAttachments", mock.Anything, jobNow).Return([]*domain.Attachment{a}, nil)
	mockRepo.On("DeleteBatch", mock.Anything, []uuid.UUID{a.ID}).Return(nil)

	result, err := job.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)
	mockRepo.AssertExpectations(t)
}
