package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexus-project-api/internal/client"
	"nexus-project-api/internal/repository"
)

// CleanupResult summarizes one pass of a cleanup job
type CleanupResult struct {
	Found   int
	Deleted int
	Failed  int
}

// CleanupJob removes comment attachments whose upload was never confirmed
type CleanupJob struct {
	attachmentRepo repository.AttachmentRepository
	s3Client       client.S3ClientInterface
	logger         *zap.Logger
	now            func() time.Time
}

// NewCleanupJob creates a new CleanupJob instance.
// s3Client may be nil when object storage is not configured; rows are still removed.
func NewCleanupJob(
	attachmentRepo repository.AttachmentRepository,
	s3Client client.S3ClientInterface,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		attachmentRepo: attachmentRepo,
		s3Client:       s3Client,
		logger:         logger,
		now:            time.Now,
	}
}

// Run executes the cleanup job; it is the entry point registered with the scheduler
func (j *CleanupJob) Run() {
	_, _ = j.RunOnce(context.Background())
}

// RunOnce finds expired TEMP attachments and deletes them from object storage and the database.
// Rows whose object could not be deleted are kept so the next pass retries them.
func (j *CleanupJob) RunOnce(ctx context.Context) (CleanupResult, error) {
	j.logger.Info("Starting cleanup job for expired temporary attachments")

	expiredAttachments, err := j.attachmentRepo.FindExpiredTempAttachments(ctx, j.now())
	if err != nil {
		j.logger.Error("Failed to find expired temporary attachments",
			zap.Error(err),
		)
		return CleanupResult{}, err
	}

	result := CleanupResult{Found: len(expiredAttachments)}
	if result.Found == 0 {
		j.logger.Info("No expired temporary attachments found")
		return result, nil
	}

	j.logger.Info("Found expired temporary attachments",
		zap.Int("count", result.Found),
	)

	var successfulDeletionIDs []uuid.UUID
	for _, attachment := range expiredAttachments {
		if j.s3Client != nil && attachment.FileKey != "" {
			if err := j.s3Client.DeleteFile(ctx, attachment.FileKey); err != nil {
				j.logger.Error("Failed to delete file from S3",
					zap.String("attachment_id", attachment.ID.String()),
					zap.String("file_key", attachment.FileKey),
					zap.Error(err),
				)
				result.Failed++
				continue
			}
		}

		successfulDeletionIDs = append(successfulDeletionIDs, attachment.ID)

		j.logger.Debug("Deleted file from S3",
			zap.String("attachment_id", attachment.ID.String()),
			zap.String("file_key", attachment.FileKey),
		)
	}

	if len(successfulDeletionIDs) > 0 {
		if err := j.attachmentRepo.DeleteBatch(ctx, successfulDeletionIDs); err != nil {
			j.logger.Error("Failed to delete attachments from database",
				zap.Int("count", len(successfulDeletionIDs)),
				zap.Error(err),
			)
			result.Failed += len(successfulDeletionIDs)
			return result, err
		}
		result.Deleted = len(successfulDeletionIDs)
		j.logger.Info("Successfully deleted attachments from database",
			zap.Int("count", result.Deleted),
		)
	}

	j.logger.Info("Cleanup job completed",
		zap.Int("total_expired", result.Found),
		zap.Int("success", result.Deleted),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}
