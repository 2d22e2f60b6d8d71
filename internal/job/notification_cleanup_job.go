package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"nexus-project-api/internal/repository"
)

// NotificationCleanupJob deletes read notifications older than the retention window.
// Unread notifications are never removed.
type NotificationCleanupJob struct {
	notificationRepo repository.NotificationRepository
	retention        time.Duration
	logger           *zap.Logger
	now              func() time.Time
}

func NewNotificationCleanupJob(
	notificationRepo repository.NotificationRepository,
	retentionDays int,
	logger *zap.Logger,
) *NotificationCleanupJob {
	return &NotificationCleanupJob{
		notificationRepo: notificationRepo,
		retention:        time.Duration(retentionDays) * 24 * time.Hour,
		logger:           logger,
		now:              time.Now,
	}
}

// Run executes one retention pass
func (j *NotificationCleanupJob) Run() {
	_, _ = j.RunOnce(context.Background())
}

// RunOnce returns the number of deleted notifications
func (j *NotificationCleanupJob) RunOnce(ctx context.Context) (int64, error) {
	if j.retention <= 0 {
		j.logger.Debug("Notification retention disabled, skipping cleanup")
		return 0, nil
	}

	cutoff := j.now().Add(-j.retention)
	deleted, err := j.notificationRepo.DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to delete old notifications",
			zap.Time("cutoff", cutoff),
			zap.Error(err),
		)
		return 0, err
	}

	j.logger.Info("Notification cleanup completed",
		zap.Time("cutoff", cutoff),
		zap.Int64("deleted", deleted),
	)
	return deleted, nil
}
