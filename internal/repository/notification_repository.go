package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
)

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	CreateBatch(ctx context.Context, notifications []*domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, page Page) ([]*domain.Notification, int64, error)
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int64, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	// DeleteReadOlderThan removes read notifications created before cutoff
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type notificationRepositoryImpl struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, notifications []*domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(notifications).Error
}

// ListByRecipient returns the recipient's notifications newest first with the total count
func (r *notificationRepositoryImpl) ListByRecipient(ctx context.Context, recipientID uuid.UUID, page Page) ([]*domain.Notification, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("recipient_id = ?", recipientID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []*domain.Notification
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepositoryImpl) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Updates(map[string]interface{}{"read": true, "read_at": at})
	return result.RowsAffected, result.Error
}

func (r *notificationRepositoryImpl) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepositoryImpl) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("read = ? AND created_at < ?", true, cutoff.UTC()).
		Delete(&domain.Notification{})
	return result.RowsAffected, result.Error
}
