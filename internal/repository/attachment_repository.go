package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
)

// AttachmentRepository defines the interface for attachment data access
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	ListByComment(ctx context.Context, commentID uuid.UUID) ([]*domain.Attachment, error)
	// Confirm moves a TEMP attachment to CONFIRMED and reports whether a row changed
	Confirm(ctx context.Context, id uuid.UUID) (bool, error)
	FindExpiredTempAttachments(ctx context.Context, now time.Time) ([]*domain.Attachment, error)
	DeleteBatch(ctx context.Context, attachmentIDs []uuid.UUID) error
}

// attachmentRepositoryImpl is the GORM implementation of AttachmentRepository
type attachmentRepositoryImpl struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new instance of AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepositoryImpl{db: db}
}

// Create creates a new attachment
func (r *attachmentRepositoryImpl) Create(ctx context.Context, attachment *domain.Attachment) error {
	if err := r.db.WithContext(ctx).Create(attachment).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds an attachment by its ID
func (r *attachmentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	var attachment domain.Attachment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&attachment).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// ListByComment finds all attachments of a comment
func (r *attachmentRepositoryImpl) ListByComment(ctx context.Context, commentID uuid.UUID) ([]*domain.Attachment, error) {
	var attachments []*domain.Attachment
	if err := r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Order("created_at ASC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *attachmentRepositoryImpl) Confirm(ctx context.Context, id uuid.UUID) (bool, error) {
	// TEMP 상태만 업데이트
	result := r.db.WithContext(ctx).
		Model(&domain.Attachment{}).
		Where("id = ? AND status = ?", id, domain.AttachmentStatusTemp).
		Updates(map[string]interface{}{
			"status":     domain.AttachmentStatusConfirmed,
			"expires_at": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// FindExpiredTempAttachments finds all temporary attachments that have exceeded their expiration time
func (r *attachmentRepositoryImpl) FindExpiredTempAttachments(ctx context.Context, now time.Time) ([]*domain.Attachment, error) {
	var attachments []*domain.Attachment
	if err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", domain.AttachmentStatusTemp, now.UTC()).
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// DeleteBatch deletes multiple attachments by their IDs
func (r *attachmentRepositoryImpl) DeleteBatch(ctx context.Context, attachmentIDs []uuid.UUID) error {
	if len(attachmentIDs) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).
		Where("id IN ?", attachmentIDs).
		Delete(&domain.Attachment{}).Error; err != nil {
		return err
	}
	return nil
}
