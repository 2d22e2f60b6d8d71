package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttachmentStatus represents the upload state of an attachment
type AttachmentStatus string

const (
	AttachmentStatusTemp      AttachmentStatus = "TEMP"      // upload URL issued, not confirmed
	AttachmentStatusConfirmed AttachmentStatus = "CONFIRMED" // uploader confirmed the upload
)

// Attachment is a file attached to a comment.
// FileKey is the object storage key, not a full URL.
type Attachment struct {
	BaseModel
	CommentID   uuid.UUID        `gorm:"type:uuid;not null;index:idx_attachments_comment_id" json:"comment_id"`
	UploaderID  *uuid.UUID       `gorm:"type:uuid;index:idx_attachments_uploader_id" json:"uploader_id"`
	Status      AttachmentStatus `gorm:"type:varchar(20);not null;default:'TEMP';index:idx_attachments_status" json:"status"`
	FileName    string           `gorm:"type:varchar(255);not null" json:"file_name"`
	FileKey     string           `gorm:"type:text;not null" json:"file_key"`
	FileSize    int64            `gorm:"not null" json:"file_size"`
	ContentType string           `gorm:"type:varchar(100);not null" json:"content_type"`
	ExpiresAt   *time.Time       `gorm:"type:timestamp;index:idx_attachments_expires_at" json:"expires_at"`
}

// TableName specifies the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}
