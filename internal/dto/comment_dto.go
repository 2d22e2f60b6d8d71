package dto

import (
	"time"

	"github.com/google/uuid"

	"nexus-project-api/internal/domain"
)

// AttachmentUpload describes a file the client is about to upload
type AttachmentUpload struct {
	FileName    string `json:"file_name" binding:"required,max=255" example:"design.pdf"`
	ContentType string `json:"content_type" binding:"required,max=100" example:"application/pdf"`
	FileSize    int64  `json:"file_size" binding:"required,min=1" example:"20480"`
}

// CreateCommentRequest represents the request to comment on a task
// @Description attachment is optional; when set the response carries a presigned upload URL
type CreateCommentRequest struct {
	Text       string            `json:"text" binding:"required,min=1,max=5000"`
	Attachment *AttachmentUpload `json:"attachment"`
}

// AttachmentResponse represents attachment metadata
type AttachmentResponse struct {
	ID          uuid.UUID               `json:"id"`
	FileName    string                  `json:"file_name"`
	FileURL     string                  `json:"file_url,omitempty"`
	FileSize    int64                   `json:"file_size"`
	ContentType string                  `json:"content_type"`
	Status      domain.AttachmentStatus `json:"status"`
	UploaderID  *uuid.UUID              `json:"uploader_id"`
	CreatedAt   time.Time               `json:"created_at"`
}

// CommentResponse represents a comment with its attachments
type CommentResponse struct {
	ID          uuid.UUID            `json:"id"`
	TaskID      uuid.UUID            `json:"task_id"`
	Author      UserSummary          `json:"author"`
	Text        string               `json:"text"`
	Attachments []AttachmentResponse `json:"attachments"`
	CreatedAt   time.Time            `json:"created_at"`
}

// CreateCommentResponse is the new comment plus, when requested, where to upload
type CreateCommentResponse struct {
	Comment   CommentResponse `json:"comment"`
	UploadURL string          `json:"upload_url,omitempty"`
}
