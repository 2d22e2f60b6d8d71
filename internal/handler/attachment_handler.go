// Package handler provides HTTP request handlers for the API.
package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/response"
	"nexus-project-api/internal/service"
)

// AttachmentHandler handles attachment-related requests
type AttachmentHandler struct {
	commentService service.CommentService
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(commentService service.CommentService) *AttachmentHandler {
	return &AttachmentHandler{commentService: commentService}
}

// MaxFileSize defines the maximum allowed file size for uploads (50MB).
const MaxFileSize = 50 * 1024 * 1024

var (
	AllowedImageTypes = map[string]bool{
		"image/jpeg":    true,
		"image/jpg":     true,
		"image/png":     true,
		"image/gif":     true,
		"image/webp":    true,
		"image/svg+xml": true,
		"image/heic":    true, // iPhone
	}

	AllowedDocTypes = map[string]bool{
		// 문서
		"application/pdf": true,
		"text/plain":      true,
		"text/markdown":   true,
		"text/csv":        true,

		// MS Office
		"application/msword":            true, // .doc
		"application/vnd.ms-excel":      true, // .xls
		"application/vnd.ms-powerpoint": true, // .ppt
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true, // .docx
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true, // .xlsx
		"application/vnd.openxmlformats-officedocument.presentationml.presentation": true, // .pptx

		// 압축
		"application/zip":              true,
		"application/x-zip-compressed": true,

		"application/json": true,
	}

	AllowedImageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".webp": true, ".svg": true, ".heic": true,
	}

	AllowedDocExtensions = map[string]bool{
		".pdf": true, ".txt": true, ".md": true, ".csv": true,
		".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
		".ppt": true, ".pptx": true, ".zip": true, ".json": true,
	}
)

// validateAttachmentUpload checks size, extension and content type of a
// file announced with a comment
func validateAttachmentUpload(upload *dto.AttachmentUpload) error {
	if upload.FileSize <= 0 {
		return response.NewAppError(response.ErrCodeValidation, "File size must be greater than 0", "")
	}
	if upload.FileSize > MaxFileSize {
		return response.NewAppError(response.ErrCodeValidation, "File size exceeds 50MB limit", "")
	}

	fileExt := strings.ToLower(filepath.Ext(upload.FileName))
	if fileExt == "" {
		return response.NewAppError(response.ErrCodeValidation, "File must have an extension", "")
	}

	isAllowedImage := AllowedImageTypes[upload.ContentType] && AllowedImageExtensions[fileExt]
	isAllowedDoc := AllowedDocTypes[upload.ContentType] && AllowedDocExtensions[fileExt]
	if !isAllowedImage && !isAllowedDoc {
		return response.NewAppError(response.ErrCodeValidation,
			fmt.Sprintf("Unsupported file type %s (%s)", fileExt, upload.ContentType), "")
	}
	return nil
}

// ConfirmAttachment godoc
// @Summary      첨부 파일 업로드 확인
// @Description  presigned URL로 업로드를 마친 뒤 호출합니다. 업로더만 확인할 수 있으며 TEMP 상태만 CONFIRMED로 바뀝니다
// @Description  확인되지 않은 첨부 파일은 만료 후 정리 작업이 삭제합니다
// @Tags         attachments
// @Produce      json
// @Param        attachmentId path string true "Attachment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.AttachmentResponse}
// @Failure      403 {object} response.ErrorResponse "업로더가 아님"
// @Failure      404 {object} response.ErrorResponse "첨부 파일을 찾을 수 없음"
// @Failure      409 {object} response.ErrorResponse "이미 확인됨"
// @Router       /attachments/{attachmentId}/confirm [post]
// @Security     BearerAuth
func (h *AttachmentHandler) ConfirmAttachment(c *gin.Context) {
	attachmentID, ok := parseUUIDParam(c, "attachmentId", "attachment")
	if !ok {
		return
	}
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	attachment, err := h.commentService.ConfirmAttachment(c.Request.Context(), userID, attachmentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, attachment)
}
