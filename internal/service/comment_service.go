package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nexus-project-api/internal/client"
	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/metrics"
	"nexus-project-api/internal/policy"
	"nexus-project-api/internal/repository"
	"nexus-project-api/internal/response"
)

const commentVerb = "commented on task"

// CommentService defines the interface for comment business logic
type CommentService interface {
	AddComment(ctx context.Context, userID, taskID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CreateCommentResponse, error)
	ConfirmAttachment(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.AttachmentResponse, error)
}

type commentServiceImpl struct {
	store         repository.Store
	dispatcher    Dispatcher
	s3Client      client.S3ClientInterface
	attachmentTTL time.Duration
	metrics       *metrics.Metrics
	logger        *zap.Logger
	now           Clock
}

// NewCommentService creates a new instance of CommentService. s3Client may
// be nil, in which case attachments are dropped with a warning.
func NewCommentService(store repository.Store, dispatcher Dispatcher, s3Client client.S3ClientInterface, attachmentTTL time.Duration, m *metrics.Metrics, logger *zap.Logger) CommentService {
	return &commentServiceImpl{
		store:         store,
		dispatcher:    dispatcher,
		s3Client:      s3Client,
		attachmentTTL: attachmentTTL,
		metrics:       m,
		logger:        logger,
		now:           systemClock,
	}
}

// AddComment posts a comment on the task. With an attachment it also
// reserves a TEMP attachment row and returns a presigned upload URL.
func (s *commentServiceImpl) AddComment(ctx context.Context, userID, taskID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CreateCommentResponse, error) {
	task, sub, err := taskForMember(ctx, s.store, userID, taskID)
	if err != nil {
		return nil, err
	}
	project := task.Project

	now := s.now()
	health, _, err := projectHealth(ctx, s.store, project, now)
	if err != nil {
		return nil, err
	}
	if d := sub.Authorize(policy.ActionInteract, policy.Resource{Health: health}); !d.Allowed() {
		return nil, forbidden(d)
	}

	upload := req.Attachment
	if upload != nil && s.s3Client == nil {
		s.logger.Warn("Object storage not configured, dropping attachment",
			zap.String("task_id", task.ID.String()),
			zap.String("file_name", upload.FileName),
		)
		upload = nil
	}

	comment := &domain.Comment{TaskID: task.ID, AuthorID: userID, Text: req.Text}
	var (
		attachment    *domain.Attachment
		notifications []*domain.Notification
	)
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Comments().Create(ctx, comment); err != nil {
			return err
		}

		if upload != nil {
			expiresAt := now.Add(s.attachmentTTL)
			attachment = &domain.Attachment{
				CommentID:   comment.ID,
				UploaderID:  &userID,
				Status:      domain.AttachmentStatusTemp,
				FileName:    upload.FileName,
				FileKey:     client.AttachmentKey(comment.ID, upload.FileName, now),
				FileSize:    upload.FileSize,
				ContentType: upload.ContentType,
				ExpiresAt:   &expiresAt,
			}
			if err := tx.Attachments().Create(ctx, attachment); err != nil {
				return err
			}
			comment.Attachments = []domain.Attachment{*attachment}
		}

		var err error
		notifications, err = recordEvent(ctx, tx, Event{
			WorkspaceID: project.WorkspaceID,
			ProjectID:   &project.ID,
			ActorID:     userID,
			Verb:        commentVerb,
			Target:      domain.TaskTarget(task.ID),
			Recipients:  Recipients(task.AssigneeID, project.Workspace.OwnerID, userID),
		}, now)
		return err
	})
	if err != nil {
		return nil, passThrough("Failed to add comment", err)
	}

	s.dispatcher.Dispatch(ctx, notifications)
	s.metrics.IncrementCommentCreated()

	resp := &dto.CreateCommentResponse{}
	if attachment != nil {
		url, err := s.s3Client.GeneratePresignedURL(ctx, attachment.FileKey, attachment.ContentType)
		if err != nil {
			s.logger.Warn("Failed to generate upload URL",
				zap.String("attachment_id", attachment.ID.String()),
				zap.Error(err),
			)
		}
		resp.UploadURL = url
	}

	users, err := userMap(ctx, s.store, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	resp.Comment = commentResponse(comment, users, s.s3Client)
	return resp, nil
}

// ConfirmAttachment marks an uploaded attachment as permanent. Only its
// uploader may confirm it.
func (s *commentServiceImpl) ConfirmAttachment(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.AttachmentResponse, error) {
	attachment, err := s.store.Attachments().FindByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Attachment")
		}
		return nil, internal("Failed to load attachment", err)
	}
	if attachment.UploaderID == nil || *attachment.UploaderID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Permission denied", "only the uploader can confirm this attachment")
	}

	confirmed, err := s.store.Attachments().Confirm(ctx, attachment.ID)
	if err != nil {
		return nil, internal("Failed to confirm attachment", err)
	}
	if !confirmed {
		return nil, conflict("Attachment is already confirmed")
	}

	attachment.Status = domain.AttachmentStatusConfirmed
	attachment.ExpiresAt = nil
	s.logger.Info("Attachment confirmed", zap.String("attachment_id", attachment.ID.String()))

	resp := attachmentResponse(attachment, s.s3Client)
	return &resp, nil
}

// attachmentResponse exposes the file URL only once the upload is confirmed
func attachmentResponse(a *domain.Attachment, s3Client client.S3ClientInterface) dto.AttachmentResponse {
	resp := dto.AttachmentResponse{
		ID:          a.ID,
		FileName:    a.FileName,
		FileSize:    a.FileSize,
		ContentType: a.ContentType,
		Status:      a.Status,
		UploaderID:  a.UploaderID,
		CreatedAt:   a.CreatedAt,
	}
	if s3Client != nil && a.Status == domain.AttachmentStatusConfirmed {
		resp.FileURL = s3Client.GetFileURL(a.FileKey)
	}
	return resp
}

func commentResponse(c *domain.Comment, users map[uuid.UUID]*domain.User, s3Client client.S3ClientInterface) dto.CommentResponse {
	attachments := make([]dto.AttachmentResponse, 0, len(c.Attachments))
	for i := range c.Attachments {
		attachments = append(attachments, attachmentResponse(&c.Attachments[i], s3Client))
	}
	return dto.CommentResponse{
		ID:          c.ID,
		TaskID:      c.TaskID,
		Author:      dto.NewUserSummary(c.AuthorID, users[c.AuthorID]),
		Text:        c.Text,
		Attachments: attachments,
		CreatedAt:   c.CreatedAt,
	}
}

func commentResponses(comments []*domain.Comment, users map[uuid.UUID]*domain.User, s3Client client.S3ClientInterface) []dto.CommentResponse {
	out := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentResponse(c, users, s3Client))
	}
	return out
}
