package dto

import (
	"time"

	"github.com/google/uuid"

	"nexus-project-api/internal/domain"
)

// NotificationResponse represents one notification
type NotificationResponse struct {
	ID          uuid.UUID       `json:"id"`
	Actor       UserSummary     `json:"actor"`
	WorkspaceID uuid.UUID       `json:"workspace_id"`
	Verb        string          `json:"verb"`
	Target      *TargetResponse `json:"target,omitempty"`
	Read        bool            `json:"read"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewNotificationResponse(n *domain.Notification, actor *domain.User) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		Actor:       NewUserSummary(n.ActorID, actor),
		WorkspaceID: n.WorkspaceID,
		Verb:        n.Verb,
		Target:      NewTargetResponse(n.Target),
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}

// PaginatedNotificationsResponse is one page of notifications
type PaginatedNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	MarkedRead    int64                  `json:"marked_read"`
}

// UnreadCountResponse is the number of unread notifications
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
