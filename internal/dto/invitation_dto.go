package dto

import (
	"time"

	"github.com/google/uuid"
)

// SendInvitationRequest invites an email address to a workspace
type SendInvitationRequest struct {
	Email string `json:"email" binding:"required,email,max=255" example:"bob@example.com"`
}

// InvitationResponse represents a created invitation
type InvitationResponse struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Email       string    `json:"email"`
	IsAccepted  bool      `json:"is_accepted"`
	CreatedAt   time.Time `json:"created_at"`
}

// AcceptInvitationResponse reports whether the caller joined the workspace
type AcceptInvitationResponse struct {
	Joined    bool              `json:"joined"`
	Warning   string            `json:"warning,omitempty"`
	Workspace WorkspaceResponse `json:"workspace"`
}
