package dto

import (
	"github.com/google/uuid"

	"nexus-project-api/internal/domain"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// UserSummary is the embedded form of a user in other responses
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
	Name  string    `json:"name"`
}

// NewUserSummary builds a summary; an unknown user keeps only its ID
func NewUserSummary(id uuid.UUID, u *domain.User) UserSummary {
	if u == nil {
		return UserSummary{ID: id}
	}
	return UserSummary{ID: u.ID, Email: u.Email, Name: u.FullName()}
}

// TargetResponse is a typed reference to another entity
type TargetResponse struct {
	Kind domain.TargetKind `json:"kind"`
	ID   uuid.UUID         `json:"id"`
}

// NewTargetResponse returns nil for an unset reference
func NewTargetResponse(ref domain.TargetRef) *TargetResponse {
	if ref.IsZero() {
		return nil
	}
	return &TargetResponse{Kind: ref.Kind, ID: ref.ID}
}

// PaginationQuery is bound from ?page=&limit=
type PaginationQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
