package dto

import (
	"time"

	"github.com/google/uuid"

	"nexus-project-api/internal/domain"
)

// CreateWorkspaceRequest represents the request to create a workspace
type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100" example:"Acme Team"`
}

// WorkspaceResponse represents a workspace
type WorkspaceResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:        w.ID,
		Name:      w.Name,
		Slug:      w.Slug,
		OwnerID:   w.OwnerID,
		CreatedAt: w.CreatedAt,
	}
}

// WorkspaceDetailResponse is a workspace with its projects
type WorkspaceDetailResponse struct {
	Workspace   WorkspaceResponse `json:"workspace"`
	IsOwner     bool              `json:"is_owner"`
	MemberCount int64             `json:"member_count"`
	Projects    []ProjectSummary  `json:"projects"`
}

// CreateRoleRequest represents the request to create a role
type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=50" example:"PMO"`
	Description string `json:"description" binding:"max=500"`
	IsAdminRole bool   `json:"is_admin_role"`
}

// RoleResponse represents a workspace role
type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsAdminRole bool      `json:"is_admin_role"`
}

func NewRoleResponse(r *domain.Role) RoleResponse {
	return RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description, IsAdminRole: r.IsAdminRole}
}

// UpdateMembershipRoleRequest reassigns the role of a membership
type UpdateMembershipRoleRequest struct {
	RoleID uuid.UUID `json:"role_id" binding:"required"`
}

// MemberResponse represents one membership
type MemberResponse struct {
	MembershipID uuid.UUID     `json:"membership_id"`
	User         UserSummary   `json:"user"`
	Role         *RoleResponse `json:"role"`
	JoinedAt     time.Time     `json:"joined_at"`
}

func NewMemberResponse(m *domain.Membership, u *domain.User) MemberResponse {
	resp := MemberResponse{
		MembershipID: m.ID,
		User:         NewUserSummary(m.UserID, u),
		JoinedAt:     m.JoinedAt,
	}
	if m.Role != nil {
		role := NewRoleResponse(m.Role)
		resp.Role = &role
	}
	return resp
}

// TeamGroup lists the members holding one role
type TeamGroup struct {
	Role    string           `json:"role"`
	Members []MemberResponse `json:"members"`
}

// TeamDirectoryResponse groups members by role name
type TeamDirectoryResponse struct {
	Workspace WorkspaceResponse `json:"workspace"`
	Groups    []TeamGroup       `json:"groups"`
}
