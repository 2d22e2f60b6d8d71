package domain

import (
	"time"

	"github.com/google/uuid"
)

// Built-in role names created on demand per workspace
const (
	RoleNameOwner  = "Owner"
	RoleNameMember = "Member"
	RoleNamePMO    = "PMO"
)

// Workspace is the top-level tenant. The owner always holds a membership.
type Workspace struct {
	BaseModel
	Name     string       `gorm:"type:varchar(150);not null" json:"name"`
	Slug     string       `gorm:"type:varchar(180);not null;uniqueIndex:uq_workspaces_slug" json:"slug"`
	OwnerID  uuid.UUID    `gorm:"type:uuid;not null;index:idx_workspaces_owner_id" json:"owner_id"`
	Members  []Membership `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"-"`
	Roles    []Role       `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"-"`
	Projects []Project    `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsOwner reports whether userID owns the workspace
func (w *Workspace) IsOwner(userID uuid.UUID) bool {
	return w.OwnerID == userID
}

// Role is a named permission bundle scoped to one workspace
type Role struct {
	BaseModel
	WorkspaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_roles_workspace_name,priority:1" json:"workspace_id"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_roles_workspace_name,priority:2" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsAdminRole bool      `gorm:"not null;default:false" json:"is_admin_role"`
}

// Membership links a user to a workspace with an optional role
type Membership struct {
	BaseModel
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_memberships_user_workspace,priority:1" json:"user_id"`
	WorkspaceID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_memberships_user_workspace,priority:2;index:idx_memberships_workspace_id" json:"workspace_id"`
	RoleID      *uuid.UUID `gorm:"type:uuid;index:idx_memberships_role_id" json:"role_id"`
	Role        *Role      `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL" json:"role,omitempty"`
	JoinedAt    time.Time  `gorm:"not null" json:"joined_at"`
}

// HasAdminRole reports whether the membership carries an admin-capable role.
// A missing role means no admin access.
func (m *Membership) HasAdminRole() bool {
	return m != nil && m.Role != nil && m.Role.IsAdminRole
}

// TableName specifies the table name for Workspace
func (Workspace) TableName() string {
	return "workspaces"
}

// TableName specifies the table name for Role
func (Role) TableName() string {
	return "roles"
}

// TableName specifies the table name for Membership
func (Membership) TableName() string {
	return "memberships"
}
