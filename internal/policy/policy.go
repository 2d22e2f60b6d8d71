// Package policy decides who may do what. It never touches storage:
// callers load the workspace, membership and project health first.
package policy

import (
	"github.com/google/uuid"

	"nexus-project-api/internal/domain"
)

// Decision is the outcome of an authorization check
type Decision int

const (
	Allowed Decision = iota
	DeniedNotMember
	DeniedNotOwner
	DeniedNoAdminRole
	DeniedProjectLocked
	DeniedNotEditor
)

// Allowed reports whether the decision permits the action
func (d Decision) Allowed() bool {
	return d == Allowed
}

// Reason is the message surfaced to the caller for a denial
func (d Decision) Reason() string {
	switch d {
	case Allowed:
		return ""
	case DeniedNotMember:
		return "not a member of this workspace"
	case DeniedNotOwner:
		return "only the workspace owner can do this"
	case DeniedNoAdminRole:
		return "an admin role is required"
	case DeniedProjectLocked:
		return "project is locked because its deadline has passed"
	case DeniedNotEditor:
		return "only the workspace owner or the assignee can edit this task"
	}
	return "forbidden"
}

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case DeniedNotMember:
		return "not_member"
	case DeniedNotOwner:
		return "not_owner"
	case DeniedNoAdminRole:
		return "no_admin_role"
	case DeniedProjectLocked:
		return "project_locked"
	case DeniedNotEditor:
		return "not_editor"
	}
	return "unknown"
}

// Action enumerates the guarded operations
type Action int

const (
	ActionView Action = iota
	ActionManageWorkspace
	ActionViewTeam
	ActionInteract
	ActionEditTask
)

// Subject is the acting user within one workspace
type Subject struct {
	UserID     uuid.UUID
	Workspace  *domain.Workspace
	Membership *domain.Membership
}

// IsOwner reports whether the subject owns the workspace
func (s Subject) IsOwner() bool {
	return s.Workspace != nil && s.Workspace.IsOwner(s.UserID)
}

// IsMember reports whether the subject belongs to the workspace.
// The owner always counts as a member.
func (s Subject) IsMember() bool {
	return s.Membership != nil || s.IsOwner()
}

// CanInteract is false only when the project is overdue and the user
// is not the workspace owner.
func CanInteract(health domain.HealthStatus, isOwner bool) bool {
	return !(health == domain.HealthOverdue && !isOwner)
}

// Resource carries the facts about the target that some actions need
type Resource struct {
	Health     domain.HealthStatus
	AssigneeID *uuid.UUID
}

// Authorize evaluates action for the subject on the resource
func (s Subject) Authorize(action Action, res Resource) Decision {
	if !s.IsMember() {
		return DeniedNotMember
	}

	switch action {
	case ActionView:
		return Allowed
	case ActionManageWorkspace:
		if !s.IsOwner() {
			return DeniedNotOwner
		}
		return Allowed
	case ActionViewTeam:
		if s.IsOwner() || s.Membership.HasAdminRole() {
			return Allowed
		}
		return DeniedNoAdminRole
	case ActionInteract:
		if !CanInteract(res.Health, s.IsOwner()) {
			return DeniedProjectLocked
		}
		return Allowed
	case ActionEditTask:
		if !CanInteract(res.Health, s.IsOwner()) {
			return DeniedProjectLocked
		}
		if s.IsOwner() || (res.AssigneeID != nil && *res.AssigneeID == s.UserID) {
			return Allowed
		}
		return DeniedNotEditor
	}
	return DeniedNotMember
}
