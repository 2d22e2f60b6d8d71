package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TargetKind names the entity an activity or notification points at
type TargetKind string

const (
	TargetKindWorkspace  TargetKind = "WORKSPACE"
	TargetKindProject    TargetKind = "PROJECT"
	TargetKindTask       TargetKind = "TASK"
	TargetKindComment    TargetKind = "COMMENT"
	TargetKindInvitation TargetKind = "INVITATION"
)

// TargetRef is a typed reference to any entity
type TargetRef struct {
	Kind TargetKind `gorm:"type:varchar(20)" json:"kind"`
	ID   uuid.UUID  `gorm:"type:uuid" json:"id"`
}

// TaskTarget references a task
func TaskTarget(id uuid.UUID) TargetRef {
	return TargetRef{Kind: TargetKindTask, ID: id}
}

// WorkspaceTarget references a workspace
func WorkspaceTarget(id uuid.UUID) TargetRef {
	return TargetRef{Kind: TargetKindWorkspace, ID: id}
}

// IsZero reports whether the reference is unset
func (r TargetRef) IsZero() bool {
	return r.Kind == "" && r.ID == uuid.Nil
}

// Activity is an append-only audit entry. ProjectID is nil for
// workspace-level events.
type Activity struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	WorkspaceID uuid.UUID         `gorm:"type:uuid;not null;index:idx_activities_workspace_id" json:"workspace_id"`
	ProjectID   *uuid.UUID        `gorm:"type:uuid;index:idx_activities_project_created,priority:1" json:"project_id"`
	ActorID     uuid.UUID         `gorm:"type:uuid;not null" json:"actor_id"`
	Verb        string            `gorm:"type:varchar(255);not null" json:"verb"`
	Target      TargetRef         `gorm:"embedded;embeddedPrefix:target_" json:"target"`
	Metadata    datatypes.JSONMap `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;index:idx_activities_project_created,priority:2,sort:desc" json:"created_at"`
}

// TableName specifies the table name for Activity
func (Activity) TableName() string {
	return "activities"
}

// BeforeCreate assigns a UUID when the caller did not set one
func (m *Activity) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
