package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus is the lifecycle state set by the workspace owner
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "PLANNING"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
)

// IsValid reports whether s is a known project status
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project belongs to a workspace and owns its tasks
type Project struct {
	BaseModel
	WorkspaceID uuid.UUID     `gorm:"type:uuid;not null;index:idx_projects_workspace_id" json:"workspace_id"`
	Name        string        `gorm:"type:varchar(200);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Slug        string        `gorm:"type:varchar(220);not null;uniqueIndex:uq_projects_slug" json:"slug"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'PLANNING'" json:"status"`
	Budget      float64       `gorm:"not null;default:0" json:"budget"`
	Deadline    *time.Time    `gorm:"type:timestamp;index:idx_projects_deadline" json:"deadline"`
	ManagerID   *uuid.UUID    `gorm:"type:uuid;index:idx_projects_manager_id" json:"manager_id"`
	Workspace   *Workspace    `gorm:"foreignKey:WorkspaceID" json:"-"`
	Tasks       []Task        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}
