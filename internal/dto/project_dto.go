package dto

import (
	"time"

	"github.com/google/uuid"

	"nexus-project-api/internal/domain"
)

// CreateProjectRequest represents the request to create a new project
// @Description deadline uses the YYYY-MM-DD format
// @Description managerId must reference a member of the workspace
type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100" example:"Q1 Launch"`
	Description string     `json:"description" binding:"max=2000"`
	Deadline    *string    `json:"deadline" binding:"omitempty,datetime=2006-01-02" example:"2024-03-31"`
	Status      string     `json:"status" binding:"omitempty,oneof=PLANNING ACTIVE ON_HOLD COMPLETED" example:"ACTIVE"`
	Budget      float64    `json:"budget" binding:"min=0" example:"15000"`
	ManagerID   *uuid.UUID `json:"manager_id"`
}

// ProjectResponse represents a project with its derived metrics
type ProjectResponse struct {
	ID          uuid.UUID            `json:"id"`
	WorkspaceID uuid.UUID            `json:"workspace_id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Slug        string               `json:"slug"`
	Status      domain.ProjectStatus `json:"status"`
	Budget      float64              `json:"budget"`
	Deadline    *string              `json:"deadline"`
	ManagerID   *uuid.UUID           `json:"manager_id"`
	Health      domain.HealthStatus  `json:"health_status"`
	Progress    int                  `json:"progress_percentage"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ProjectSummary is the list form of a project
type ProjectSummary struct {
	ID       uuid.UUID            `json:"id"`
	Name     string               `json:"name"`
	Slug     string               `json:"slug"`
	Status   domain.ProjectStatus `json:"status"`
	Deadline *string              `json:"deadline"`
	Health   domain.HealthStatus  `json:"health_status"`
	Progress int                  `json:"progress_percentage"`
}

// FormatDate renders a date column, nil stays nil
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}

func NewProjectResponse(p *domain.Project, health domain.HealthStatus, progress int) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		WorkspaceID: p.WorkspaceID,
		Name:        p.Name,
		Description: p.Description,
		Slug:        p.Slug,
		Status:      p.Status,
		Budget:      p.Budget,
		Deadline:    FormatDate(p.Deadline),
		ManagerID:   p.ManagerID,
		Health:      health,
		Progress:    progress,
		CreatedAt:   p.CreatedAt,
	}
}

func NewProjectSummary(p *domain.Project, health domain.HealthStatus, progress int) ProjectSummary {
	return ProjectSummary{
		ID:       p.ID,
		Name:     p.Name,
		Slug:     p.Slug,
		Status:   p.Status,
		Deadline: FormatDate(p.Deadline),
		Health:   health,
		Progress: progress,
	}
}

// ProjectDetailQuery is bound from the project page query string
type ProjectDetailQuery struct {
	Query    string `form:"q" binding:"max=200"`
	FilterBy string `form:"filter_by" binding:"omitempty,oneof=my_tasks"`
}

// TaskGroup holds the tasks of one status column
type TaskGroup struct {
	Status domain.TaskStatus `json:"status"`
	Label  string            `json:"label"`
	Tasks  []TaskSummary     `json:"tasks"`
}

// StatusChart has one entry per non-empty status, in status order
type StatusChart struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// ProjectDetailResponse is the project board
type ProjectDetailResponse struct {
	Project          ProjectResponse    `json:"project"`
	IsLocked         bool               `json:"is_locked"`
	ActiveFilter     string             `json:"active_filter,omitempty"`
	SearchQuery      string             `json:"search_query,omitempty"`
	Groups           []TaskGroup        `json:"groups"`
	Chart            StatusChart        `json:"chart"`
	RecentActivities []ActivityResponse `json:"recent_activities"`
}

// ActivityResponse represents one audit entry
type ActivityResponse struct {
	ID        uuid.UUID              `json:"id"`
	Actor     UserSummary            `json:"actor"`
	Verb      string                 `json:"verb"`
	Target    *TargetResponse        `json:"target,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func NewActivityResponse(a *domain.Activity, actor *domain.User) ActivityResponse {
	return ActivityResponse{
		ID:        a.ID,
		Actor:     NewUserSummary(a.ActorID, actor),
		Verb:      a.Verb,
		Target:    NewTargetResponse(a.Target),
		Metadata:  a.Metadata,
		CreatedAt: a.CreatedAt,
	}
}

// PaginatedActivitiesResponse is one page of activities
type PaginatedActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

// GanttTask is one bar of the gantt chart
type GanttTask struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Progress     int    `json:"progress"`
	Dependencies string `json:"dependencies"`
	CustomClass  string `json:"custom_class"`
	Assignee     string `json:"assignee"`
}

// WorkloadResponse is the per-assignee effort report
type WorkloadResponse struct {
	Labels  []string        `json:"labels"`
	Values  []int           `json:"values"`
	Entries []WorkloadEntry `json:"entries"`
}

// WorkloadEntry is the open effort of one assignee
type WorkloadEntry struct {
	Assignee UserSummary `json:"assignee"`
	Points   int         `json:"points"`
}

// ProjectReportsResponse lists critical tasks and the workload
type ProjectReportsResponse struct {
	Project      ProjectSummary   `json:"project"`
	OverdueTasks []TaskSummary    `json:"overdue_tasks"`
	AtRiskTasks  []TaskSummary    `json:"at_risk_tasks"`
	Workload     WorkloadResponse `json:"workload"`
}
