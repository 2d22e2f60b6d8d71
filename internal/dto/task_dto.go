package dto

import (
	"time"

	"github.com/google/uuid"

	"nexus-project-api/internal/domain"
)

// CreateTaskRequest represents the request to create a task
// @Description startDate and dueDate use the YYYY-MM-DD format
type CreateTaskRequest struct {
	Title          string      `json:"title" binding:"required,min=1,max=200" example:"Write API docs"`
	Description    string      `json:"description" binding:"max=5000"`
	Status         string      `json:"status" binding:"omitempty,oneof=BACKLOG TODO IN_PROGRESS PAUSED DONE CANCELED" example:"TODO"`
	Priority       string      `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL" example:"HIGH"`
	AssigneeID     *uuid.UUID  `json:"assignee_id"`
	StartDate      *string     `json:"start_date" binding:"omitempty,datetime=2006-01-02" example:"2024-01-10"`
	DueDate        *string     `json:"due_date" binding:"omitempty,datetime=2006-01-02" example:"2024-01-20"`
	EffortPoints   int         `json:"effort_points" binding:"min=0" example:"3"`
	PredecessorIDs []uuid.UUID `json:"predecessor_ids"`
}

// UpdateTaskRequest replaces the editable fields of a task.
// Status is changed only through the status endpoint.
// @Description customFields maps field id to its raw value; empty values are ignored
type UpdateTaskRequest struct {
	Title          string            `json:"title" binding:"required,min=1,max=200"`
	Description    string            `json:"description" binding:"max=5000"`
	Priority       string            `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	AssigneeID     *uuid.UUID        `json:"assignee_id"`
	StartDate      *string           `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	DueDate        *string           `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	EffortPoints   int               `json:"effort_points" binding:"min=0"`
	PredecessorIDs []uuid.UUID       `json:"predecessor_ids"`
	CustomFields   map[string]string `json:"custom_fields"`
}

// UpdateTaskStatusRequest moves a task to another status
type UpdateTaskStatusRequest struct {
	TaskID    uuid.UUID `json:"task_id" form:"task_id" binding:"required"`
	NewStatus string    `json:"new_status" form:"new_status" binding:"required"`
}

// TaskSummary is the card form of a task
type TaskSummary struct {
	ID           uuid.UUID           `json:"id"`
	ProjectID    uuid.UUID           `json:"project_id"`
	Title        string              `json:"title"`
	Slug         string              `json:"slug"`
	Status       domain.TaskStatus   `json:"status"`
	Priority     domain.TaskPriority `json:"priority"`
	Assignee     *UserSummary        `json:"assignee"`
	StartDate    *string             `json:"start_date"`
	DueDate      *string             `json:"due_date"`
	EffortPoints int                 `json:"effort_points"`
}

// NewTaskSummary builds a card; users maps assignee IDs to loaded users
func NewTaskSummary(t *domain.Task, users map[uuid.UUID]*domain.User) TaskSummary {
	s := TaskSummary{
		ID:           t.ID,
		ProjectID:    t.ProjectID,
		Title:        t.Title,
		Slug:         t.Slug,
		Status:       t.Status,
		Priority:     t.Priority,
		StartDate:    FormatDate(t.StartDate),
		DueDate:      FormatDate(t.DueDate),
		EffortPoints: t.EffortPoints,
	}
	if t.AssigneeID != nil {
		a := NewUserSummary(*t.AssigneeID, users[*t.AssigneeID])
		s.Assignee = &a
	}
	return s
}

// TaskResponse represents a task
type TaskResponse struct {
	TaskSummary
	Description    string      `json:"description"`
	PredecessorIDs []uuid.UUID `json:"predecessor_ids"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func NewTaskResponse(t *domain.Task, users map[uuid.UUID]*domain.User, predecessorIDs []uuid.UUID) *TaskResponse {
	if predecessorIDs == nil {
		predecessorIDs = []uuid.UUID{}
	}
	return &TaskResponse{
		TaskSummary:    NewTaskSummary(t, users),
		Description:    t.Description,
		PredecessorIDs: predecessorIDs,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// TimeSummaryResponse reports the logged time of a task
type TimeSummaryResponse struct {
	TotalLoggedTime string `json:"total_logged_time"`
	TotalSeconds    int64  `json:"total_seconds"`
	InProgress      bool   `json:"in_progress"`
}

// ActiveTimerResponse is the caller's running log, if any
type ActiveTimerResponse struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"start_time"`
}

// TaskDetailResponse is the full task view
type TaskDetailResponse struct {
	Task         *TaskResponse              `json:"task"`
	Project      ProjectSummary             `json:"project"`
	Predecessors []TaskSummary              `json:"predecessors"`
	CustomFields []CustomFieldValueResponse `json:"custom_fields"`
	Comments     []CommentResponse          `json:"comments"`
	CanEdit      bool                       `json:"can_edit"`
	ActiveTimer  *ActiveTimerResponse       `json:"active_timer"`
	TimeSummary  TimeSummaryResponse        `json:"time_summary"`
}

// ToggleTimeResponse is returned by the timer toggle
type ToggleTimeResponse struct {
	Status          string     `json:"status"`
	TotalLoggedTime string     `json:"total_logged_time,omitempty"`
	TotalSeconds    *int64     `json:"total_seconds,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
}

// Timer toggle outcomes
const (
	TimerStarted = "started"
	TimerStopped = "stopped"
)
