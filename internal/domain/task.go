package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the state of a task on the board
type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "BACKLOG"
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusPaused     TaskStatus = "PAUSED"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusCanceled   TaskStatus = "CANCELED"
)

// TaskStatuses lists all statuses in board order
var TaskStatuses = []TaskStatus{
	TaskStatusBacklog,
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusPaused,
	TaskStatusDone,
	TaskStatusCanceled,
}

var taskStatusLabels = map[TaskStatus]string{
	TaskStatusBacklog:    "Backlog",
	TaskStatusTodo:       "To Do",
	TaskStatusInProgress: "In Progress",
	TaskStatusPaused:     "Paused",
	TaskStatusDone:       "Done",
	TaskStatusCanceled:   "Canceled",
}

// IsValid reports whether s is a known task status
func (s TaskStatus) IsValid() bool {
	_, ok := taskStatusLabels[s]
	return ok
}

// Label returns the human readable status
func (s TaskStatus) Label() string {
	if l, ok := taskStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// IsTerminal reports whether the task no longer counts as open work
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusDone || s == TaskStatusCanceled
}

// TaskPriority orders tasks by urgency
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "LOW"
	TaskPriorityMedium   TaskPriority = "MEDIUM"
	TaskPriorityHigh     TaskPriority = "HIGH"
	TaskPriorityCritical TaskPriority = "CRITICAL"
)

// IsValid reports whether p is a known priority
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

// Task is a unit of work inside a project.
// Predecessors is asymmetric: if A precedes B, B never precedes A.
type Task struct {
	BaseModel
	ProjectID    uuid.UUID          `gorm:"type:uuid;not null;index:idx_tasks_project_id;uniqueIndex:uq_tasks_project_slug,priority:1" json:"project_id"`
	Title        string             `gorm:"type:varchar(255);not null" json:"title"`
	Description  string             `gorm:"type:text" json:"description"`
	Slug         string             `gorm:"type:varchar(280);not null;uniqueIndex:uq_tasks_project_slug,priority:2" json:"slug"`
	Status       TaskStatus         `gorm:"type:varchar(20);not null;default:'BACKLOG';index:idx_tasks_status" json:"status"`
	Priority     TaskPriority       `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	AssigneeID   *uuid.UUID         `gorm:"type:uuid;index:idx_tasks_assignee_id" json:"assignee_id"`
	StartDate    *time.Time         `gorm:"type:timestamp;index:idx_tasks_start_date" json:"start_date"`
	DueDate      *time.Time         `gorm:"type:timestamp;index:idx_tasks_due_date" json:"due_date"`
	EffortPoints int                `gorm:"not null;default:0" json:"effort_points"`
	Project      *Project           `gorm:"foreignKey:ProjectID" json:"-"`
	Predecessors []*Task            `gorm:"many2many:task_predecessors;joinForeignKey:TaskID;joinReferences:PredecessorID" json:"-"`
	TimeLogs     []TimeLog          `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	Comments     []Comment          `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	FieldValues  []CustomFieldValue `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
}

// IncompletePredecessors returns the loaded predecessors that are not DONE
func (t *Task) IncompletePredecessors() []*Task {
	var pending []*Task
	for _, p := range t.Predecessors {
		if p.Status != TaskStatusDone {
			pending = append(pending, p)
		}
	}
	return pending
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}
