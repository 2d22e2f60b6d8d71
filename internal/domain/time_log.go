package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeLog records one working interval of a user on a task.
// EndTime nil means the log is still running.
type TimeLog struct {
	BaseModel
	TaskID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_time_logs_task_user,priority:1" json:"task_id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_time_logs_task_user,priority:2" json:"user_id"`
	StartTime time.Time  `gorm:"type:timestamp;not null" json:"start_time"`
	EndTime   *time.Time `gorm:"type:timestamp" json:"end_time"`
	// OpenKey is set only while the log is running; the unique index
	// allows a single open log per (task, user).
	OpenKey *string `gorm:"type:varchar(80);uniqueIndex:uq_time_logs_open_key" json:"-"`
}

// OpenKeyFor builds the open-log key for a (task, user) pair
func OpenKeyFor(taskID, userID uuid.UUID) string {
	return taskID.String() + ":" + userID.String()
}

// IsRunning reports whether the log has not been stopped
func (l *TimeLog) IsRunning() bool {
	return l.EndTime == nil
}

// Duration returns end-start for a closed log and false for a running one
func (l *TimeLog) Duration() (time.Duration, bool) {
	if l.EndTime == nil {
		return 0, false
	}
	return l.EndTime.Sub(l.StartTime), true
}

// TableName specifies the table name for TimeLog
func (TimeLog) TableName() string {
	return "time_logs"
}
