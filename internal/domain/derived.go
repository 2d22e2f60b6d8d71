package domain

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// HealthStatus is the derived risk category of a project
type HealthStatus string

const (
	HealthFinished HealthStatus = "Finished"
	HealthOverdue  HealthStatus = "Overdue"
	HealthAtRisk   HealthStatus = "AtRisk"
	HealthOnTrack  HealthStatus = "OnTrack"
)

// AtRiskWindowDays is how close a deadline must be to count as at risk
const AtRiskWindowDays = 7

// DateOf truncates t to a UTC calendar date
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeHealth classifies a project. Checks run in order: no open
// tasks, past deadline, deadline within the at-risk window, otherwise on track.
func ComputeHealth(openTasks int64, deadline *time.Time, now time.Time) HealthStatus {
	if openTasks == 0 {
		return HealthFinished
	}
	if deadline == nil {
		return HealthOnTrack
	}
	today := DateOf(now)
	due := DateOf(*deadline)
	if due.Before(today) {
		return HealthOverdue
	}
	if !due.After(today.AddDate(0, 0, AtRiskWindowDays)) {
		return HealthAtRisk
	}
	return HealthOnTrack
}

// ComputeProgress returns the rounded percentage of DONE tasks among
// non-canceled tasks, 0 when there are none.
func ComputeProgress(total, done, canceled int64) int {
	denominator := total - canceled
	if denominator <= 0 {
		return 0
	}
	pct := int(math.Round(float64(done) / float64(denominator) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// TaskCounts holds the per-status totals of a project
type TaskCounts struct {
	ByStatus map[TaskStatus]int64
}

// Total returns the number of tasks across all statuses
func (c TaskCounts) Total() int64 {
	var n int64
	for _, v := range c.ByStatus {
		n += v
	}
	return n
}

// Open returns the number of tasks that are neither DONE nor CANCELED
func (c TaskCounts) Open() int64 {
	return c.Total() - c.ByStatus[TaskStatusDone] - c.ByStatus[TaskStatusCanceled]
}

// Health derives the project health from the counts
func (c TaskCounts) Health(deadline *time.Time, now time.Time) HealthStatus {
	return ComputeHealth(c.Open(), deadline, now)
}

// Progress derives the completion percentage from the counts
func (c TaskCounts) Progress() int {
	return ComputeProgress(c.Total(), c.ByStatus[TaskStatusDone], c.ByStatus[TaskStatusCanceled])
}

// TimeSummary totals the closed logs of a task
type TimeSummary struct {
	Total      time.Duration
	InProgress bool
}

// SummarizeTimeLogs sums closed logs and flags whether any log is still running
func SummarizeTimeLogs(logs []TimeLog) TimeSummary {
	var s TimeSummary
	for i := range logs {
		if d, closed := logs[i].Duration(); closed {
			s.Total += d
		} else {
			s.InProgress = true
		}
	}
	return s
}

// FormatDuration renders d as "<h>h <m>m"
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60)
}

// WorkloadEntry is one assignee's sum of open effort points
type WorkloadEntry struct {
	AssigneeID uuid.UUID `json:"assignee_id"`
	Name       string    `json:"name"`
	Points     int       `json:"points"`
}

// AggregateWorkload groups non-terminal assigned tasks by assignee and sums
// their effort points, largest first. names resolves display names.
func AggregateWorkload(tasks []Task, names map[uuid.UUID]string) []WorkloadEntry {
	sums := make(map[uuid.UUID]int)
	for i := range tasks {
		t := &tasks[i]
		if t.AssigneeID == nil || t.Status.IsTerminal() {
			continue
		}
		sums[*t.AssigneeID] += t.EffortPoints
	}

	entries := make([]WorkloadEntry, 0, len(sums))
	for id, points := range sums {
		name := names[id]
		if name == "" {
			name = id.String()
		}
		entries = append(entries, WorkloadEntry{AssigneeID: id, Name: name, Points: points})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
