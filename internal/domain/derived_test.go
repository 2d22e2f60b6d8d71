package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func ptrTime(t time.Time) *time.Time { return &t }

func TestComputeHealth(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		open     int64
		deadline *time.Time
		want     HealthStatus
	}{
		{"열린 작업 없음: 마감이 지나도 Finished", 0, ptrTime(now.AddDate(0, 0, -3)), HealthFinished},
		{"마감 없음", 4, nil, HealthOnTrack},
		{"어제 마감", 1, ptrTime(now.AddDate(0, 0, -1)), HealthOverdue},
		{"오늘 마감은 At Risk", 1, ptrTime(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)), HealthAtRisk},
		{"7일 뒤 마감은 At Risk", 1, ptrTime(now.AddDate(0, 0, 7)), HealthAtRisk},
		{"8일 뒤 마감은 On Track", 1, ptrTime(now.AddDate(0, 0, 8)), HealthOnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeHealth(tt.open, tt.deadline, now))
		})
	}
}

// Overdue iff a deadline is set, it is before today and work is open.
// Finished iff no work is open.
func TestProperty_HealthClassification(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	properties.Property("overdue and finished are classified from open count and deadline", prop.ForAll(
		func(open int64, offsetDays int, hasDeadline bool) bool {
			var deadline *time.Time
			if hasDeadline {
				deadline = ptrTime(now.AddDate(0, 0, offsetDays))
			}
			got := ComputeHealth(open, deadline, now)

			wantOverdue := hasDeadline && offsetDays < 0 && open > 0
			if (got == HealthOverdue) != wantOverdue {
				return false
			}
			return (got == HealthFinished) == (open == 0)
		},
		gen.Int64Range(0, 20),
		gen.IntRange(-30, 30),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestComputeProgress(t *testing.T) {
	assert.Equal(t, 0, ComputeProgress(0, 0, 0))
	assert.Equal(t, 0, ComputeProgress(3, 0, 3), "모두 취소되면 0")
	assert.Equal(t, 67, ComputeProgress(4, 2, 1))
	assert.Equal(t, 100, ComputeProgress(2, 2, 0))
	assert.Equal(t, 33, ComputeProgress(3, 1, 0))
}

func TestProperty_ProgressBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("progress is always within [0,100] and 0 without countable tasks", prop.ForAll(
		func(done, canceled, other int64) bool {
			total := done + canceled + other
			p := ComputeProgress(total, done, canceled)
			if p < 0 || p > 100 {
				return false
			}
			if total-canceled == 0 {
				return p == 0
			}
			return true
		},
		gen.Int64Range(0, 50),
		gen.Int64Range(0, 50),
		gen.Int64Range(0, 50),
	))

	properties.TestingRun(t)
}

func TestTaskCounts(t *testing.T) {
	c := TaskCounts{ByStatus: map[TaskStatus]int64{
		TaskStatusTodo:     2,
		TaskStatusDone:     3,
		TaskStatusCanceled: 1,
	}}

	assert.Equal(t, int64(6), c.Total())
	assert.Equal(t, int64(2), c.Open())
	assert.Equal(t, 60, c.Progress())
	assert.Equal(t, HealthOnTrack, c.Health(nil, time.Now()))
}

func TestSummarizeTimeLogs(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	logs := []TimeLog{
		{StartTime: start, EndTime: ptrTime(start.Add(time.Hour))},
		{StartTime: start.Add(2 * time.Hour)},
	}

	s := SummarizeTimeLogs(logs)

	assert.Equal(t, time.Hour, s.Total)
	assert.True(t, s.InProgress)
	assert.Equal(t, "1h 0m", FormatDuration(s.Total))
}

func TestProperty_TimeLogTotal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	properties.Property("total equals the sum of closed durations", prop.ForAll(
		func(minutes []int, withOpen bool) bool {
			var logs []TimeLog
			var want time.Duration
			for _, m := range minutes {
				d := time.Duration(m) * time.Minute
				logs = append(logs, TimeLog{StartTime: start, EndTime: ptrTime(start.Add(d))})
				want += d
			}
			if withOpen {
				logs = append(logs, TimeLog{StartTime: start})
			}
			s := SummarizeTimeLogs(logs)
			return s.Total == want && s.InProgress == withOpen
		},
		gen.SliceOf(gen.IntRange(0, 600)),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h 0m", FormatDuration(0))
	assert.Equal(t, "2h 5m", FormatDuration(2*time.Hour+5*time.Minute+30*time.Second))
	assert.Equal(t, "0h 0m", FormatDuration(-time.Minute))
}

func TestAggregateWorkload(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	tasks := []Task{
		{AssigneeID: &alice, Status: TaskStatusTodo, EffortPoints: 3},
		{AssigneeID: &alice, Status: TaskStatusInProgress, EffortPoints: 2},
		{AssigneeID: &alice, Status: TaskStatusDone, EffortPoints: 40},
		{AssigneeID: &bob, Status: TaskStatusPaused, EffortPoints: 8},
		{AssigneeID: &bob, Status: TaskStatusCanceled, EffortPoints: 13},
		{Status: TaskStatusTodo, EffortPoints: 100},
	}

	got := AggregateWorkload(tasks, map[uuid.UUID]string{alice: "Alice", bob: "Bob"})

	assert.Equal(t, []WorkloadEntry{
		{AssigneeID: bob, Name: "Bob", Points: 8},
		{AssigneeID: alice, Name: "Alice", Points: 5},
	}, got)
}

func TestTaskIncompletePredecessors(t *testing.T) {
	done := &Task{Status: TaskStatusDone}
	todo := &Task{Status: TaskStatusTodo}
	canceled := &Task{Status: TaskStatusCanceled}

	task := Task{Predecessors: []*Task{done, todo, canceled}}

	assert.Equal(t, []*Task{todo, canceled}, task.IncompletePredecessors())
	assert.Empty(t, (&Task{Predecessors: []*Task{done}}).IncompletePredecessors())
}

func TestTaskStatusLabel(t *testing.T) {
	assert.Equal(t, "In Progress", TaskStatusInProgress.Label())
	assert.True(t, TaskStatusCanceled.IsTerminal())
	assert.False(t, TaskStatus("WAITING").IsValid())
}

func TestHealthStatus_WireValues(t *testing.T) {
	assert.Equal(t, HealthStatus("Finished"), HealthFinished)
	assert.Equal(t, HealthStatus("Overdue"), HealthOverdue)
	assert.Equal(t, HealthStatus("AtRisk"), HealthAtRisk)
	assert.Equal(t, HealthStatus("OnTrack"), HealthOnTrack)
}
