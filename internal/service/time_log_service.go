package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/metrics"
	"nexus-project-api/internal/policy"
	"nexus-project-api/internal/repository"
)

// TimeLogService defines the interface for time tracking
type TimeLogService interface {
	ToggleTime(ctx context.Context, userID, taskID uuid.UUID) (*dto.ToggleTimeResponse, error)
}

type timeLogServiceImpl struct {
	store   repository.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     Clock
}

// NewTimeLogService creates a new instance of TimeLogService
func NewTimeLogService(store repository.Store, m *metrics.Metrics, logger *zap.Logger) TimeLogService {
	return &timeLogServiceImpl{store: store, metrics: m, logger: logger, now: systemClock}
}

// ToggleTime stops the caller's running log on the task, or starts one.
// The open_key unique index admits a single running log per (task, user),
// so a concurrent second start fails with a conflict. A locked project
// admits toggles from the workspace owner only.
func (s *timeLogServiceImpl) ToggleTime(ctx context.Context, userID, taskID uuid.UUID) (*dto.ToggleTimeResponse, error) {
	task, sub, err := taskForMember(ctx, s.store, userID, taskID)
	if err != nil {
		return nil, err
	}
	health, _, err := projectHealth(ctx, s.store, task.Project, s.now())
	if err != nil {
		return nil, err
	}
	if d := sub.Authorize(policy.ActionInteract, policy.Resource{Health: health}); !d.Allowed() {
		return nil, forbidden(d)
	}

	var resp *dto.ToggleTimeResponse
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		now := s.now()
		open, err := tx.TimeLogs().FindOpenForUpdate(ctx, task.ID, userID)
		if err != nil {
			return err
		}

		if open != nil {
			if err := tx.TimeLogs().Close(ctx, open, now); err != nil {
				return err
			}
			logs, err := tx.TimeLogs().ListByTask(ctx, task.ID)
			if err != nil {
				return err
			}
			summary := domain.SummarizeTimeLogs(logs)
			seconds := int64(summary.Total.Seconds())
			resp = &dto.ToggleTimeResponse{
				Status:          dto.TimerStopped,
				TotalLoggedTime: domain.FormatDuration(summary.Total),
				TotalSeconds:    &seconds,
			}
			return nil
		}

		log := &domain.TimeLog{TaskID: task.ID, UserID: userID, StartTime: now}
		if err := tx.TimeLogs().Open(ctx, log); err != nil {
			return err
		}
		start := log.StartTime
		resp = &dto.ToggleTimeResponse{Status: dto.TimerStarted, StartTime: &start}
		return nil
	})
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, conflict("A timer is already running for this task")
		}
		return nil, passThrough("Failed to toggle timer", err)
	}

	s.metrics.RecordTimeLogToggle(resp.Status)
	s.logger.Info("Timer toggled",
		zap.String("task_id", task.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("status", resp.Status),
	)
	return resp, nil
}
