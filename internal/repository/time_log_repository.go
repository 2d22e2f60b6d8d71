package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
)

// TimeLogRepository defines the interface for time log data access
type TimeLogRepository interface {
	// Open inserts a running log; a second open log for the same pair
	// fails with a duplicate key error.
	Open(ctx context.Context, log *domain.TimeLog) error
	// FindOpenForUpdate returns the running log of (task, user) or nil, nil
	FindOpenForUpdate(ctx context.Context, taskID, userID uuid.UUID) (*domain.TimeLog, error)
	Close(ctx context.Context, log *domain.TimeLog, end time.Time) error
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.TimeLog, error)
	ListByTaskAndUser(ctx context.Context, taskID, userID uuid.UUID) ([]domain.TimeLog, error)
	CountOpen(ctx context.Context) (int64, error)
}

type timeLogRepositoryImpl struct {
	db *gorm.DB
}

// NewTimeLogRepository creates a new instance of TimeLogRepository
func NewTimeLogRepository(db *gorm.DB) TimeLogRepository {
	return &timeLogRepositoryImpl{db: db}
}

func (r *timeLogRepositoryImpl) Open(ctx context.Context, log *domain.TimeLog) error {
	key := domain.OpenKeyFor(log.TaskID, log.UserID)
	log.OpenKey = &key
	log.EndTime = nil
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *timeLogRepositoryImpl) FindOpenForUpdate(ctx context.Context, taskID, userID uuid.UUID) (*domain.TimeLog, error) {
	var log domain.TimeLog
	err := forUpdate(r.db.WithContext(ctx)).
		Where("task_id = ? AND user_id = ? AND end_time IS NULL", taskID, userID).
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

// Close stamps the end time and releases the open key
func (r *timeLogRepositoryImpl) Close(ctx context.Context, log *domain.TimeLog, end time.Time) error {
	if err := r.db.WithContext(ctx).Model(&domain.TimeLog{}).
		Where("id = ?", log.ID).
		Updates(map[string]interface{}{"end_time": end, "open_key": nil}).Error; err != nil {
		return err
	}
	log.EndTime = &end
	log.OpenKey = nil
	return nil
}

func (r *timeLogRepositoryImpl) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.TimeLog, error) {
	var logs []domain.TimeLog
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("start_time ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *timeLogRepositoryImpl) ListByTaskAndUser(ctx context.Context, taskID, userID uuid.UUID) ([]domain.TimeLog, error) {
	var logs []domain.TimeLog
	if err := r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Order("start_time ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *timeLogRepositoryImpl) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.TimeLog{}).Where("end_time IS NULL").Count(&count).Error
	return count, err
}
