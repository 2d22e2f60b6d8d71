package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
)

// ActivityRepository defines the interface for the append-only activity log
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	ListByProject(ctx context.Context, projectID uuid.UUID, page Page) ([]*domain.Activity, int64, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page Page) ([]*domain.Activity, int64, error)
}

type activityRepositoryImpl struct {
	db *gorm.DB
}

// NewActivityRepository creates a new instance of ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

func (r *activityRepositoryImpl) Create(ctx context.Context, activity *domain.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepositoryImpl) list(ctx context.Context, where string, id uuid.UUID, page Page) ([]*domain.Activity, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Activity{}).Where(where, id).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []*domain.Activity
	if err := r.db.WithContext(ctx).
		Where(where, id).
		Order("created_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&activities).Error; err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

// ListByProject returns a project's activities, newest first
func (r *activityRepositoryImpl) ListByProject(ctx context.Context, projectID uuid.UUID, page Page) ([]*domain.Activity, int64, error) {
	return r.list(ctx, "project_id = ?", projectID, page)
}

// ListByWorkspace returns every activity of a workspace, newest first
func (r *activityRepositoryImpl) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page Page) ([]*domain.Activity, int64, error) {
	return r.list(ctx, "workspace_id = ?", workspaceID, page)
}
