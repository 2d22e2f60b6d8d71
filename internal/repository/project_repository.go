package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Project, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Project, error)
	ListByWorkspaceIDs(ctx context.Context, workspaceIDs []uuid.UUID) ([]*domain.Project, error)
	TaskCounts(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID]domain.TaskCounts, error)
	Count(ctx context.Context) (int64, error)
}

type projectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

func (r *projectRepositoryImpl) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Omit("Workspace").Create(project).Error
}

func (r *projectRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).Preload("Workspace").Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindBySlug loads the project together with its workspace
func (r *projectRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).Preload("Workspace").Where("slug = ?", slug).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepositoryImpl) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Project{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *projectRepositoryImpl) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.Project, error) {
	return r.ListByWorkspaceIDs(ctx, []uuid.UUID{workspaceID})
}

func (r *projectRepositoryImpl) ListByWorkspaceIDs(ctx context.Context, workspaceIDs []uuid.UUID) ([]*domain.Project, error) {
	if len(workspaceIDs) == 0 {
		return []*domain.Project{}, nil
	}
	var projects []*domain.Project
	if err := r.db.WithContext(ctx).
		Preload("Workspace").
		Where("workspace_id IN ?", workspaceIDs).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

type statusCountRow struct {
	ProjectID uuid.UUID
	Status    domain.TaskStatus
	Count     int64
}

// TaskCounts returns the per-status task totals of each project.
// Projects without tasks get an empty TaskCounts.
func (r *projectRepositoryImpl) TaskCounts(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID]domain.TaskCounts, error) {
	result := make(map[uuid.UUID]domain.TaskCounts, len(projectIDs))
	for _, id := range projectIDs {
		result[id] = domain.TaskCounts{ByStatus: map[domain.TaskStatus]int64{}}
	}
	if len(projectIDs) == 0 {
		return result, nil
	}

	var rows []statusCountRow
	if err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Select("project_id, status, COUNT(*) AS count").
		Where("project_id IN ?", projectIDs).
		Group("project_id, status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ProjectID].ByStatus[row.Status] = row.Count
	}
	return result, nil
}

func (r *projectRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).Count(&count).Error
	return count, err
}
