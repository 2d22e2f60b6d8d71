package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
)

// TaskFilter narrows a project's task list
type TaskFilter struct {
	Query      string     // case-insensitive match on title or description
	AssigneeID *uuid.UUID // only tasks assigned to this user
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	// FindByIDForUpdate locks the task row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error
	SlugExists(ctx context.Context, projectID uuid.UUID, slug string) (bool, error)

	FindPredecessors(ctx context.Context, taskID uuid.UUID) ([]*domain.Task, error)
	FindPredecessorsForUpdate(ctx context.Context, taskID uuid.UUID) ([]*domain.Task, error)
	PredecessorIDs(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
	ReplacePredecessors(ctx context.Context, taskID uuid.UUID, predecessorIDs []uuid.UUID) error
	// IsPredecessorOf reports whether candidate is a direct predecessor of taskID
	IsPredecessorOf(ctx context.Context, candidate, taskID uuid.UUID) (bool, error)

	ListByProject(ctx context.Context, projectID uuid.UUID, filter TaskFilter) ([]*domain.Task, error)
	ListScheduled(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
	ListOpenByAssignee(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	ListNotDoneByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]*domain.Task, error)
	Count(ctx context.Context) (int64, error)
}

type taskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepositoryImpl{db: db}
}

// Create inserts the task only; predecessors are written by ReplacePredecessors
func (r *taskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Omit("Project", "Predecessors").Create(task).Error
}

func (r *taskRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).Preload("Project.Workspace").Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepositoryImpl) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Task, error) {
	if len(ids) == 0 {
		return []*domain.Task{}, nil
	}
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves the task's own columns
func (r *taskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Omit("Project", "Predecessors").Save(task).Error
}

func (r *taskRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *taskRepositoryImpl) SlugExists(ctx context.Context, projectID uuid.UUID, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("project_id = ? AND slug = ?", projectID, slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *taskRepositoryImpl) predecessorQuery(db *gorm.DB, taskID uuid.UUID) *gorm.DB {
	return db.Where("id IN (?)",
		r.db.Table("task_predecessors").Select("predecessor_id").Where("task_id = ?", taskID)).
		Order("title ASC")
}

func (r *taskRepositoryImpl) FindPredecessors(ctx context.Context, taskID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.predecessorQuery(r.db.WithContext(ctx), taskID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepositoryImpl) FindPredecessorsForUpdate(ctx context.Context, taskID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.predecessorQuery(forUpdate(r.db.WithContext(ctx)), taskID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

type predecessorRow struct {
	TaskID        uuid.UUID
	PredecessorID uuid.UUID
}

// PredecessorIDs maps each task to its predecessor IDs
func (r *taskRepositoryImpl) PredecessorIDs(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	result := make(map[uuid.UUID][]uuid.UUID)
	if len(taskIDs) == 0 {
		return result, nil
	}
	var rows []predecessorRow
	if err := r.db.WithContext(ctx).Table("task_predecessors").
		Select("task_id, predecessor_id").
		Where("task_id IN ?", taskIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.TaskID] = append(result[row.TaskID], row.PredecessorID)
	}
	return result, nil
}

// ReplacePredecessors overwrites the predecessor set of a task
func (r *taskRepositoryImpl) ReplacePredecessors(ctx context.Context, taskID uuid.UUID, predecessorIDs []uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Exec("DELETE FROM task_predecessors WHERE task_id = ?", taskID).Error; err != nil {
		return err
	}
	if len(predecessorIDs) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(predecessorIDs))
	for _, id := range predecessorIDs {
		rows = append(rows, map[string]interface{}{"task_id": taskID, "predecessor_id": id})
	}
	return db.Table("task_predecessors").Create(&rows).Error
}

func (r *taskRepositoryImpl) IsPredecessorOf(ctx context.Context, candidate, taskID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("task_predecessors").
		Where("task_id = ? AND predecessor_id = ?", taskID, candidate).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *taskRepositoryImpl) ListByProject(ctx context.Context, projectID uuid.UUID, filter TaskFilter) ([]*domain.Task, error) {
	q := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if s := strings.TrimSpace(filter.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if filter.AssigneeID != nil {
		q = q.Where("assignee_id = ?", *filter.AssigneeID)
	}

	var tasks []*domain.Task
	if err := q.Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListScheduled returns tasks having both a start and a due date, by start date
func (r *taskRepositoryImpl) ListScheduled(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND start_date IS NOT NULL AND due_date IS NOT NULL", projectID).
		Order("start_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListOpenByAssignee returns the user's tasks that are not DONE, by due date with undated last
func (r *taskRepositoryImpl) ListOpenByAssignee(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Preload("Project").
		Where("assignee_id = ? AND status <> ?", userID, domain.TaskStatusDone).
		Order("due_date IS NULL, due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepositoryImpl) ListNotDoneByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]*domain.Task, error) {
	if len(projectIDs) == 0 {
		return []*domain.Task{}, nil
	}
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Preload("Project").
		Where("project_id IN ? AND status <> ?", projectIDs, domain.TaskStatusDone).
		Order("due_date IS NULL, due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Task{}).Count(&count).Error
	return count, err
}
