package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
)

func seedProject(t *testing.T, db *gorm.DB) *domain.Project {
	t.Helper()
	ws := &domain.Workspace{Name: "Acme", Slug: "acme-" + uuid.NewString()[:8], OwnerID: uuid.New()}
	require.NoError(t, db.Create(ws).Error)
	p := &domain.Project{WorkspaceID: ws.ID, Name: "Launch", Slug: "launch-" + uuid.NewString()[:8], Status: domain.ProjectStatusActive}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedTask(t *testing.T, repo TaskRepository, p *domain.Project, title string, status domain.TaskStatus) *domain.Task {
	t.Helper()
	task := &domain.Task{ProjectID: p.ID, Title: title, Slug: title, Status: status, Priority: domain.TaskPriorityMedium}
	require.NoError(t, repo.Create(context.Background(), task))
	return task
}

func TestTaskRepository_Predecessors(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	p := seedProject(t, db)

	design := seedTask(t, repo, p, "design", domain.TaskStatusDone)
	review := seedTask(t, repo, p, "review", domain.TaskStatusTodo)
	build := seedTask(t, repo, p, "build", domain.TaskStatusTodo)

	require.NoError(t, repo.ReplacePredecessors(ctx, build.ID, []uuid.UUID{review.ID, design.ID}))

	preds, err := repo.FindPredecessors(ctx, build.ID)
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Equal(t, "design", preds[0].Title, "ordered by title")
	assert.Equal(t, "review", preds[1].Title)

	ok, err := repo.IsPredecessorOf(ctx, design.ID, build.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.IsPredecessorOf(ctx, build.ID, design.ID)
	require.NoError(t, err)
	assert.False(t, ok, "the relation is directed")

	ids, err := repo.PredecessorIDs(ctx, []uuid.UUID{build.ID, design.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{design.ID, review.ID}, ids[build.ID])
	assert.Empty(t, ids[design.ID])

	// Replacing with an empty set clears the edges
	require.NoError(t, repo.ReplacePredecessors(ctx, build.ID, nil))
	preds, err = repo.FindPredecessors(ctx, build.ID)
	require.NoError(t, err)
	assert.Empty(t, preds)
}

func TestTaskRepository_SlugUniquePerProject(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	p1 := seedProject(t, db)
	p2 := seedProject(t, db)

	seedTask(t, repo, p1, "build", domain.TaskStatusTodo)
	seedTask(t, repo, p2, "build", domain.TaskStatusTodo)

	exists, err := repo.SlugExists(ctx, p1.ID, "build")
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.Create(ctx, &domain.Task{ProjectID: p1.ID, Title: "Build", Slug: "build"})
	assert.True(t, IsDuplicateKey(err))
}

func TestTaskRepository_ListByProjectFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	p := seedProject(t, db)

	bob := uuid.New()
	login := seedTask(t, repo, p, "fix-login", domain.TaskStatusTodo)
	login.Title = "Fix LOGIN page"
	login.AssigneeID = &bob
	require.NoError(t, repo.Update(ctx, login))
	seedTask(t, repo, p, "docs", domain.TaskStatusTodo)

	tests := []struct {
		name   string
		filter TaskFilter
		want   int
	}{
		{"no filter", TaskFilter{}, 2},
		{"case-insensitive query", TaskFilter{Query: "login"}, 1},
		{"assignee", TaskFilter{AssigneeID: &bob}, 1},
		{"no match", TaskFilter{Query: "payroll"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := repo.ListByProject(ctx, p.ID, tt.filter)
			require.NoError(t, err)
			assert.Len(t, tasks, tt.want)
		})
	}
}

func TestTaskRepository_ListOpenByAssignee(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	p := seedProject(t, db)

	bob := uuid.New()
	due := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	assign := func(task *domain.Task, dueDate *time.Time) {
		task.AssigneeID = &bob
		task.DueDate = dueDate
		require.NoError(t, repo.Update(ctx, task))
	}
	assign(seedTask(t, repo, p, "undated", domain.TaskStatusTodo), nil)
	assign(seedTask(t, repo, p, "dated", domain.TaskStatusInProgress), &due)
	assign(seedTask(t, repo, p, "finished", domain.TaskStatusDone), &due)

	tasks, err := repo.ListOpenByAssignee(ctx, bob)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "dated", tasks[0].Slug)
	assert.Equal(t, "undated", tasks[1].Slug, "undated tasks sort last")
	require.NotNil(t, tasks[0].Project)
	assert.Equal(t, p.ID, tasks[0].Project.ID)
}
