package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/metrics"
	"nexus-project-api/internal/policy"
	"nexus-project-api/internal/repository"
)

const (
	recentActivityLimit  = 5
	unassignedGanttLabel = "Unassigned"
	myTasksFilter        = "my_tasks"
)

// ProjectService defines the interface for project business logic
type ProjectService interface {
	CreateProject(ctx context.Context, userID uuid.UUID, workspaceSlug string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetProjectDetail(ctx context.Context, userID uuid.UUID, slug string, query dto.ProjectDetailQuery) (*dto.ProjectDetailResponse, error)
	ListActivities(ctx context.Context, userID uuid.UUID, slug string, page, limit int) (*dto.PaginatedActivitiesResponse, error)
	GetGanttData(ctx context.Context, userID uuid.UUID, slug string) ([]dto.GanttTask, error)
	GetReports(ctx context.Context, userID uuid.UUID, slug string) (*dto.ProjectReportsResponse, error)
}

// projectServiceImpl is the implementation of ProjectService
type projectServiceImpl struct {
	store   repository.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     Clock
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(store repository.Store, m *metrics.Metrics, logger *zap.Logger) ProjectService {
	return &projectServiceImpl{store: store, metrics: m, logger: logger, now: systemClock}
}

// projectForMember resolves a project by slug. Projects of workspaces the
// caller does not belong to are reported as not found.
func projectForMember(ctx context.Context, st repository.Store, userID uuid.UUID, slug string) (*domain.Project, policy.Subject, error) {
	project, err := st.Projects().FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policy.Subject{}, notFound("Project")
		}
		return nil, policy.Subject{}, internal("Failed to load project", err)
	}
	sub, err := subjectIn(ctx, st, userID, project.Workspace)
	if err != nil {
		return nil, policy.Subject{}, err
	}
	if !sub.IsMember() {
		return nil, policy.Subject{}, notFound("Project")
	}
	return project, sub, nil
}

// isWorkspaceMember treats the owner as a member even without a membership row
func isWorkspaceMember(ctx context.Context, st repository.Store, userID uuid.UUID, ws *domain.Workspace) (bool, error) {
	if ws.IsOwner(userID) {
		return true, nil
	}
	ok, err := st.Memberships().IsMember(ctx, userID, ws.ID)
	if err != nil {
		return false, internal("Failed to check membership", err)
	}
	return ok, nil
}

// CreateProject creates a new project in the workspace. Only the owner may do it.
func (s *projectServiceImpl) CreateProject(ctx context.Context, userID uuid.UUID, workspaceSlug string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	ws, sub, err := workspaceBySlug(ctx, s.store, userID, workspaceSlug)
	if err != nil {
		return nil, err
	}
	if d := sub.Authorize(policy.ActionManageWorkspace, policy.Resource{}); !d.Allowed() {
		return nil, forbidden(d)
	}

	deadline, err := parseDate("deadline", req.Deadline)
	if err != nil {
		return nil, err
	}

	status := domain.ProjectStatusPlanning
	if req.Status != "" {
		status = domain.ProjectStatus(req.Status)
		if !status.IsValid() {
			return nil, validation(fmt.Sprintf("Invalid project status: %s", req.Status))
		}
	}

	// Validate manager membership
	if req.ManagerID != nil {
		ok, err := isWorkspaceMember(ctx, s.store, *req.ManagerID, ws)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, validation("Manager must be a member of the workspace")
		}
	}

	name := strings.TrimSpace(req.Name)
	slug, err := uniqueSlug(slugify(name), func(c string) (bool, error) {
		return s.store.Projects().SlugExists(ctx, c)
	})
	if err != nil {
		return nil, internal("Failed to generate slug", err)
	}

	project := &domain.Project{
		WorkspaceID: ws.ID,
		Name:        name,
		Description: req.Description,
		Slug:        slug,
		Status:      status,
		Budget:      req.Budget,
		Deadline:    deadline,
		ManagerID:   req.ManagerID,
	}
	if err := s.store.Projects().Create(ctx, project); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, conflict("A project with this name was just created, try again")
		}
		return nil, internal("Failed to create project", err)
	}

	s.metrics.IncrementProjectCreated()
	s.logger.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("workspace_id", ws.ID.String()),
		zap.String("slug", project.Slug),
	)

	// A new project has no tasks yet
	resp := dto.NewProjectResponse(project, domain.HealthFinished, 0)
	return &resp, nil
}

// GetProjectDetail returns the board: tasks grouped by status, the status
// chart and the latest activities
func (s *projectServiceImpl) GetProjectDetail(ctx context.Context, userID uuid.UUID, slug string, query dto.ProjectDetailQuery) (*dto.ProjectDetailResponse, error) {
	project, sub, err := projectForMember(ctx, s.store, userID, slug)
	if err != nil {
		return nil, err
	}

	health, progress, err := projectHealth(ctx, s.store, project, s.now())
	if err != nil {
		return nil, err
	}

	filter := repository.TaskFilter{Query: query.Query}
	if query.FilterBy == myTasksFilter {
		filter.AssigneeID = &userID
	}
	tasks, err := s.store.Tasks().ListByProject(ctx, project.ID, filter)
	if err != nil {
		return nil, internal("Failed to load tasks", err)
	}

	activities, _, err := s.store.Activities().ListByProject(ctx, project.ID, repository.Page{Limit: recentActivityLimit})
	if err != nil {
		return nil, internal("Failed to load activities", err)
	}

	ids := assigneeIDs(tasks)
	for _, a := range activities {
		ids = append(ids, a.ActorID)
	}
	users, err := userMap(ctx, s.store, ids)
	if err != nil {
		return nil, err
	}

	groups, chart := groupByStatus(tasks, users)

	return &dto.ProjectDetailResponse{
		Project:          dto.NewProjectResponse(project, health, progress),
		IsLocked:         !policy.CanInteract(health, sub.IsOwner()),
		ActiveFilter:     query.FilterBy,
		SearchQuery:      query.Query,
		Groups:           groups,
		Chart:            chart,
		RecentActivities: activityResponses(activities, users),
	}, nil
}

// groupByStatus returns one column per status and the chart of non-empty ones
func groupByStatus(tasks []*domain.Task, users map[uuid.UUID]*domain.User) ([]dto.TaskGroup, dto.StatusChart) {
	byStatus := make(map[domain.TaskStatus][]*domain.Task)
	for _, t := range tasks {
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}

	groups := make([]dto.TaskGroup, 0, len(domain.TaskStatuses))
	chart := dto.StatusChart{Labels: []string{}, Data: []int{}}
	for _, st := range domain.TaskStatuses {
		group := byStatus[st]
		groups = append(groups, dto.TaskGroup{Status: st, Label: st.Label(), Tasks: taskSummaries(group, users)})
		if len(group) > 0 {
			chart.Labels = append(chart.Labels, st.Label())
			chart.Data = append(chart.Data, len(group))
		}
	}
	return groups, chart
}

func activityResponses(activities []*domain.Activity, users map[uuid.UUID]*domain.User) []dto.ActivityResponse {
	out := make([]dto.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, dto.NewActivityResponse(a, users[a.ActorID]))
	}
	return out
}

func (s *projectServiceImpl) ListActivities(ctx context.Context, userID uuid.UUID, slug string, page, limit int) (*dto.PaginatedActivitiesResponse, error) {
	project, _, err := projectForMember(ctx, s.store, userID, slug)
	if err != nil {
		return nil, err
	}

	p := repository.NewPage(page, limit)
	activities, total, err := s.store.Activities().ListByProject(ctx, project.ID, p)
	if err != nil {
		return nil, internal("Failed to load activities", err)
	}

	ids := make([]uuid.UUID, 0, len(activities))
	for _, a := range activities {
		ids = append(ids, a.ActorID)
	}
	users, err := userMap(ctx, s.store, ids)
	if err != nil {
		return nil, err
	}

	return &dto.PaginatedActivitiesResponse{
		Activities: activityResponses(activities, users),
		Total:      total,
		Page:       p.Offset/p.Limit + 1,
		Limit:      p.Limit,
	}, nil
}

func ganttID(id uuid.UUID) string {
	return "task_" + id.String()
}

// GetGanttData returns one bar per task having both a start and a due date
func (s *projectServiceImpl) GetGanttData(ctx context.Context, userID uuid.UUID, slug string) ([]dto.GanttTask, error) {
	project, _, err := projectForMember(ctx, s.store, userID, slug)
	if err != nil {
		return nil, err
	}

	tasks, err := s.store.Tasks().ListScheduled(ctx, project.ID)
	if err != nil {
		return nil, internal("Failed to load tasks", err)
	}

	ids := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	predecessors, err := s.store.Tasks().PredecessorIDs(ctx, ids)
	if err != nil {
		return nil, internal("Failed to load dependencies", err)
	}
	users, err := userMap(ctx, s.store, assigneeIDs(tasks))
	if err != nil {
		return nil, err
	}

	out := make([]dto.GanttTask, 0, len(tasks))
	for _, t := range tasks {
		deps := make([]string, 0, len(predecessors[t.ID]))
		for _, id := range predecessors[t.ID] {
			deps = append(deps, ganttID(id))
		}

		progress := 0
		if t.Status == domain.TaskStatusDone {
			progress = 100
		}

		assignee := unassignedGanttLabel
		if t.AssigneeID != nil {
			assignee = dto.NewUserSummary(*t.AssigneeID, users[*t.AssigneeID]).Name
			if assignee == "" {
				assignee = t.AssigneeID.String()
			}
		}

		out = append(out, dto.GanttTask{
			ID:           ganttID(t.ID),
			Name:         t.Title,
			Start:        t.StartDate.UTC().Format(dto.DateLayout),
			End:          t.DueDate.UTC().Format(dto.DateLayout),
			Progress:     progress,
			Dependencies: strings.Join(deps, ","),
			CustomClass:  "bar-" + strings.ToLower(string(t.Status)),
			Assignee:     assignee,
		})
	}
	return out, nil
}

// GetReports lists overdue and at-risk tasks and the open workload per assignee
func (s *projectServiceImpl) GetReports(ctx context.Context, userID uuid.UUID, slug string) (*dto.ProjectReportsResponse, error) {
	project, _, err := projectForMember(ctx, s.store, userID, slug)
	if err != nil {
		return nil, err
	}

	now := s.now()
	health, progress, err := projectHealth(ctx, s.store, project, now)
	if err != nil {
		return nil, err
	}

	tasks, err := s.store.Tasks().ListByProject(ctx, project.ID, repository.TaskFilter{})
	if err != nil {
		return nil, internal("Failed to load tasks", err)
	}
	users, err := userMap(ctx, s.store, assigneeIDs(tasks))
	if err != nil {
		return nil, err
	}

	overdue, atRisk := classifyDueDates(tasks, now)

	return &dto.ProjectReportsResponse{
		Project:      dto.NewProjectSummary(project, health, progress),
		OverdueTasks: taskSummaries(overdue, users),
		AtRiskTasks:  taskSummaries(atRisk, users),
		Workload:     workloadReport(tasks, users),
	}, nil
}

// classifyDueDates splits tasks that are not DONE into overdue
// (due before today) and at risk (due within the next seven days),
// each ordered by due date
func classifyDueDates(tasks []*domain.Task, now time.Time) (overdue, atRisk []*domain.Task) {
	today := domain.DateOf(now)
	horizon := today.AddDate(0, 0, domain.AtRiskWindowDays)

	for _, t := range tasks {
		if t.DueDate == nil || t.Status == domain.TaskStatusDone {
			continue
		}
		due := domain.DateOf(*t.DueDate)
		switch {
		case due.Before(today):
			overdue = append(overdue, t)
		case !due.After(horizon):
			atRisk = append(atRisk, t)
		}
	}

	byDue := func(list []*domain.Task) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].DueDate.Before(*list[j].DueDate) })
	}
	byDue(overdue)
	byDue(atRisk)
	return overdue, atRisk
}

func workloadReport(tasks []*domain.Task, users map[uuid.UUID]*domain.User) dto.WorkloadResponse {
	values := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		values = append(values, *t)
	}
	names := make(map[uuid.UUID]string, len(users))
	for id, u := range users {
		names[id] = u.FullName()
	}

	entries := domain.AggregateWorkload(values, names)
	resp := dto.WorkloadResponse{
		Labels:  make([]string, 0, len(entries)),
		Values:  make([]int, 0, len(entries)),
		Entries: make([]dto.WorkloadEntry, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Labels = append(resp.Labels, e.Name)
		resp.Values = append(resp.Values, e.Points)
		resp.Entries = append(resp.Entries, dto.WorkloadEntry{
			Assignee: dto.NewUserSummary(e.AssigneeID, users[e.AssigneeID]),
			Points:   e.Points,
		})
	}
	return resp
}
