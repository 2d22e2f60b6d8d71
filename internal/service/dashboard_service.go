package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/repository"
)

// DashboardService builds the landing view of a user
type DashboardService interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error)
}

type dashboardServiceImpl struct {
	store  repository.Store
	logger *zap.Logger
	now    Clock
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(store repository.Store, logger *zap.Logger) DashboardService {
	return &dashboardServiceImpl{store: store, logger: logger, now: systemClock}
}

// GetDashboard lists the caller's workspaces and open tasks. Holders of a
// PMO role also see the overdue and at-risk tasks of the workspaces they own.
func (s *dashboardServiceImpl) GetDashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	owned, err := s.store.Workspaces().FindOwnedBy(ctx, userID)
	if err != nil {
		return nil, internal("Failed to load workspaces", err)
	}
	shared, err := s.store.Workspaces().FindSharedWith(ctx, userID)
	if err != nil {
		return nil, internal("Failed to load workspaces", err)
	}
	myTasks, err := s.store.Tasks().ListOpenByAssignee(ctx, userID)
	if err != nil {
		return nil, internal("Failed to load tasks", err)
	}
	isPMO, err := s.store.Memberships().HasRoleNamed(ctx, userID, domain.RoleNamePMO)
	if err != nil {
		return nil, internal("Failed to load roles", err)
	}

	var overdue, atRisk []*domain.Task
	if isPMO {
		ids := make([]uuid.UUID, 0, len(owned))
		for _, ws := range owned {
			ids = append(ids, ws.ID)
		}
		projects, err := s.store.Projects().ListByWorkspaceIDs(ctx, ids)
		if err != nil {
			return nil, internal("Failed to load projects", err)
		}
		projectIDs := make([]uuid.UUID, 0, len(projects))
		for _, p := range projects {
			projectIDs = append(projectIDs, p.ID)
		}
		tasks, err := s.store.Tasks().ListNotDoneByProjects(ctx, projectIDs)
		if err != nil {
			return nil, internal("Failed to load tasks", err)
		}
		overdue, atRisk = classifyDueDates(tasks, s.now())
	}

	all := append(append(append([]*domain.Task{}, myTasks...), overdue...), atRisk...)
	users, err := userMap(ctx, s.store, assigneeIDs(all))
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		OwnedWorkspaces:  workspaceResponses(owned),
		SharedWorkspaces: workspaceResponses(shared),
		MyTasks:          taskSummaries(myTasks, users),
		IsPMO:            isPMO,
	}
	if isPMO {
		resp.OverdueTasks = taskSummaries(overdue, users)
		resp.AtRiskTasks = taskSummaries(atRisk, users)
	}
	return resp, nil
}

func workspaceResponses(list []*domain.Workspace) []dto.WorkspaceResponse {
	out := make([]dto.WorkspaceResponse, 0, len(list))
	for _, ws := range list {
		out = append(out, dto.NewWorkspaceResponse(ws))
	}
	return out
}
