package service

import (
	"context"
	"errors"
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

// unassignedRoleGroup names the team directory group of members without a role
const unassignedRoleGroup = "Unassigned"

// WorkspaceService defines the interface for workspace, role and membership logic
type WorkspaceService interface {
	CreateWorkspace(ctx context.Context, userID uuid.UUID, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	GetWorkspace(ctx context.Context, userID uuid.UUID, slug string) (*dto.WorkspaceDetailResponse, error)
	ListMembers(ctx context.Context, userID uuid.UUID, slug string) ([]dto.MemberResponse, error)
	ListRoles(ctx context.Context, userID uuid.UUID, slug string) ([]dto.RoleResponse, error)
	CreateRole(ctx context.Context, userID uuid.UUID, slug string, req *dto.CreateRoleRequest) (*dto.RoleResponse, error)
	UpdateMembershipRole(ctx context.Context, userID, membershipID uuid.UUID, req *dto.UpdateMembershipRoleRequest) (*dto.MemberResponse, error)
	TeamDirectory(ctx context.Context, userID uuid.UUID, slug string) (*dto.TeamDirectoryResponse, error)
}

type workspaceServiceImpl struct {
	store   repository.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     Clock
}

// NewWorkspaceService creates a new instance of WorkspaceService
func NewWorkspaceService(store repository.Store, m *metrics.Metrics, logger *zap.Logger) WorkspaceService {
	return &workspaceServiceImpl{store: store, metrics: m, logger: logger, now: systemClock}
}

// CreateWorkspace creates the workspace, its Owner role and the owner's
// membership in one transaction
func (s *workspaceServiceImpl) CreateWorkspace(ctx context.Context, userID uuid.UUID, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validation("Name is required")
	}

	ws := &domain.Workspace{Name: name, OwnerID: userID}
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		slug, err := uniqueSlug(slugify(name), func(c string) (bool, error) {
			return tx.Workspaces().SlugExists(ctx, c)
		})
		if err != nil {
			return err
		}
		ws.Slug = slug

		if err := tx.Workspaces().Create(ctx, ws); err != nil {
			return err
		}
		role, err := tx.Roles().GetOrCreate(ctx, ws.ID, domain.RoleNameOwner, true)
		if err != nil {
			return err
		}
		return tx.Memberships().Create(ctx, &domain.Membership{
			UserID:      userID,
			WorkspaceID: ws.ID,
			RoleID:      &role.ID,
			JoinedAt:    s.now(),
		})
	})
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, conflict("A workspace with this name was just created, try again")
		}
		return nil, passThrough("Failed to create workspace", err)
	}

	s.metrics.IncrementWorkspaceCreated()
	s.logger.Info("Workspace created",
		zap.String("workspace_id", ws.ID.String()),
		zap.String("slug", ws.Slug),
		zap.String("owner_id", userID.String()),
	)

	resp := dto.NewWorkspaceResponse(ws)
	return &resp, nil
}

func (s *workspaceServiceImpl) GetWorkspace(ctx context.Context, userID uuid.UUID, slug string) (*dto.WorkspaceDetailResponse, error) {
	ws, sub, err := workspaceBySlug(ctx, s.store, userID, slug)
	if err != nil {
		return nil, err
	}

	projects, err := s.store.Projects().ListByWorkspace(ctx, ws.ID)
	if err != nil {
		return nil, internal("Failed to load projects", err)
	}
	summaries, err := summarizeProjects(ctx, s.store, projects, s.now())
	if err != nil {
		return nil, err
	}

	count, err := s.store.Memberships().CountByWorkspace(ctx, ws.ID)
	if err != nil {
		return nil, internal("Failed to count members", err)
	}

	return &dto.WorkspaceDetailResponse{
		Workspace:   dto.NewWorkspaceResponse(ws),
		IsOwner:     sub.IsOwner(),
		MemberCount: count,
		Projects:    summaries,
	}, nil
}

// summarizeProjects derives health and progress for each project in one query
func summarizeProjects(ctx context.Context, st repository.Store, projects []*domain.Project, now time.Time) ([]dto.ProjectSummary, error) {
	ids := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	counts, err := st.Projects().TaskCounts(ctx, ids)
	if err != nil {
		return nil, internal("Failed to count tasks", err)
	}

	out := make([]dto.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		c := counts[p.ID]
		out = append(out, dto.NewProjectSummary(p, c.Health(p.Deadline, now), c.Progress()))
	}
	return out, nil
}

// ListMembers is the management view of the workspace and requires ownership
func (s *workspaceServiceImpl) ListMembers(ctx context.Context, userID uuid.UUID, slug string) ([]dto.MemberResponse, error) {
	ws, sub, err := workspaceBySlug(ctx, s.store, userID, slug)
	if err != nil {
		return nil, err
	}
	if d := sub.Authorize(policy.ActionManageWorkspace, policy.Resource{}); !d.Allowed() {
		return nil, forbidden(d)
	}
	return s.members(ctx, ws.ID)
}

func (s *workspaceServiceImpl) members(ctx context.Context, workspaceID uuid.UUID) ([]dto.MemberResponse, error) {
	memberships, err := s.store.Memberships().ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, internal("Failed to load members", err)
	}
	ids := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.UserID)
	}
	users, err := userMap(ctx, s.store, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MemberResponse, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, dto.NewMemberResponse(m, users[m.UserID]))
	}
	return out, nil
}

func (s *workspaceServiceImpl) ListRoles(ctx context.Context, userID uuid.UUID, slug string) ([]dto.RoleResponse, error) {
	ws, _, err := workspaceBySlug(ctx, s.store, userID, slug)
	if err != nil {
		return nil, err
	}
	roles, err := s.store.Roles().ListByWorkspace(ctx, ws.ID)
	if err != nil {
		return nil, internal("Failed to load roles", err)
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.NewRoleResponse(r))
	}
	return out, nil
}

func (s *workspaceServiceImpl) CreateRole(ctx context.Context, userID uuid.UUID, slug string, req *dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	ws, sub, err := workspaceBySlug(ctx, s.store, userID, slug)
	if err != nil {
		return nil, err
	}
	if d := sub.Authorize(policy.ActionManageWorkspace, policy.Resource{}); !d.Allowed() {
		return nil, forbidden(d)
	}

	role := &domain.Role{
		WorkspaceID: ws.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		IsAdminRole: req.IsAdminRole,
	}
	if role.Name == "" {
		return nil, validation("Name is required")
	}
	if err := s.store.Roles().Create(ctx, role); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, conflict("A role with this name already exists")
		}
		return nil, internal("Failed to create role", err)
	}

	resp := dto.NewRoleResponse(role)
	return &resp, nil
}

// UpdateMembershipRole reassigns a member's role. Only the workspace owner
// may do it, the role must belong to the same workspace, and the owner
// keeps an admin role.
func (s *workspaceServiceImpl) UpdateMembershipRole(ctx context.Context, userID, membershipID uuid.UUID, req *dto.UpdateMembershipRoleRequest) (*dto.MemberResponse, error) {
	membership, err := s.store.Memberships().FindByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Membership")
		}
		return nil, internal("Failed to load membership", err)
	}

	ws, err := s.store.Workspaces().FindByID(ctx, membership.WorkspaceID)
	if err != nil {
		return nil, internal("Failed to load workspace", err)
	}
	sub, err := subjectIn(ctx, s.store, userID, ws)
	if err != nil {
		return nil, err
	}
	if !sub.IsMember() {
		return nil, notFound("Membership")
	}
	if d := sub.Authorize(policy.ActionManageWorkspace, policy.Resource{}); !d.Allowed() {
		return nil, forbidden(d)
	}

	role, err := s.store.Roles().FindByID(ctx, req.RoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Role")
		}
		return nil, internal("Failed to load role", err)
	}
	if role.WorkspaceID != ws.ID {
		return nil, notFound("Role")
	}
	if membership.UserID == ws.OwnerID && !role.IsAdminRole {
		return nil, validation("The workspace owner must keep an admin role")
	}

	if err := s.store.Memberships().UpdateRole(ctx, membership.ID, &role.ID); err != nil {
		return nil, internal("Failed to update role", err)
	}
	membership.RoleID = &role.ID
	membership.Role = role

	user, err := s.store.Users().FindByID(ctx, membership.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal("Failed to load user", err)
	}

	s.logger.Info("Membership role updated",
		zap.String("membership_id", membership.ID.String()),
		zap.String("role", role.Name),
	)
	resp := dto.NewMemberResponse(membership, user)
	return &resp, nil
}

// TeamDirectory groups members by role name. It needs ownership or an
// admin role; a member without a role has no access.
func (s *workspaceServiceImpl) TeamDirectory(ctx context.Context, userID uuid.UUID, slug string) (*dto.TeamDirectoryResponse, error) {
	ws, sub, err := workspaceBySlug(ctx, s.store, userID, slug)
	if err != nil {
		return nil, err
	}
	if d := sub.Authorize(policy.ActionViewTeam, policy.Resource{}); !d.Allowed() {
		return nil, forbidden(d)
	}

	members, err := s.members(ctx, ws.ID)
	if err != nil {
		return nil, err
	}

	byRole := make(map[string][]dto.MemberResponse)
	for _, m := range members {
		name := unassignedRoleGroup
		if m.Role != nil {
			name = m.Role.Name
		}
		byRole[name] = append(byRole[name], m)
	}

	names := make([]string, 0, len(byRole))
	for name := range byRole {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]dto.TeamGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, dto.TeamGroup{Role: name, Members: byRole[name]})
	}

	return &dto.TeamDirectoryResponse{Workspace: dto.NewWorkspaceResponse(ws), Groups: groups}, nil
}
