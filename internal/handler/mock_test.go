package handler

import (
	"context"

	"github.com/google/uuid"

	"nexus-project-api/internal/dto"
)

// MockUserService is a mock implementation of service.UserService
type MockUserService struct {
	GetMeFunc    func(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpsertMeFunc func(ctx context.Context, userID uuid.UUID, req *dto.UpsertUserRequest) (*dto.UserResponse, error)
}

func (m *MockUserService) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	if m.GetMeFunc != nil {
		return m.GetMeFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockUserService) UpsertMe(ctx context.Context, userID uuid.UUID, req *dto.UpsertUserRequest) (*dto.UserResponse, error) {
	if m.UpsertMeFunc != nil {
		return m.UpsertMeFunc(ctx, userID, req)
	}
	return nil, nil
}

// MockWorkspaceService is a mock implementation of service.WorkspaceService
type MockWorkspaceService struct {
	CreateWorkspaceFunc      func(ctx context.Context, userID uuid.UUID, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	GetWorkspaceFunc         func(ctx context.Context, userID uuid.UUID, slug string) (*dto.WorkspaceDetailResponse, error)
	ListMembersFunc          func(ctx context.Context, userID uuid.UUID, slug string) ([]dto.MemberResponse, error)
	ListRolesFunc            func(ctx context.Context, userID uuid.UUID, slug string) ([]dto.RoleResponse, error)
	CreateRoleFunc           func(ctx context.Context, userID uuid.UUID, slug string, req *dto.CreateRoleRequest) (*dto.RoleResponse, error)
	UpdateMembershipRoleFunc func(ctx context.Context, userID, membershipID uuid.UUID, req *dto.UpdateMembershipRoleRequest) (*dto.MemberResponse, error)
	TeamDirectoryFunc        func(ctx context.Context, userID uuid.UUID, slug string) (*dto.TeamDirectoryResponse, error)
}

func (m *MockWorkspaceService) CreateWorkspace(ctx context.Context, userID uuid.UUID, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	if m.CreateWorkspaceFunc != nil {
		return m.CreateWorkspaceFunc(ctx, userID, req)
	}
	return nil, nil
}

func (m *MockWorkspaceService) GetWorkspace(ctx context.Context, userID uuid.UUID, slug string) (*dto.WorkspaceDetailResponse, error) {
	if m.GetWorkspaceFunc != nil {
		return m.GetWorkspaceFunc(ctx, userID, slug)
	}
	return nil, nil
}

func (m *MockWorkspaceService) ListMembers(ctx context.Context, userID uuid.UUID, slug string) ([]dto.MemberResponse, error) {
	if m.ListMembersFunc != nil {
		return m.ListMembersFunc(ctx, userID, slug)
	}
	return nil, nil
}

func (m *MockWorkspaceService) ListRoles(ctx context.Context, userID uuid.UUID, slug string) ([]dto.RoleResponse, error) {
	if m.ListRolesFunc != nil {
		return m.ListRolesFunc(ctx, userID, slug)
	}
	return nil, nil
}

func (m *MockWorkspaceService) CreateRole(ctx context.Context, userID uuid.UUID, slug string, req *dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if m.CreateRoleFunc != nil {
		return m.CreateRoleFunc(ctx, userID, slug, req)
	}
	return nil, nil
}

func (m *MockWorkspaceService) UpdateMembershipRole(ctx context.Context, userID, membershipID uuid.UUID, req *dto.UpdateMembershipRoleRequest) (*dto.MemberResponse, error) {
	if m.UpdateMembershipRoleFunc != nil {
		return m.UpdateMembershipRoleFunc(ctx, userID, membershipID, req)
	}
	return nil, nil
}

func (m *MockWorkspaceService) TeamDirectory(ctx context.Context, userID uuid.UUID, slug string) (*dto.TeamDirectoryResponse, error) {
	if m.TeamDirectoryFunc != nil {
		return m.TeamDirectoryFunc(ctx, userID, slug)
	}
	return nil, nil
}

// MockInvitationService is a mock implementation of service.InvitationService
type MockInvitationService struct {
	SendInvitationFunc   func(ctx context.Context, userID uuid.UUID, slug string, req *dto.SendInvitationRequest) (*dto.InvitationResponse, error)
	AcceptInvitationFunc func(ctx context.Context, userID uuid.UUID, token string) (*dto.AcceptInvitationResponse, error)
}

func (m *MockInvitationService) SendInvitation(ctx context.Context, userID uuid.UUID, slug string, req *dto.SendInvitationRequest) (*dto.InvitationResponse, error) {
	if m.SendInvitationFunc != nil {
		return m.SendInvitationFunc(ctx, userID, slug, req)
	}
	return nil, nil
}

func (m *MockInvitationService) AcceptInvitation(ctx context.Context, userID uuid.UUID, token string) (*dto.AcceptInvitationResponse, error) {
	if m.AcceptInvitationFunc != nil {
		return m.AcceptInvitationFunc(ctx, userID, token)
	}
	return nil, nil
}

// MockCustomFieldService is a mock implementation of service.CustomFieldService
type MockCustomFieldService struct {
	CreateCustomFieldFunc func(ctx context.Context, userID uuid.UUID, slug string, req *dto.CreateCustomFieldRequest) (*dto.CustomFieldResponse, error)
	ListCustomFieldsFunc  func(ctx context.Context, userID uuid.UUID, slug string) ([]dto.CustomFieldResponse, error)
}

func (m *MockCustomFieldService) CreateCustomField(ctx context.Context, userID uuid.UUID, slug string, req *dto.CreateCustomFieldRequest) (*dto.CustomFieldResponse, error) {
	if m.CreateCustomFieldFunc != nil {
		return m.CreateCustomFieldFunc(ctx, userID, slug, req)
	}
	return nil, nil
}

func (m *MockCustomFieldService) ListCustomFields(ctx context.Context, userID uuid.UUID, slug string) ([]dto.CustomFieldResponse, error) {
	if m.ListCustomFieldsFunc != nil {
		return m.ListCustomFieldsFunc(ctx, userID, slug)
	}
	return nil, nil
}

// MockProjectService is a mock implementation of service.ProjectService
type MockProjectService struct {
	CreateProjectFunc    func(ctx context.Context, userID uuid.UUID, workspaceSlug string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetProjectDetailFunc func(ctx context.Context, userID uuid.UUID, slug string, query dto.ProjectDetailQuery) (*dto.ProjectDetailResponse, error)
	ListActivitiesFunc   func(ctx context.Context, userID uuid.UUID, slug string, page, limit int) (*dto.PaginatedActivitiesResponse, error)
	GetGanttDataFunc     func(ctx context.Context, userID uuid.UUID, slug string) ([]dto.GanttTask, error)
	GetReportsFunc       func(ctx context.Context, userID uuid.UUID, slug string) (*dto.ProjectReportsResponse, error)
}

func (m *MockProjectService) CreateProject(ctx context.Context, userID uuid.UUID, workspaceSlug string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if m.CreateProjectFunc != nil {
		return m.CreateProjectFunc(ctx, userID, workspaceSlug, req)
	}
	return nil, nil
}

func (m *MockProjectService) GetProjectDetail(ctx context.Context, userID uuid.UUID, slug string, query dto.ProjectDetailQuery) (*dto.ProjectDetailResponse, error) {
	if m.GetProjectDetailFunc != nil {
		return m.GetProjectDetailFunc(ctx, userID, slug, query)
	}
	return nil, nil
}

func (m *MockProjectService) ListActivities(ctx context.Context, userID uuid.UUID, slug string, page, limit int) (*dto.PaginatedActivitiesResponse, error) {
	if m.ListActivitiesFunc != nil {
		return m.ListActivitiesFunc(ctx, userID, slug, page, limit)
	}
	return nil, nil
}

func (m *MockProjectService) GetGanttData(ctx context.Context, userID uuid.UUID, slug string) ([]dto.GanttTask, error) {
	if m.GetGanttDataFunc != nil {
		return m.GetGanttDataFunc(ctx, userID, slug)
	}
	return nil, nil
}

func (m *MockProjectService) GetReports(ctx context.Context, userID uuid.UUID, slug string) (*dto.ProjectReportsResponse, error) {
	if m.GetReportsFunc != nil {
		return m.GetReportsFunc(ctx, userID, slug)
	}
	return nil, nil
}

// MockTaskService is a mock implementation of service.TaskService
type MockTaskService struct {
	CreateTaskFunc       func(ctx context.Context, userID uuid.UUID, projectSlug string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetTaskDetailFunc    func(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskDetailResponse, error)
	UpdateTaskFunc       func(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	UpdateTaskStatusFunc func(ctx context.Context, userID uuid.UUID, req *dto.UpdateTaskStatusRequest) error
}

func (m *MockTaskService) CreateTask(ctx context.Context, userID uuid.UUID, projectSlug string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, userID, projectSlug, req)
	}
	return nil, nil
}

func (m *MockTaskService) GetTaskDetail(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskDetailResponse, error) {
	if m.GetTaskDetailFunc != nil {
		return m.GetTaskDetailFunc(ctx, userID, taskID)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	if m.UpdateTaskFunc != nil {
		return m.UpdateTaskFunc(ctx, userID, taskID, req)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateTaskStatus(ctx context.Context, userID uuid.UUID, req *dto.UpdateTaskStatusRequest) error {
	if m.UpdateTaskStatusFunc != nil {
		return m.UpdateTaskStatusFunc(ctx, userID, req)
	}
	return nil
}

// MockCommentService is a mock implementation of service.CommentService
type MockCommentService struct {
	AddCommentFunc        func(ctx context.Context, userID, taskID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CreateCommentResponse, error)
	ConfirmAttachmentFunc func(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.AttachmentResponse, error)
}

func (m *MockCommentService) AddComment(ctx context.Context, userID, taskID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CreateCommentResponse, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, userID, taskID, req)
	}
	return nil, nil
}

func (m *MockCommentService) ConfirmAttachment(ctx context.Context, userID, attachmentID uuid.UUID) (*dto.AttachmentResponse, error) {
	if m.ConfirmAttachmentFunc != nil {
		return m.ConfirmAttachmentFunc(ctx, userID, attachmentID)
	}
	return nil, nil
}

// MockTimeLogService is a mock implementation of service.TimeLogService
type MockTimeLogService struct {
	ToggleTimeFunc func(ctx context.Context, userID, taskID uuid.UUID) (*dto.ToggleTimeResponse, error)
}

func (m *MockTimeLogService) ToggleTime(ctx context.Context, userID, taskID uuid.UUID) (*dto.ToggleTimeResponse, error) {
	if m.ToggleTimeFunc != nil {
		return m.ToggleTimeFunc(ctx, userID, taskID)
	}
	return nil, nil
}

// MockNotificationService is a mock implementation of service.NotificationService
type MockNotificationService struct {
	ListNotificationsFunc func(ctx context.Context, userID uuid.UUID, page int) (*dto.PaginatedNotificationsResponse, error)
	UnreadCountFunc       func(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, error)
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, page int) (*dto.PaginatedNotificationsResponse, error) {
	if m.ListNotificationsFunc != nil {
		return m.ListNotificationsFunc(ctx, userID, page)
	}
	return nil, nil
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, error) {
	if m.UnreadCountFunc != nil {
		return m.UnreadCountFunc(ctx, userID)
	}
	return nil, nil
}

// MockDashboardService is a mock implementation of service.DashboardService
type MockDashboardService struct {
	GetDashboardFunc func(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error)
}

func (m *MockDashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	if m.GetDashboardFunc != nil {
		return m.GetDashboardFunc(ctx, userID)
	}
	return nil, nil
}
