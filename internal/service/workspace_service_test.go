package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/response"
)

func (f *fixture) workspaceService() *workspaceServiceImpl {
	return &workspaceServiceImpl{store: f.store, metrics: f.metrics, logger: f.logger, now: fixedClock}
}

func TestWorkspaceService_CreateWorkspace(t *testing.T) {
	f := newFixture(t)
	alice := f.user("alice")
	svc := f.workspaceService()
	ctx := context.Background()

	first, err := svc.CreateWorkspace(ctx, alice.ID, &dto.CreateWorkspaceRequest{Name: "  Acme Team "})
	require.NoError(t, err)
	assert.Equal(t, "Acme Team", first.Name)
	assert.Equal(t, "acme-team", first.Slug)
	assert.Equal(t, alice.ID, first.OwnerID)

	second, err := svc.CreateWorkspace(ctx, alice.ID, &dto.CreateWorkspaceRequest{Name: "Acme Team"})
	require.NoError(t, err)
	assert.Equal(t, "acme-team-2", second.Slug)

	// The owner holds an admin Owner role in each workspace
	m, err := f.store.Memberships().FindByUserAndWorkspace(ctx, alice.ID, first.ID)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.NotNil(t, m.Role)
	assert.Equal(t, domain.RoleNameOwner, m.Role.Name)
	assert.True(t, m.Role.IsAdminRole)

	_, err = svc.CreateWorkspace(ctx, alice.ID, &dto.CreateWorkspaceRequest{Name: "   "})
	assert.Equal(t, response.ErrCodeValidation, appErrorCode(err))
}

func TestWorkspaceService_GetWorkspace(t *testing.T) {
	f := newFixture(t)
	owner := f.user("alice")
	bob := f.user("bob")
	outsider := f.user("eve")
	ws := f.workspace(owner, "W")
	f.member(ws, bob, domain.RoleNameMember, false)
	p := f.project(ws, daysFromNow(30))
	f.task(p, "done", domain.TaskStatusDone, nil)
	f.task(p, "open", domain.TaskStatusTodo, nil)
	svc := f.workspaceService()
	ctx := context.Background()

	detail, err := svc.GetWorkspace(ctx, bob.ID, ws.Slug)
	require.NoError(t, err)
	assert.False(t, detail.IsOwner)
	assert.Equal(t, int64(2), detail.MemberCount)
	require.Len(t, detail.Projects, 1)
	assert.Equal(t, 50, detail.Projects[0].Progress)
	assert.Equal(t, domain.HealthOnTrack, detail.Projects[0].Health)

	_, err = svc.GetWorkspace(ctx, outsider.ID, ws.Slug)
	assert.Equal(t, response.ErrCodeNotFound, appErrorCode(err))
}

func TestWorkspaceService_Access(t *testing.T) {
	f := newFixture(t)
	owner := f.user("alice")
	bob := f.user("bob")
	lead := f.user("lead")
	ws := f.workspace(owner, "W")
	f.member(ws, bob, "", false)
	f.member(ws, lead, "Lead", true)
	svc := f.workspaceService()
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func() error
		wantCode string
	}{
		{"실패: 역할 없는 멤버의 팀 디렉터리", func() error {
			_, err := svc.TeamDirectory(ctx, bob.ID, ws.Slug)
			return err
		}, response.ErrCodeForbidden},
		{"성공: 관리자 역할의 팀 디렉터리", func() error {
			_, err := svc.TeamDirectory(ctx, lead.ID, ws.Slug)
			return err
		}, ""},
		{"실패: owner가 아닌 멤버 목록 조회", func() error {
			_, err := svc.ListMembers(ctx, lead.ID, ws.Slug)
			return err
		}, response.ErrCodeForbidden},
		{"실패: owner가 아닌 역할 생성", func() error {
			_, err := svc.CreateRole(ctx, lead.ID, ws.Slug, &dto.CreateRoleRequest{Name: "PMO"})
			return err
		}, response.ErrCodeForbidden},
		{"성공: 멤버는 역할 목록 조회 가능", func() error {
			_, err := svc.ListRoles(ctx, bob.ID, ws.Slug)
			return err
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantCode, appErrorCode(err))
		})
	}
}

func TestWorkspaceService_TeamDirectory(t *testing.T) {
	f := newFixture(t)
	owner := f.user("alice")
	ws := f.workspace(owner, "W")
	f.member(ws, f.user("bob"), domain.RoleNameMember, false)
	f.member(ws, f.user("carol"), domain.RoleNameMember, false)
	f.member(ws, f.user("dave"), "", false)

	dir, err := f.workspaceService().TeamDirectory(context.Background(), owner.ID, ws.Slug)
	require.NoError(t, err)

	got := map[string]int{}
	var order []string
	for _, g := range dir.Groups {
		got[g.Role] = len(g.Members)
		order = append(order, g.Role)
	}
	assert.Equal(t, map[string]int{domain.RoleNameMember: 2, domain.RoleNameOwner: 1, unassignedRoleGroup: 1}, got)
	assert.Equal(t, []string{domain.RoleNameMember, domain.RoleNameOwner, unassignedRoleGroup}, order)
}

func TestWorkspaceService_UpdateMembershipRole(t *testing.T) {
	f := newFixture(t)
	owner := f.user("alice")
	bob := f.user("bob")
	ws := f.workspace(owner, "W")
	bobMembership := f.member(ws, bob, domain.RoleNameMember, false)
	ownerMembership, err := f.store.Memberships().FindByUserAndWorkspace(context.Background(), owner.ID, ws.ID)
	require.NoError(t, err)

	otherWS := f.workspace(f.user("zed"), "Other")
	foreignRole, err := f.store.Roles().GetOrCreate(context.Background(), otherWS.ID, domain.RoleNamePMO, false)
	require.NoError(t, err)

	svc := f.workspaceService()
	ctx := context.Background()

	pmo, err := svc.CreateRole(ctx, owner.ID, ws.Slug, &dto.CreateRoleRequest{Name: domain.RoleNamePMO, Description: "portfolio"})
	require.NoError(t, err)

	_, err = svc.CreateRole(ctx, owner.ID, ws.Slug, &dto.CreateRoleRequest{Name: domain.RoleNamePMO})
	assert.Equal(t, response.ErrCodeConflict, appErrorCode(err))

	t.Run("성공: 멤버에게 PMO 역할 부여", func(t *testing.T) {
		resp, err := svc.UpdateMembershipRole(ctx, owner.ID, bobMembership.ID, &dto.UpdateMembershipRoleRequest{RoleID: pmo.ID})
		require.NoError(t, err)
		require.NotNil(t, resp.Role)
		assert.Equal(t, domain.RoleNamePMO, resp.Role.Name)

		has, err := f.store.Memberships().HasRoleNamed(ctx, bob.ID, domain.RoleNamePMO)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("실패: 다른 워크스페이스의 역할", func(t *testing.T) {
		_, err := svc.UpdateMembershipRole(ctx, owner.ID, bobMembership.ID, &dto.UpdateMembershipRoleRequest{RoleID: foreignRole.ID})
		assert.Equal(t, response.ErrCodeNotFound, appErrorCode(err))
	})

	t.Run("실패: owner에게 관리자 아닌 역할", func(t *testing.T) {
		_, err := svc.UpdateMembershipRole(ctx, owner.ID, ownerMembership.ID, &dto.UpdateMembershipRoleRequest{RoleID: pmo.ID})
		assert.Equal(t, response.ErrCodeValidation, appErrorCode(err))
	})

	t.Run("실패: owner가 아닌 사용자", func(t *testing.T) {
		_, err := svc.UpdateMembershipRole(ctx, bob.ID, bobMembership.ID, &dto.UpdateMembershipRoleRequest{RoleID: pmo.ID})
		assert.Equal(t, response.ErrCodeForbidden, appErrorCode(err))
	})

	t.Run("실패: 존재하지 않는 membership", func(t *testing.T) {
		_, err := svc.UpdateMembershipRole(ctx, owner.ID, uuid.New(), &dto.UpdateMembershipRoleRequest{RoleID: pmo.ID})
		assert.Equal(t, response.ErrCodeNotFound, appErrorCode(err))
	})
}
