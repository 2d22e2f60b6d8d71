package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/response"
	"nexus-project-api/internal/service"
)

// WorkspaceHandler serves workspaces, their roles and memberships
type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

func NewWorkspaceHandler(workspaceService service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// CreateWorkspace godoc
// @Summary      Workspace 생성
// @Description  Workspace를 생성하고 생성자를 Owner 역할로 등록합니다
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateWorkspaceRequest true "Workspace 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.WorkspaceResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Router       /workspaces [post]
// @Security     BearerAuth
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ws, err := h.workspaceService.CreateWorkspace(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, ws)
}

// GetWorkspace godoc
// @Summary      Workspace 조회
// @Description  Workspace, 프로젝트 건강 상태와 진행률, 멤버 수를 조회합니다 (멤버만 가능)
// @Tags         workspaces
// @Produce      json
// @Param        slug path string true "Workspace slug"
// @Success      200 {object} response.SuccessResponse{data=dto.WorkspaceDetailResponse}
// @Failure      404 {object} response.ErrorResponse "Workspace를 찾을 수 없음"
// @Router       /workspaces/{slug} [get]
// @Security     BearerAuth
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	ws, err := h.workspaceService.GetWorkspace(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, ws)
}

// ListMembers godoc
// @Summary      멤버 목록
// @Tags         workspaces
// @Produce      json
// @Param        slug path string true "Workspace slug"
// @Success      200 {object} response.SuccessResponse{data=[]dto.MemberResponse}
// @Failure      404 {object} response.ErrorResponse "Workspace를 찾을 수 없음"
// @Router       /workspaces/{slug}/members [get]
// @Security     BearerAuth
func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	members, err := h.workspaceService.ListMembers(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, members)
}

// TeamDirectory godoc
// @Summary      팀 디렉터리
// @Description  역할별로 묶은 멤버 목록입니다 (Owner 또는 관리자 역할만 가능)
// @Tags         workspaces
// @Produce      json
// @Param        slug path string true "Workspace slug"
// @Success      200 {object} response.SuccessResponse{data=dto.TeamDirectoryResponse}
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "Workspace를 찾을 수 없음"
// @Router       /workspaces/{slug}/team [get]
// @Security     BearerAuth
func (h *WorkspaceHandler) TeamDirectory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	team, err := h.workspaceService.TeamDirectory(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, team)
}

// ListRoles godoc
// @Summary      역할 목록
// @Tags         roles
// @Produce      json
// @Param        slug path string true "Workspace slug"
// @Success      200 {object} response.SuccessResponse{data=[]dto.RoleResponse}
// @Router       /workspaces/{slug}/roles [get]
// @Security     BearerAuth
func (h *WorkspaceHandler) ListRoles(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	roles, err := h.workspaceService.ListRoles(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, roles)
}

// CreateRole godoc
// @Summary      역할 생성
// @Description  Workspace 역할을 생성합니다 (Owner만 가능)
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        slug path string true "Workspace slug"
// @Param        request body dto.CreateRoleRequest true "역할 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.RoleResponse}
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      409 {object} response.ErrorResponse "이름 중복"
// @Router       /workspaces/{slug}/roles [post]
// @Security     BearerAuth
func (h *WorkspaceHandler) CreateRole(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	role, err := h.workspaceService.CreateRole(c.Request.Context(), userID, c.Param("slug"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, role)
}

// UpdateMembershipRole godoc
// @Summary      멤버 역할 변경
// @Description  멤버의 역할을 변경합니다 (Workspace Owner만 가능)
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        membershipId path string true "Membership ID (UUID)"
// @Param        request body dto.UpdateMembershipRoleRequest true "역할"
// @Success      200 {object} response.SuccessResponse{data=dto.MemberResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "Membership을 찾을 수 없음"
// @Router       /memberships/{membershipId}/role [put]
// @Security     BearerAuth
func (h *WorkspaceHandler) UpdateMembershipRole(c *gin.Context) {
	membershipID, ok := parseUUIDParam(c, "membershipId", "membership")
	if !ok {
		return
	}
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMembershipRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	member, err := h.workspaceService.UpdateMembershipRole(c.Request.Context(), userID, membershipID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, member)
}
