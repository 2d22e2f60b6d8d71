package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/response"
	"nexus-project-api/internal/service"
)

type InvitationHandler struct {
	invitationService service.InvitationService
}

func NewInvitationHandler(invitationService service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// SendInvitation godoc
// @Summary      초대 발송
// @Description  이메일로 Workspace 초대 링크를 보냅니다 (Owner만 가능)
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        slug path string true "Workspace slug"
// @Param        request body dto.SendInvitationRequest true "초대 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.InvitationResponse}
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      409 {object} response.ErrorResponse "이미 멤버이거나 대기 중인 초대 존재"
// @Router       /workspaces/{slug}/invite [post]
// @Security     BearerAuth
func (h *InvitationHandler) SendInvitation(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.SendInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	inv, err := h.invitationService.SendInvitation(c.Request.Context(), userID, c.Param("slug"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, inv)
}

// AcceptInvitation godoc
// @Summary      초대 수락
// @Description  초대 토큰으로 Workspace에 참여합니다. 이미 멤버이면 joined=false와 경고를 반환합니다
// @Tags         invitations
// @Produce      json
// @Param        token path string true "초대 토큰"
// @Success      200 {object} response.SuccessResponse{data=dto.AcceptInvitationResponse}
// @Failure      404 {object} response.ErrorResponse "유효하지 않은 토큰"
// @Router       /invitations/accept/{token} [get]
// @Security     BearerAuth
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	result, err := h.invitationService.AcceptInvitation(c.Request.Context(), userID, c.Param("token"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}
