package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/response"
	"nexus-project-api/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe godoc
// @Summary      내 프로필 조회
// @Description  토큰의 사용자 프로필을 조회합니다
// @Tags         users
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Failure      404 {object} response.ErrorResponse "프로필 없음"
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetMe(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, user)
}

// UpsertMe godoc
// @Summary      내 프로필 저장
// @Description  토큰의 사용자 ID로 프로필을 생성하거나 수정합니다
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.UpsertUserRequest true "프로필"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      409 {object} response.ErrorResponse "이메일 중복"
// @Router       /users/me [put]
// @Security     BearerAuth
func (h *UserHandler) UpsertMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.UpsertMe(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, user)
}
