package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/response"
	"nexus-project-api/internal/service"
)

type CustomFieldHandler struct {
	customFieldService service.CustomFieldService
}

func NewCustomFieldHandler(customFieldService service.CustomFieldService) *CustomFieldHandler {
	return &CustomFieldHandler{customFieldService: customFieldService}
}

// CreateCustomField godoc
// @Summary      커스텀 필드 생성
// @Description  Workspace 작업에 쓰일 커스텀 필드를 정의합니다 (Owner만 가능). DROPDOWN은 옵션이 1개 이상 필요합니다
// @Tags         custom-fields
// @Accept       json
// @Produce      json
// @Param        slug path string true "Workspace slug"
// @Param        request body dto.CreateCustomFieldRequest true "필드 정의"
// @Success      201 {object} response.SuccessResponse{data=dto.CustomFieldResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      409 {object} response.ErrorResponse "이름 중복"
// @Router       /workspaces/{slug}/custom-fields [post]
// @Security     BearerAuth
func (h *CustomFieldHandler) CreateCustomField(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	field, err := h.customFieldService.CreateCustomField(c.Request.Context(), userID, c.Param("slug"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, field)
}

// ListCustomFields godoc
// @Summary      커스텀 필드 목록
// @Tags         custom-fields
// @Produce      json
// @Param        slug path string true "Workspace slug"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CustomFieldResponse}
// @Router       /workspaces/{slug}/custom-fields [get]
// @Security     BearerAuth
func (h *CustomFieldHandler) ListCustomFields(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	fields, err := h.customFieldService.ListCustomFields(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, fields)
}
