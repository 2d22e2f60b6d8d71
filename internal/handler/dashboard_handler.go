package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nexus-project-api/internal/response"
	"nexus-project-api/internal/service"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary      대시보드
// @Description  내 Workspace, 내 작업, PMO 역할이 있으면 지연/위험 작업을 반환합니다
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.DashboardResponse}
// @Router       /dashboard [get]
// @Security     BearerAuth
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, dashboard)
}
