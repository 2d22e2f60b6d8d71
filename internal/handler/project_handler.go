package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/response"
	"nexus-project-api/internal/service"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProject godoc
// @Summary      Project 생성
// @Description  Workspace에 새 Project를 생성합니다 (Owner만 가능). 관리자는 Workspace 멤버여야 합니다
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        slug path string true "Workspace slug"
// @Param        request body dto.CreateProjectRequest true "Project 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.ProjectResponse} "Project 생성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "Workspace를 찾을 수 없음"
// @Router       /workspaces/{slug}/projects [post]
// @Security     BearerAuth
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), userID, c.Param("slug"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, project)
}

// GetProjectDetail godoc
// @Summary      Project 상세 조회
// @Description  상태별 작업, 상태 차트, 최근 활동과 잠금 여부를 조회합니다 (멤버만 가능)
// @Tags         projects
// @Produce      json
// @Param        slug path string true "Project slug"
// @Param        q query string false "제목/설명 검색어"
// @Param        filter_by query string false "my_tasks" Enums(my_tasks)
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectDetailResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 쿼리"
// @Failure      404 {object} response.ErrorResponse "Project를 찾을 수 없음"
// @Router       /projects/{slug} [get]
// @Security     BearerAuth
func (h *ProjectHandler) GetProjectDetail(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var query dto.ProjectDetailQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	detail, err := h.projectService.GetProjectDetail(c.Request.Context(), userID, c.Param("slug"), query)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, detail)
}

// ListActivities godoc
// @Summary      Project 활동 목록
// @Tags         projects
// @Produce      json
// @Param        slug path string true "Project slug"
// @Param        page query int false "페이지 (기본 1)"
// @Param        limit query int false "페이지 크기 (기본 20, 최대 100)"
// @Success      200 {object} response.SuccessResponse{data=dto.PaginatedActivitiesResponse}
// @Router       /projects/{slug}/activities [get]
// @Security     BearerAuth
func (h *ProjectHandler) ListActivities(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid pagination parameters")
		return
	}
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	activities, err := h.projectService.ListActivities(c.Request.Context(), userID, c.Param("slug"), query.Page, query.Limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, activities)
}

// GetGanttData godoc
// @Summary      Gantt 데이터
// @Description  시작일과 마감일이 모두 있는 작업을 시작일 순으로 반환합니다
// @Tags         projects
// @Produce      json
// @Param        slug path string true "Project slug"
// @Success      200 {object} response.SuccessResponse{data=[]dto.GanttTask}
// @Router       /projects/{slug}/gantt-data [get]
// @Security     BearerAuth
func (h *ProjectHandler) GetGanttData(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	bars, err := h.projectService.GetGanttData(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, bars)
}

// GetReports godoc
// @Summary      Project 리포트
// @Description  지연 작업, 위험 작업(7일 이내 마감), 담당자별 작업량을 반환합니다
// @Tags         projects
// @Produce      json
// @Param        slug path string true "Project slug"
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectReportsResponse}
// @Router       /projects/{slug}/reports [get]
// @Security     BearerAuth
func (h *ProjectHandler) GetReports(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	reports, err := h.projectService.GetReports(c.Request.Context(), userID, c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, reports)
}
