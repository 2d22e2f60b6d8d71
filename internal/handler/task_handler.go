package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/response"
	"nexus-project-api/internal/service"
)

// TaskHandler serves tasks, their comments and timers
type TaskHandler struct {
	taskService    service.TaskService
	commentService service.CommentService
	timeLogService service.TimeLogService
}

func NewTaskHandler(taskService service.TaskService, commentService service.CommentService, timeLogService service.TimeLogService) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		commentService: commentService,
		timeLogService: timeLogService,
	}
}

// CreateTask godoc
// @Summary      작업 생성
// @Description  Project에 작업을 생성합니다. 상태 기본값 BACKLOG, 우선순위 기본값 MEDIUM
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        slug path string true "Project slug"
// @Param        request body dto.CreateTaskRequest true "작업 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.TaskResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "Project 잠김"
// @Failure      404 {object} response.ErrorResponse "Project를 찾을 수 없음"
// @Router       /projects/{slug}/tasks [post]
// @Security     BearerAuth
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), userID, c.Param("slug"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, task)
}

// GetTask godoc
// @Summary      작업 상세 조회
// @Description  선행 작업, 커스텀 필드, 댓글, 내 타이머와 시간 합계를 포함합니다
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskDetailResponse}
// @Failure      404 {object} response.ErrorResponse "작업을 찾을 수 없음"
// @Router       /tasks/{taskId} [get]
// @Security     BearerAuth
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseUUIDParam(c, "taskId", "task")
	if !ok {
		return
	}
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	detail, err := h.taskService.GetTaskDetail(c.Request.Context(), userID, taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, detail)
}

// UpdateTask godoc
// @Summary      작업 수정
// @Description  Owner 또는 담당자만 수정할 수 있습니다. 상태는 update-status로 변경합니다
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.UpdateTaskRequest true "작업 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "작업을 찾을 수 없음"
// @Router       /tasks/{taskId} [put]
// @Security     BearerAuth
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseUUIDParam(c, "taskId", "task")
	if !ok {
		return
	}
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), userID, taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, task)
}

// UpdateTaskStatus godoc
// @Summary      작업 상태 변경
// @Description  IN_PROGRESS로 변경하려면 모든 선행 작업이 DONE이어야 합니다. 보이지 않는 작업은 403입니다
// @Tags         tasks
// @Accept       json,x-www-form-urlencoded
// @Param        request body dto.UpdateTaskStatusRequest true "상태 변경 요청"
// @Success      204 "변경 성공"
// @Failure      400 {object} response.ErrorResponse "선행 작업 미완료 또는 잘못된 상태"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /tasks/update-status [post]
// @Security     BearerAuth
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.taskService.UpdateTaskStatus(c.Request.Context(), userID, &req); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendNoContent(c)
}

// AddComment godoc
// @Summary      댓글 작성
// @Description  첨부 파일 메타데이터가 있으면 업로드용 presigned URL을 함께 반환합니다
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.CreateCommentRequest true "댓글"
// @Success      201 {object} response.SuccessResponse{data=dto.CreateCommentResponse}
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "Project 잠김"
// @Failure      404 {object} response.ErrorResponse "작업을 찾을 수 없음"
// @Router       /tasks/{taskId}/comments [post]
// @Security     BearerAuth
func (h *TaskHandler) AddComment(c *gin.Context) {
	taskID, ok := parseUUIDParam(c, "taskId", "task")
	if !ok {
		return
	}
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Attachment != nil {
		if err := validateAttachmentUpload(req.Attachment); err != nil {
			handleServiceError(c, err)
			return
		}
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), userID, taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, comment)
}

// ToggleTime godoc
// @Summary      타이머 시작/정지
// @Description  실행 중인 내 타이머가 있으면 정지하고 합계를 반환하며, 없으면 시작합니다. 잠긴 Project는 Owner만 가능합니다
// @Tags         time-logs
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ToggleTimeResponse}
// @Failure      403 {object} response.ErrorResponse "Project 잠김"
// @Failure      404 {object} response.ErrorResponse "작업을 찾을 수 없음"
// @Failure      409 {object} response.ErrorResponse "동시 시작"
// @Router       /tasks/{taskId}/toggle-time [post]
// @Security     BearerAuth
func (h *TaskHandler) ToggleTime(c *gin.Context) {
	taskID, ok := parseUUIDParam(c, "taskId", "task")
	if !ok {
		return
	}
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	result, err := h.timeLogService.ToggleTime(c.Request.Context(), userID, taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}
