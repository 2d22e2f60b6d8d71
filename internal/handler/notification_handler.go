package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"nexus-project-api/internal/response"
	"nexus-project-api/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NotificationSubscriber streams the published notification payloads of one user
type NotificationSubscriber interface {
	Subscribe(ctx context.Context, userID uuid.UUID) (<-chan []byte, func() error, error)
}

type NotificationHandler struct {
	notificationService service.NotificationService
	subscriber          NotificationSubscriber
	logger              *zap.Logger
}

func NewNotificationHandler(notificationService service.NotificationService, subscriber NotificationSubscriber, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		subscriber:          subscriber,
		logger:              logger,
	}
}

// ListNotifications godoc
// @Summary      알림 목록
// @Description  내 알림을 모두 읽음 처리한 뒤 최신순으로 페이지를 반환합니다
// @Tags         notifications
// @Produce      json
// @Param        page query int false "페이지 (기본 1)"
// @Success      200 {object} response.SuccessResponse{data=dto.PaginatedNotificationsResponse}
// @Router       /notifications [get]
// @Security     BearerAuth
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid page")
			return
		}
		page = p
	}

	result, err := h.notificationService.ListNotifications(c.Request.Context(), userID, page)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// UnreadCount godoc
// @Summary      읽지 않은 알림 수
// @Tags         notifications
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.UnreadCountResponse}
// @Router       /notifications/unread-count [get]
// @Security     BearerAuth
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	result, err := h.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// StreamNotifications godoc
// @Summary      알림 WebSocket
// @Description  새 알림이 생성될 때마다 JSON 이벤트를 전송합니다. 브라우저는 token 쿼리로 인증합니다
// @Tags         notifications
// @Param        token query string false "JWT Access Token"
// @Success      101 {string} string "Switching Protocols"
// @Failure      401 {object} response.ErrorResponse
// @Failure      503 {object} response.ErrorResponse "실시간 알림 비활성화"
// @Router       /notifications/stream [get]
func (h *NotificationHandler) StreamNotifications(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events, closeSub, err := h.subscriber.Subscribe(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrRealtimeUnavailable) {
			response.SendError(c, http.StatusServiceUnavailable, "REALTIME_UNAVAILABLE", err.Error())
			return
		}
		handleServiceError(c, err)
		return
	}
	defer func() { _ = closeSub() }()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	h.logger.Info("Notification stream connected", zap.String("user_id", userID.String()))

	// The read side only handles pongs and detects the client going away
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			h.logger.Info("Notification stream closed", zap.String("user_id", userID.String()))
			return
		}
	}
}
