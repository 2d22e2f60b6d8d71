package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/repository"
)

// NotificationService defines the interface for reading notifications
type NotificationService interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, page int) (*dto.PaginatedNotificationsResponse, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, error)
}

type notificationServiceImpl struct {
	store    repository.Store
	cache    UnreadCache
	pageSize int
	logger   *zap.Logger
	now      Clock
}

// NewNotificationService creates a new instance of NotificationService
func NewNotificationService(store repository.Store, cache UnreadCache, pageSize int, logger *zap.Logger) NotificationService {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &notificationServiceImpl{store: store, cache: cache, pageSize: pageSize, logger: logger, now: systemClock}
}

// ListNotifications marks all of the caller's notifications as read and
// returns the requested page, newest first
func (s *notificationServiceImpl) ListNotifications(ctx context.Context, userID uuid.UUID, page int) (*dto.PaginatedNotificationsResponse, error) {
	marked, err := s.store.Notifications().MarkAllAsRead(ctx, userID, s.now())
	if err != nil {
		return nil, internal("Failed to mark notifications as read", err)
	}
	if marked > 0 {
		s.cache.Invalidate(ctx, userID)
	}

	p := repository.NewPage(page, s.pageSize)
	notifications, total, err := s.store.Notifications().ListByRecipient(ctx, userID, p)
	if err != nil {
		return nil, internal("Failed to load notifications", err)
	}

	actorIDs := make([]uuid.UUID, 0, len(notifications))
	for _, n := range notifications {
		actorIDs = append(actorIDs, n.ActorID)
	}
	users, err := userMap(ctx, s.store, actorIDs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, dto.NewNotificationResponse(n, users[n.ActorID]))
	}

	return &dto.PaginatedNotificationsResponse{
		Notifications: items,
		Total:         total,
		Page:          p.Offset/p.Limit + 1,
		Limit:         p.Limit,
		MarkedRead:    marked,
	}, nil
}

// UnreadCount serves the count from the cache when present
func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, error) {
	if count, ok := s.cache.Get(ctx, userID); ok {
		return &dto.UnreadCountResponse{Count: count}, nil
	}

	count, err := s.store.Notifications().CountUnread(ctx, userID)
	if err != nil {
		return nil, internal("Failed to count notifications", err)
	}
	s.cache.Set(ctx, userID, count)
	return &dto.UnreadCountResponse{Count: count}, nil
}
