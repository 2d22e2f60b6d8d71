package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexus-project-api/internal/client"
	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/metrics"
)

// NotificationPublisher pushes a stored notification to live subscribers
type NotificationPublisher interface {
	Publish(ctx context.Context, n *domain.Notification) error
}

// UnreadCache caches the unread notification count per user
type UnreadCache interface {
	Get(ctx context.Context, userID uuid.UUID) (int64, bool)
	Set(ctx context.Context, userID uuid.UUID, count int64)
	Invalidate(ctx context.Context, userIDs ...uuid.UUID)
}

// Dispatcher delivers notifications once their transaction has committed
type Dispatcher interface {
	Dispatch(ctx context.Context, notifications []*domain.Notification)
}

// NotificationDispatcher publishes, invalidates cached counts and forwards
// to the webhook. Every step degrades to a log line on failure.
type NotificationDispatcher struct {
	publisher NotificationPublisher
	cache     UnreadCache
	webhook   client.NotificationClient
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewNotificationDispatcher creates a dispatcher; webhook may be nil
func NewNotificationDispatcher(publisher NotificationPublisher, cache UnreadCache, webhook client.NotificationClient, m *metrics.Metrics, logger *zap.Logger) *NotificationDispatcher {
	if webhook == nil {
		webhook = client.NewNoOpNotificationClient()
	}
	return &NotificationDispatcher{
		publisher: publisher,
		cache:     cache,
		webhook:   webhook,
		metrics:   m,
		logger:    logger,
	}
}

func (d *NotificationDispatcher) Dispatch(ctx context.Context, notifications []*domain.Notification) {
	if len(notifications) == 0 {
		return
	}

	d.metrics.AddNotificationsCreated(len(notifications))

	recipients := make([]uuid.UUID, 0, len(notifications))
	events := make([]client.NotificationEvent, 0, len(notifications))
	for _, n := range notifications {
		recipients = append(recipients, n.RecipientID)
		events = append(events, client.NewNotificationEvent(n))

		if err := d.publisher.Publish(ctx, n); err != nil {
			d.logger.Warn("Failed to publish notification",
				zap.String("notification_id", n.ID.String()),
				zap.String("recipient_id", n.RecipientID.String()),
				zap.Error(err),
			)
		}
	}

	d.cache.Invalidate(ctx, recipients...)

	if err := d.webhook.SendBulkNotifications(ctx, events); err != nil {
		d.logger.Warn("Failed to forward notifications", zap.Int("count", len(events)), zap.Error(err))
	}
}
