package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexus-project-api/internal/client"
	"nexus-project-api/internal/domain"
)

// ErrRealtimeUnavailable is returned by Subscribe when Redis is not configured
var ErrRealtimeUnavailable = errors.New("realtime notifications are not available")

// NotificationChannel is the pub/sub channel of one recipient
func NotificationChannel(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:user:%s", userID.String())
}

func unreadCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("unread:%s", userID.String())
}

// RedisNotificationBus implements NotificationPublisher and UnreadCache on
// Redis. A nil client turns every call into a no-op.
type RedisNotificationBus struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisNotificationBus creates the bus; client may be nil
func NewRedisNotificationBus(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisNotificationBus {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisNotificationBus{client: client, ttl: ttl, logger: logger}
}

func (b *RedisNotificationBus) Publish(ctx context.Context, n *domain.Notification) error {
	if b.client == nil {
		return nil
	}
	data, err := json.Marshal(client.NewNotificationEvent(n))
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	return b.client.Publish(ctx, NotificationChannel(n.RecipientID), data).Err()
}

func (b *RedisNotificationBus) Get(ctx context.Context, userID uuid.UUID) (int64, bool) {
	if b.client == nil {
		return 0, false
	}
	count, err := b.client.Get(ctx, unreadCacheKey(userID)).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			b.logger.Warn("Failed to read unread count cache", zap.Error(err))
		}
		return 0, false
	}
	return count, true
}

func (b *RedisNotificationBus) Set(ctx context.Context, userID uuid.UUID, count int64) {
	if b.client == nil {
		return
	}
	if err := b.client.Set(ctx, unreadCacheKey(userID), count, b.ttl).Err(); err != nil {
		b.logger.Warn("Failed to cache unread count", zap.Error(err))
	}
}

func (b *RedisNotificationBus) Invalidate(ctx context.Context, userIDs ...uuid.UUID) {
	if b.client == nil || len(userIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range removeDuplicateUUIDs(userIDs) {
		keys = append(keys, unreadCacheKey(id))
	}
	if err := b.client.Del(ctx, keys...).Err(); err != nil {
		b.logger.Warn("Failed to invalidate unread cache", zap.Error(err))
	}
}

// Subscribe streams the payloads published for userID until ctx is done
// or the returned close function is called
func (b *RedisNotificationBus) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan []byte, func() error, error) {
	if b.client == nil {
		return nil, nil, ErrRealtimeUnavailable
	}

	sub := b.client.Subscribe(ctx, NotificationChannel(userID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan []byte, 16)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			select {
			case out <- []byte(msg.Payload):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, sub.Close, nil
}
