package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/metrics"
)

// NotificationEvent is the payload forwarded for every stored notification
type NotificationEvent struct {
	ID          uuid.UUID         `json:"id"`
	RecipientID uuid.UUID         `json:"recipientId"`
	ActorID     uuid.UUID         `json:"actorId"`
	WorkspaceID uuid.UUID         `json:"workspaceId"`
	Verb        string            `json:"verb"`
	TargetKind  domain.TargetKind `json:"targetKind,omitempty"`
	TargetID    *uuid.UUID        `json:"targetId,omitempty"`
	OccurredAt  string            `json:"occurredAt,omitempty"`
}

// NewNotificationEvent converts a stored notification into its wire form
func NewNotificationEvent(n *domain.Notification) NotificationEvent {
	ev := NotificationEvent{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		ActorID:     n.ActorID,
		WorkspaceID: n.WorkspaceID,
		Verb:        n.Verb,
		TargetKind:  n.Target.Kind,
		OccurredAt:  n.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !n.Target.IsZero() {
		id := n.Target.ID
		ev.TargetID = &id
	}
	return ev
}

// BulkNotificationRequest represents a bulk notification request
type BulkNotificationRequest struct {
	Notifications []NotificationEvent `json:"notifications"`
}

// NotificationClient forwards notifications to an external delivery service
type NotificationClient interface {
	SendBulkNotifications(ctx context.Context, events []NotificationEvent) error
}

// notificationClient implements NotificationClient over an HTTP webhook
type notificationClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewNotificationClient creates a webhook client posting to url
func NewNotificationClient(url string, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) NotificationClient {
	return &notificationClient{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// SendBulkNotifications posts all events in one request.
// Delivery failures are logged and swallowed; the stored notification is the source of truth.
func (c *notificationClient) SendBulkNotifications(ctx context.Context, events []NotificationEvent) error {
	if len(events) == 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i := range events {
		if events[i].OccurredAt == "" {
			events[i].OccurredAt = now
		}
	}

	jsonBody, err := json.Marshal(BulkNotificationRequest{Notifications: events})
	if err != nil {
		return fmt.Errorf("failed to marshal notifications: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Internal-API-Key", c.apiKey)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(c.url, http.MethodPost, statusCode, duration, err)
	}

	if err != nil {
		c.logger.Warn("Failed to forward notifications",
			zap.Error(err),
			zap.Int("count", len(events)),
			zap.Duration("duration", duration),
		)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug("Notifications forwarded",
			zap.Int("count", len(events)),
			zap.Duration("duration", duration),
		)
		return nil
	}

	c.logger.Warn("Notification webhook returned non-success status",
		zap.Int("status_code", resp.StatusCode),
		zap.Int("count", len(events)),
		zap.Duration("duration", duration),
	)
	return nil
}

// NoOpNotificationClient is used when no webhook is configured
type NoOpNotificationClient struct{}

func NewNoOpNotificationClient() NotificationClient {
	return &NoOpNotificationClient{}
}

func (c *NoOpNotificationClient) SendBulkNotifications(ctx context.Context, events []NotificationEvent) error {
	return nil
}
