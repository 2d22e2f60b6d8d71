package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/metrics"
)

func testMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func TestAuthClient_ValidateToken(t *testing.T) {
	userID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/validate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req TokenValidationRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch req.Token {
		case "good":
			_ = json.NewEncoder(w).Encode(TokenValidationResponse{Valid: true, UserID: userID.String()})
		case "bad-id":
			_ = json.NewEncoder(w).Encode(TokenValidationResponse{Valid: true, UserID: "nope"})
		case "invalid":
			_ = json.NewEncoder(w).Encode(TokenValidationResponse{Valid: false, Message: "expired"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	c := NewAuthClient(server.URL, time.Second, zap.NewNop(), testMetrics())

	got, err := c.ValidateToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = c.ValidateToken(context.Background(), "invalid")
	assert.ErrorContains(t, err, "expired")

	_, err = c.ValidateToken(context.Background(), "bad-id")
	assert.ErrorContains(t, err, "invalid user ID format")

	_, err = c.ValidateToken(context.Background(), "other")
	assert.ErrorContains(t, err, "status: 401")
}

func TestNotificationClient_SendBulkNotifications(t *testing.T) {
	var received BulkNotificationRequest
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "secret", r.Header.Get("X-Internal-API-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	c := NewNotificationClient(server.URL, "secret", time.Second, zap.NewNop(), testMetrics())

	n := &domain.Notification{
		ID:          uuid.New(),
		RecipientID: uuid.New(),
		ActorID:     uuid.New(),
		WorkspaceID: uuid.New(),
		Verb:        "commented on task",
		Target:      domain.TaskTarget(uuid.New()),
		CreatedAt:   time.Now(),
	}
	require.NoError(t, c.SendBulkNotifications(context.Background(), []NotificationEvent{NewNotificationEvent(n)}))

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	require.Len(t, received.Notifications, 1)
	got := received.Notifications[0]
	assert.Equal(t, n.RecipientID, got.RecipientID)
	assert.Equal(t, domain.TargetKindTask, got.TargetKind)
	require.NotNil(t, got.TargetID)
	assert.Equal(t, n.Target.ID, *got.TargetID)

	// empty batches never hit the wire
	require.NoError(t, c.SendBulkNotifications(context.Background(), nil))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNotificationClient_GracefulDegradation(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	c := NewNotificationClient(server.URL, "", time.Second, zap.New(core), testMetrics())

	events := []NotificationEvent{{ID: uuid.New(), Verb: "x"}}
	assert.NoError(t, c.SendBulkNotifications(context.Background(), events))
	assert.Equal(t, 1, logs.FilterMessage("Notification webhook returned non-success status").Len())

	server.Close()
	assert.NoError(t, c.SendBulkNotifications(context.Background(), events))
	assert.Equal(t, 1, logs.FilterMessage("Failed to forward notifications").Len())
}

func TestNewNotificationEvent_WorkspaceLevel(t *testing.T) {
	ev := NewNotificationEvent(&domain.Notification{ID: uuid.New(), Verb: "joined"})
	assert.Nil(t, ev.TargetID)
	assert.Empty(t, ev.TargetKind)
}

func TestLogMailer(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := NewLogMailer(zap.New(core))

	err := m.SendInvitation(context.Background(), InvitationMail{
		To:   "bob@example.com",
		Link: "http://localhost:8000/api/invitations/accept/abc",
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("Invitation link generated").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bob@example.com", entries[0].ContextMap()["to"])
}
