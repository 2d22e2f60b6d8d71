package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nexus-project-api/internal/client"
	"nexus-project-api/internal/database"
	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/metrics"
	"nexus-project-api/internal/repository"
	"nexus-project-api/internal/response"
)

// recordingDispatcher keeps every dispatched batch
type recordingDispatcher struct {
	mu      sync.Mutex
	batches [][]*domain.Notification
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, notifications []*domain.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.batches = append(d.batches, notifications)
}

func (d *recordingDispatcher) all() []*domain.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*domain.Notification
	for _, b := range d.batches {
		out = append(out, b...)
	}
	return out
}

// fakeUnreadCache is an in-memory UnreadCache
type fakeUnreadCache struct {
	mu          sync.Mutex
	values      map[uuid.UUID]int64
	invalidated []uuid.UUID
}

func newFakeUnreadCache() *fakeUnreadCache {
	return &fakeUnreadCache{values: make(map[uuid.UUID]int64)}
}

func (c *fakeUnreadCache) Get(ctx context.Context, userID uuid.UUID) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[userID]
	return v, ok
}

func (c *fakeUnreadCache) Set(ctx context.Context, userID uuid.UUID, count int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[userID] = count
}

func (c *fakeUnreadCache) Invalidate(ctx context.Context, userIDs ...uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range userIDs {
		delete(c.values, id)
		c.invalidated = append(c.invalidated, id)
	}
}

// MockPublisher is a mock implementation of NotificationPublisher
type MockPublisher struct {
	PublishFunc func(ctx context.Context, n *domain.Notification) error
	published   []*domain.Notification
}

func (m *MockPublisher) Publish(ctx context.Context, n *domain.Notification) error {
	m.published = append(m.published, n)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, n)
	}
	return nil
}

// MockNotificationClient is a mock implementation of client.NotificationClient
type MockNotificationClient struct {
	SendBulkNotificationsFunc func(ctx context.Context, events []client.NotificationEvent) error
	sent                      []client.NotificationEvent
}

func (m *MockNotificationClient) SendBulkNotifications(ctx context.Context, events []client.NotificationEvent) error {
	m.sent = append(m.sent, events...)
	if m.SendBulkNotificationsFunc != nil {
		return m.SendBulkNotificationsFunc(ctx, events)
	}
	return nil
}

// MockMailer is a mock implementation of client.Mailer
type MockMailer struct {
	SendInvitationFunc func(ctx context.Context, mail client.InvitationMail) error
	sent               []client.InvitationMail
}

func (m *MockMailer) SendInvitation(ctx context.Context, mail client.InvitationMail) error {
	m.sent = append(m.sent, mail)
	if m.SendInvitationFunc != nil {
		return m.SendInvitationFunc(ctx, mail)
	}
	return nil
}

// fixedNow is the clock of every service test: 2024-06-15 10:00 UTC
var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func daysFromNow(n int) *time.Time {
	t := domain.DateOf(fixedNow).AddDate(0, 0, n)
	return &t
}

// fixture is a private SQLite database with helpers to seed it
type fixture struct {
	t          *testing.T
	db         *gorm.DB
	store      repository.Store
	dispatcher *recordingDispatcher
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.New(database.Config{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	return &fixture{
		t:          t,
		db:         db,
		store:      repository.NewStore(db),
		dispatcher: &recordingDispatcher{},
		metrics:    metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop()),
		logger:     zap.NewNop(),
	}
}

func (f *fixture) user(first string) *domain.User {
	f.t.Helper()
	u := &domain.User{Email: first + "-" + uuid.NewString()[:8] + "@example.com", FirstName: first}
	require.NoError(f.t, f.db.Create(u).Error)
	return u
}

// workspace creates a workspace owned by owner, with the owner's admin membership
func (f *fixture) workspace(owner *domain.User, name string) *domain.Workspace {
	f.t.Helper()
	ws := &domain.Workspace{Name: name, Slug: slugify(name) + "-" + uuid.NewString()[:8], OwnerID: owner.ID}
	require.NoError(f.t, f.db.Create(ws).Error)
	f.member(ws, owner, domain.RoleNameOwner, true)
	return ws
}

// member adds user to ws; an empty roleName leaves the membership without a role
func (f *fixture) member(ws *domain.Workspace, user *domain.User, roleName string, isAdmin bool) *domain.Membership {
	f.t.Helper()
	m := &domain.Membership{UserID: user.ID, WorkspaceID: ws.ID, JoinedAt: fixedNow}
	if roleName != "" {
		role, err := f.store.Roles().GetOrCreate(context.Background(), ws.ID, roleName, isAdmin)
		require.NoError(f.t, err)
		m.RoleID = &role.ID
	}
	require.NoError(f.t, f.db.Create(m).Error)
	return m
}

func (f *fixture) project(ws *domain.Workspace, deadline *time.Time) *domain.Project {
	f.t.Helper()
	p := &domain.Project{
		WorkspaceID: ws.ID,
		Name:        "Launch",
		Slug:        "launch-" + uuid.NewString()[:8],
		Status:      domain.ProjectStatusActive,
		Deadline:    deadline,
	}
	require.NoError(f.t, f.db.Omit("Workspace").Create(p).Error)
	p.Workspace = ws
	return p
}

func (f *fixture) task(p *domain.Project, title string, status domain.TaskStatus, assignee *domain.User) *domain.Task {
	f.t.Helper()
	t := &domain.Task{
		ProjectID: p.ID,
		Title:     title,
		Slug:      slugify(title) + "-" + uuid.NewString()[:8],
		Status:    status,
		Priority:  domain.TaskPriorityMedium,
	}
	if assignee != nil {
		t.AssigneeID = &assignee.ID
	}
	require.NoError(f.t, f.store.Tasks().Create(context.Background(), t))
	return t
}

// precede makes pred a predecessor of task
func (f *fixture) precede(task *domain.Task, preds ...*domain.Task) {
	f.t.Helper()
	ids := make([]uuid.UUID, 0, len(preds))
	for _, p := range preds {
		ids = append(ids, p.ID)
	}
	require.NoError(f.t, f.store.Tasks().ReplacePredecessors(context.Background(), task.ID, ids))
}

func (f *fixture) reload(task *domain.Task) *domain.Task {
	f.t.Helper()
	var fresh domain.Task
	require.NoError(f.t, f.db.Where("id = ?", task.ID).First(&fresh).Error)
	return &fresh
}

func (f *fixture) count(model interface{}, query string, args ...interface{}) int64 {
	f.t.Helper()
	var n int64
	q := f.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(f.t, q.Count(&n).Error)
	return n
}

func (f *fixture) taskService(systemActor uuid.UUID) *taskServiceImpl {
	return &taskServiceImpl{
		store:       f.store,
		dispatcher:  f.dispatcher,
		fields:      NewFieldRegistry(),
		s3Client:    client.NewMockS3Client(),
		systemActor: systemActor,
		metrics:     f.metrics,
		logger:      f.logger,
		now:         fixedClock,
	}
}

// appErrorCode returns the code of an AppError, or "" for any other error
func appErrorCode(err error) string {
	if appErr, ok := err.(*response.AppError); ok {
		return appErr.Code
	}
	return ""
}
