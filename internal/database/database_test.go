package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
)

// setupTestDB opens a private in-memory SQLite database with all tables
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := New(Config{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(Config{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestAutoMigrate_CreatesAllTables(t *testing.T) {
	db := setupTestDB(t)

	for _, m := range models() {
		assert.True(t, db.Migrator().HasTable(m.tableName), m.tableName)
	}
	assert.True(t, db.Migrator().HasTable("task_predecessors"))
}

func TestSafeAutoMigrate_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SafeAutoMigrate(db, zap.NewNop()))
	require.NoError(t, SafeAutoMigrateWithRetry(db, zap.NewNop(), 2))
}

func TestNew_TranslatesDuplicateKey(t *testing.T) {
	db := setupTestDB(t)

	userID, wsID := uuid.New(), uuid.New()
	first := &domain.Membership{UserID: userID, WorkspaceID: wsID}
	require.NoError(t, db.Create(first).Error)

	err := db.Create(&domain.Membership{UserID: userID, WorkspaceID: wsID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestBaseModel_AssignsID(t *testing.T) {
	db := setupTestDB(t)

	u := &domain.User{Email: "a@example.com"}
	require.NoError(t, db.Create(u).Error)
	assert.NotEqual(t, uuid.Nil, u.ID)
}
