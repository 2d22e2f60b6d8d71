package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
)

// modelInfo holds information about a domain model and its table name
type modelInfo struct {
	model     interface{}
	tableName string
}

// models lists every domain model in dependency order
func models() []modelInfo {
	return []modelInfo{
		{&domain.User{}, "users"},
		{&domain.Workspace{}, "workspaces"},
		{&domain.Role{}, "roles"},
		{&domain.Membership{}, "memberships"},
		{&domain.Project{}, "projects"},
		{&domain.Task{}, "tasks"},
		{&domain.TimeLog{}, "time_logs"},
		{&domain.CustomField{}, "custom_fields"},
		{&domain.FieldOption{}, "field_options"},
		{&domain.CustomFieldValue{}, "custom_field_values"},
		{&domain.Comment{}, "comments"},
		{&domain.Attachment{}, "attachments"},
		{&domain.Activity{}, "activities"},
		{&domain.Notification{}, "notifications"},
		{&domain.Invitation{}, "invitations"},
	}
}

// AutoMigrate runs GORM auto-migration for all domain models
// It automatically creates tables, indexes, and foreign key constraints
// based on the struct definitions in the domain package
func AutoMigrate(db *gorm.DB) error {
	list := models()
	all := make([]interface{}, 0, len(list))
	for _, m := range list {
		all = append(all, m.model)
	}

	if err := db.AutoMigrate(all...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}

// SafeAutoMigrate migrates models one by one and logs whether each
// table was created or updated.
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()
	list := models()

	logger.Info("Starting safe auto-migration",
		zap.Int("total_models", len(list)),
	)

	for _, m := range list {
		tableExists := migrator.HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", tableExists),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}

		logger.Info("Successfully migrated table",
			zap.String("table", m.tableName),
			zap.Bool("was_existing", tableExists),
		)
	}

	logger.Info("Safe auto-migration completed successfully",
		zap.Int("tables_migrated", len(list)),
	)

	return nil
}

// SafeAutoMigrateWithRetry runs SafeAutoMigrate with retry logic
// It attempts migration up to maxRetries times with linear backoff
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = SafeAutoMigrate(db, logger)
		if err == nil {
			return nil
		}

		if attempt < maxRetries {
			backoffDuration := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying...",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Duration("backoff", backoffDuration),
				zap.Error(err),
			)
			time.Sleep(backoffDuration)
		} else {
			logger.Error("Migration failed after all retry attempts",
				zap.Int("total_attempts", maxRetries),
				zap.Error(err),
			)
		}
	}

	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
