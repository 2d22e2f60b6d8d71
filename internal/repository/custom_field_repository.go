package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nexus-project-api/internal/domain"
)

// CustomFieldRepository defines the interface for custom field definitions and values
type CustomFieldRepository interface {
	// Create inserts the field together with its options
	Create(ctx context.Context, field *domain.CustomField) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CustomField, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.CustomField, error)
	// FindOption returns the option if it belongs to fieldID, nil, nil otherwise
	FindOption(ctx context.Context, fieldID, optionID uuid.UUID) (*domain.FieldOption, error)
	ListValuesByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.CustomFieldValue, error)
	// UpsertValue writes the value keyed by (task, field)
	UpsertValue(ctx context.Context, value *domain.CustomFieldValue) error
}

type customFieldRepositoryImpl struct {
	db *gorm.DB
}

// NewCustomFieldRepository creates a new instance of CustomFieldRepository
func NewCustomFieldRepository(db *gorm.DB) CustomFieldRepository {
	return &customFieldRepositoryImpl{db: db}
}

func (r *customFieldRepositoryImpl) Create(ctx context.Context, field *domain.CustomField) error {
	return r.db.WithContext(ctx).Create(field).Error
}

func orderedOptions(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC")
}

func (r *customFieldRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.CustomField, error) {
	var field domain.CustomField
	if err := r.db.WithContext(ctx).
		Preload("Options", orderedOptions).
		Where("id = ?", id).
		First(&field).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *customFieldRepositoryImpl) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*domain.CustomField, error) {
	var fields []*domain.CustomField
	if err := r.db.WithContext(ctx).
		Preload("Options", orderedOptions).
		Where("workspace_id = ?", workspaceID).
		Order("name ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *customFieldRepositoryImpl) FindOption(ctx context.Context, fieldID, optionID uuid.UUID) (*domain.FieldOption, error) {
	var option domain.FieldOption
	err := r.db.WithContext(ctx).
		Where("id = ? AND field_id = ?", optionID, fieldID).
		First(&option).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

func (r *customFieldRepositoryImpl) ListValuesByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.CustomFieldValue, error) {
	var values []*domain.CustomFieldValue
	if err := r.db.WithContext(ctx).
		Preload("Field").
		Where("task_id = ?", taskID).
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

func (r *customFieldRepositoryImpl) UpsertValue(ctx context.Context, value *domain.CustomFieldValue) error {
	return r.db.WithContext(ctx).Omit("Field").Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "task_id"}, {Name: "field_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value_text", "value_number", "value_date", "value_option_id", "updated_at",
		}),
	}).Create(value).Error
}
