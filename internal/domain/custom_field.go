package domain

import (
	"time"

	"github.com/google/uuid"
)

// FieldType is the value type of a custom field
type FieldType string

const (
	FieldTypeText     FieldType = "TEXT"
	FieldTypeNumber   FieldType = "NUMBER"
	FieldTypeDate     FieldType = "DATE"
	FieldTypeDropdown FieldType = "DROPDOWN"
)

// IsValid reports whether t is a known field type
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeDropdown:
		return true
	}
	return false
}

// CustomField is a per-workspace field definition attached to tasks
type CustomField struct {
	BaseModel
	WorkspaceID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:uq_custom_fields_workspace_name,priority:1" json:"workspace_id"`
	Name        string        `gorm:"type:varchar(100);not null;uniqueIndex:uq_custom_fields_workspace_name,priority:2" json:"name"`
	FieldType   FieldType     `gorm:"type:varchar(20);not null" json:"field_type"`
	Options     []FieldOption `gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

// FieldOption is a selectable value of a DROPDOWN field
type FieldOption struct {
	BaseModel
	FieldID      uuid.UUID `gorm:"type:uuid;not null;index:idx_field_options_field_id;uniqueIndex:uq_field_options_field_value,priority:1" json:"field_id"`
	Value        string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_field_options_field_value,priority:2" json:"value"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
}

// CustomFieldValue stores one task's value for one field.
// Exactly one Value* column is populated, chosen by the field type.
type CustomFieldValue struct {
	BaseModel
	TaskID        uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_custom_field_values_task_field,priority:1" json:"task_id"`
	FieldID       uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_custom_field_values_task_field,priority:2;index:idx_custom_field_values_field_id" json:"field_id"`
	ValueText     *string      `gorm:"type:text" json:"value_text,omitempty"`
	ValueNumber   *float64     `json:"value_number,omitempty"`
	ValueDate     *time.Time   `gorm:"type:timestamp" json:"value_date,omitempty"`
	ValueOptionID *uuid.UUID   `gorm:"type:uuid" json:"value_option_id,omitempty"`
	Field         *CustomField `gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for CustomField
func (CustomField) TableName() string {
	return "custom_fields"
}

// TableName specifies the table name for FieldOption
func (FieldOption) TableName() string {
	return "field_options"
}

// TableName specifies the table name for CustomFieldValue
func (CustomFieldValue) TableName() string {
	return "custom_field_values"
}
