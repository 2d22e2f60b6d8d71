package dto

import (
	"github.com/google/uuid"

	"nexus-project-api/internal/domain"
)

// CreateCustomFieldRequest defines a new field for the workspace's tasks
// @Description options is required for DROPDOWN fields and forbidden otherwise
type CreateCustomFieldRequest struct {
	Name      string   `json:"name" binding:"required,min=1,max=100" example:"Sprint"`
	FieldType string   `json:"field_type" binding:"required,oneof=TEXT NUMBER DATE DROPDOWN" example:"DROPDOWN"`
	Options   []string `json:"options" binding:"omitempty,dive,required,max=100" example:"S1,S2"`
}

// FieldOptionResponse represents one dropdown option
type FieldOptionResponse struct {
	ID           uuid.UUID `json:"id"`
	Value        string    `json:"value"`
	DisplayOrder int       `json:"display_order"`
}

// CustomFieldResponse represents a field definition
type CustomFieldResponse struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	FieldType domain.FieldType      `json:"field_type"`
	Options   []FieldOptionResponse `json:"options"`
}

func NewCustomFieldResponse(f *domain.CustomField) CustomFieldResponse {
	opts := make([]FieldOptionResponse, 0, len(f.Options))
	for _, o := range f.Options {
		opts = append(opts, FieldOptionResponse{ID: o.ID, Value: o.Value, DisplayOrder: o.DisplayOrder})
	}
	return CustomFieldResponse{ID: f.ID, Name: f.Name, FieldType: f.FieldType, Options: opts}
}

// CustomFieldValueResponse is a task's value for one field, rendered as text
type CustomFieldValueResponse struct {
	FieldID   uuid.UUID        `json:"field_id"`
	Name      string           `json:"name"`
	FieldType domain.FieldType `json:"field_type"`
	Value     interface{}      `json:"value"`
	Display   string           `json:"display"`
}
