package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/policy"
	"nexus-project-api/internal/repository"
)

// CustomFieldService defines the interface for custom field definitions
type CustomFieldService interface {
	CreateCustomField(ctx context.Context, userID uuid.UUID, slug string, req *dto.CreateCustomFieldRequest) (*dto.CustomFieldResponse, error)
	ListCustomFields(ctx context.Context, userID uuid.UUID, slug string) ([]dto.CustomFieldResponse, error)
}

type customFieldServiceImpl struct {
	store  repository.Store
	logger *zap.Logger
}

// NewCustomFieldService creates a new instance of CustomFieldService
func NewCustomFieldService(store repository.Store, logger *zap.Logger) CustomFieldService {
	return &customFieldServiceImpl{store: store, logger: logger}
}

// CreateCustomField defines a new task field for the workspace. Only the
// owner may do it.
func (s *customFieldServiceImpl) CreateCustomField(ctx context.Context, userID uuid.UUID, slug string, req *dto.CreateCustomFieldRequest) (*dto.CustomFieldResponse, error) {
	ws, sub, err := workspaceBySlug(ctx, s.store, userID, slug)
	if err != nil {
		return nil, err
	}
	if d := sub.Authorize(policy.ActionManageWorkspace, policy.Resource{}); !d.Allowed() {
		return nil, forbidden(d)
	}

	// Validate field type and options
	fieldType := domain.FieldType(req.FieldType)
	if !fieldType.IsValid() {
		return nil, validation(fmt.Sprintf("Invalid field type: %s", req.FieldType))
	}
	options, err := normalizeOptions(fieldType, req.Options)
	if err != nil {
		return nil, err
	}

	field := &domain.CustomField{
		WorkspaceID: ws.ID,
		Name:        strings.TrimSpace(req.Name),
		FieldType:   fieldType,
	}
	for i, v := range options {
		field.Options = append(field.Options, domain.FieldOption{Value: v, DisplayOrder: i})
	}

	if err := s.store.CustomFields().Create(ctx, field); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, conflict(fmt.Sprintf("A field named '%s' already exists", field.Name))
		}
		return nil, internal("Failed to create custom field", err)
	}

	s.logger.Info("Custom field created",
		zap.String("workspace_id", ws.ID.String()),
		zap.String("field_id", field.ID.String()),
		zap.String("field_type", string(fieldType)),
	)

	resp := dto.NewCustomFieldResponse(field)
	return &resp, nil
}

// normalizeOptions trims the dropdown values and rejects duplicates.
// Non-dropdown fields take no options.
func normalizeOptions(t domain.FieldType, raw []string) ([]string, error) {
	if t != domain.FieldTypeDropdown {
		if len(raw) > 0 {
			return nil, validation("Options are only allowed for DROPDOWN fields")
		}
		return nil, nil
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if seen[v] {
			return nil, validation(fmt.Sprintf("Duplicate option '%s'", v))
		}
		seen[v] = true
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, validation("A DROPDOWN field needs at least one option")
	}
	return out, nil
}

func (s *customFieldServiceImpl) ListCustomFields(ctx context.Context, userID uuid.UUID, slug string) ([]dto.CustomFieldResponse, error) {
	ws, _, err := workspaceBySlug(ctx, s.store, userID, slug)
	if err != nil {
		return nil, err
	}
	fields, err := s.store.CustomFields().ListByWorkspace(ctx, ws.ID)
	if err != nil {
		return nil, internal("Failed to load custom fields", err)
	}
	out := make([]dto.CustomFieldResponse, 0, len(fields))
	for _, f := range fields {
		out = append(out, dto.NewCustomFieldResponse(f))
	}
	return out, nil
}
