package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/dto"
	"nexus-project-api/internal/response"
)

func TestCustomFieldService_CreateCustomField(t *testing.T) {
	f := newFixture(t)
	owner := f.user("alice")
	bob := f.user("bob")
	ws := f.workspace(owner, "W")
	f.member(ws, bob, domain.RoleNameMember, false)
	svc := NewCustomFieldService(f.store, f.logger)
	ctx := context.Background()

	field, err := svc.CreateCustomField(ctx, owner.ID, ws.Slug, &dto.CreateCustomFieldRequest{
		Name:      "Sprint",
		FieldType: "DROPDOWN",
		Options:   []string{" S1 ", "", "S2"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FieldTypeDropdown, field.FieldType)
	require.Len(t, field.Options, 2)
	assert.Equal(t, "S1", field.Options[0].Value)
	assert.Equal(t, "S2", field.Options[1].Value)

	tests := []struct {
		name     string
		userID   uuid.UUID
		req      *dto.CreateCustomFieldRequest
		wantCode string
	}{
		{"실패: 같은 이름의 필드", owner.ID, &dto.CreateCustomFieldRequest{Name: "Sprint", FieldType: "TEXT"}, response.ErrCodeConflict},
		{"실패: 옵션 없는 DROPDOWN", owner.ID, &dto.CreateCustomFieldRequest{Name: "Stage", FieldType: "DROPDOWN", Options: []string{" "}}, response.ErrCodeValidation},
		{"실패: 중복 옵션", owner.ID, &dto.CreateCustomFieldRequest{Name: "Stage", FieldType: "DROPDOWN", Options: []string{"a", "a "}}, response.ErrCodeValidation},
		{"실패: TEXT 필드에 옵션", owner.ID, &dto.CreateCustomFieldRequest{Name: "Notes", FieldType: "TEXT", Options: []string{"a"}}, response.ErrCodeValidation},
		{"실패: 알 수 없는 타입", owner.ID, &dto.CreateCustomFieldRequest{Name: "Flag", FieldType: "BOOLEAN"}, response.ErrCodeValidation},
		{"실패: owner가 아닌 멤버", bob.ID, &dto.CreateCustomFieldRequest{Name: "Points", FieldType: "NUMBER"}, response.ErrCodeForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCustomField(ctx, tt.userID, ws.Slug, tt.req)
			assert.Equal(t, tt.wantCode, appErrorCode(err))
		})
	}

	list, err := svc.ListCustomFields(ctx, bob.ID, ws.Slug)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sprint", list[0].Name)
}

func TestFieldRegistry_Parse(t *testing.T) {
	optionID := uuid.New()
	dropdown := &domain.CustomField{
		Name:      "Sprint",
		FieldType: domain.FieldTypeDropdown,
		Options:   []domain.FieldOption{{BaseModel: domain.BaseModel{ID: optionID}, Value: "S1"}},
	}
	r := NewFieldRegistry()

	tests := []struct {
		name    string
		field   *domain.CustomField
		raw     string
		want    FieldValue
		wantErr bool
	}{
		{"text", &domain.CustomField{FieldType: domain.FieldTypeText}, "hello", FieldValue{Kind: domain.FieldTypeText, Text: "hello"}, false},
		{"number", &domain.CustomField{FieldType: domain.FieldTypeNumber}, " 2.5 ", FieldValue{Kind: domain.FieldTypeNumber, Number: 2.5}, false},
		{"not a number", &domain.CustomField{FieldType: domain.FieldTypeNumber}, "two", FieldValue{}, true},
		{"bad date", &domain.CustomField{FieldType: domain.FieldTypeDate}, "15/06/2024", FieldValue{}, true},
		{"option by value", dropdown, "S1", FieldValue{Kind: domain.FieldTypeDropdown, OptionID: optionID}, false},
		{"option by id", dropdown, optionID.String(), FieldValue{Kind: domain.FieldTypeDropdown, OptionID: optionID}, false},
		{"unknown option", dropdown, "S9", FieldValue{}, true},
		{"unsupported type", &domain.CustomField{FieldType: "BOOLEAN"}, "true", FieldValue{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Parse(tt.field, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldRegistry_DateRoundTrip(t *testing.T) {
	field := &domain.CustomField{Name: "Launch", FieldType: domain.FieldTypeDate}
	v, err := NewFieldRegistry().Parse(field, "2024-06-30")
	require.NoError(t, err)

	row := &domain.CustomFieldValue{}
	text := "stale"
	row.ValueText = &text
	v.Apply(row)
	assert.Nil(t, row.ValueText)
	require.NotNil(t, row.ValueDate)

	rendered := renderFieldValue(field, row)
	assert.Equal(t, "2024-06-30", rendered.Display)
}

func TestFieldRegistry_Register(t *testing.T) {
	r := NewFieldRegistry()
	r.Register(domain.FieldTypeText, func(field *domain.CustomField, raw string) (FieldValue, error) {
		return FieldValue{Kind: domain.FieldTypeText, Text: "custom:" + raw}, nil
	})
	v, err := r.Parse(&domain.CustomField{FieldType: domain.FieldTypeText}, "x")
	require.NoError(t, err)
	assert.Equal(t, "custom:x", v.Text)
}
