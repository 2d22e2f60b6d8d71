package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/dto"
)

// FieldValue is a parsed custom field value. Only the member matching
// Kind is meaningful.
type FieldValue struct {
	Kind     domain.FieldType
	Text     string
	Number   float64
	Date     time.Time
	OptionID uuid.UUID
}

// Apply stores v in the column matching its kind and clears the others
func (v FieldValue) Apply(dst *domain.CustomFieldValue) {
	dst.ValueText, dst.ValueNumber, dst.ValueDate, dst.ValueOptionID = nil, nil, nil, nil
	switch v.Kind {
	case domain.FieldTypeText:
		text := v.Text
		dst.ValueText = &text
	case domain.FieldTypeNumber:
		n := v.Number
		dst.ValueNumber = &n
	case domain.FieldTypeDate:
		d := v.Date
		dst.ValueDate = &d
	case domain.FieldTypeDropdown:
		id := v.OptionID
		dst.ValueOptionID = &id
	}
}

// FieldParser converts a raw submitted value for field
type FieldParser func(field *domain.CustomField, raw string) (FieldValue, error)

// FieldRegistry maps each field type to its parser
type FieldRegistry struct {
	parsers map[domain.FieldType]FieldParser
}

// NewFieldRegistry returns a registry with the built-in field types
func NewFieldRegistry() *FieldRegistry {
	r := &FieldRegistry{parsers: make(map[domain.FieldType]FieldParser)}
	r.Register(domain.FieldTypeText, parseTextField)
	r.Register(domain.FieldTypeNumber, parseNumberField)
	r.Register(domain.FieldTypeDate, parseDateField)
	r.Register(domain.FieldTypeDropdown, parseDropdownField)
	return r
}

// Register installs or replaces the parser of a field type
func (r *FieldRegistry) Register(t domain.FieldType, p FieldParser) {
	r.parsers[t] = p
}

// Parse validates raw against the field definition
func (r *FieldRegistry) Parse(field *domain.CustomField, raw string) (FieldValue, error) {
	p, ok := r.parsers[field.FieldType]
	if !ok {
		return FieldValue{}, fmt.Errorf("unsupported field type %q", field.FieldType)
	}
	return p(field, raw)
}

func parseTextField(_ *domain.CustomField, raw string) (FieldValue, error) {
	return FieldValue{Kind: domain.FieldTypeText, Text: raw}, nil
}

func parseNumberField(_ *domain.CustomField, raw string) (FieldValue, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return FieldValue{}, fmt.Errorf("%q is not a number", raw)
	}
	return FieldValue{Kind: domain.FieldTypeNumber, Number: n}, nil
}

func parseDateField(_ *domain.CustomField, raw string) (FieldValue, error) {
	d, err := time.Parse(dto.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return FieldValue{}, fmt.Errorf("%q is not a YYYY-MM-DD date", raw)
	}
	return FieldValue{Kind: domain.FieldTypeDate, Date: d}, nil
}

// parseDropdownField accepts an option ID or an option value of the field
func parseDropdownField(field *domain.CustomField, raw string) (FieldValue, error) {
	raw = strings.TrimSpace(raw)
	id, idErr := uuid.Parse(raw)
	for _, o := range field.Options {
		if (idErr == nil && o.ID == id) || o.Value == raw {
			return FieldValue{Kind: domain.FieldTypeDropdown, OptionID: o.ID}, nil
		}
	}
	return FieldValue{}, fmt.Errorf("%q is not an option of %s", raw, field.Name)
}

// renderFieldValue returns the typed value and its display text
func renderFieldValue(field *domain.CustomField, v *domain.CustomFieldValue) dto.CustomFieldValueResponse {
	resp := dto.CustomFieldValueResponse{FieldID: field.ID, Name: field.Name, FieldType: field.FieldType}
	switch field.FieldType {
	case domain.FieldTypeText:
		if v.ValueText != nil {
			resp.Value, resp.Display = *v.ValueText, *v.ValueText
		}
	case domain.FieldTypeNumber:
		if v.ValueNumber != nil {
			resp.Value, resp.Display = *v.ValueNumber, strconv.FormatFloat(*v.ValueNumber, 'f', -1, 64)
		}
	case domain.FieldTypeDate:
		if v.ValueDate != nil {
			s := v.ValueDate.UTC().Format(dto.DateLayout)
			resp.Value, resp.Display = s, s
		}
	case domain.FieldTypeDropdown:
		if v.ValueOptionID != nil {
			resp.Value = *v.ValueOptionID
			for _, o := range field.Options {
				if o.ID == *v.ValueOptionID {
					resp.Display = o.Value
				}
			}
		}
	}
	return resp
}
