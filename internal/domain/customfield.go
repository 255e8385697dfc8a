package domain

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"time"
)

// CustomFieldType is the declared type of a custom field.
type CustomFieldType string

// CustomFieldTypeText and related constants enumerate supported field types.
const (
	CustomFieldTypeText          CustomFieldType = "TEXT"
	CustomFieldTypeMultilineText CustomFieldType = "MULTILINE_TEXT"
	CustomFieldTypeOption        CustomFieldType = "OPTION"
	CustomFieldTypeBoolean       CustomFieldType = "BOOLEAN"
	CustomFieldTypeDate          CustomFieldType = "DATE"
	CustomFieldTypeAmount        CustomFieldType = "AMOUNT"
)

var customFieldTypes = []CustomFieldType{
	CustomFieldTypeText,
	CustomFieldTypeMultilineText,
	CustomFieldTypeOption,
	CustomFieldTypeBoolean,
	CustomFieldTypeDate,
	CustomFieldTypeAmount,
}

// Valid reports whether the type is one of the supported field types.
func (t CustomFieldType) Valid() bool {
	return slices.Contains(customFieldTypes, t)
}

// CustomField is an organization-defined asset attribute.
type CustomField struct {
	ID             string
	OrganizationID string
	Name           string
	HelpText       string
	Type           CustomFieldType
	Options        []string
	Active         bool
	CreatedAt      time.Time
}

// CustomFieldInput holds input values for NewCustomField.
type CustomFieldInput struct {
	ID             string
	OrganizationID string
	Name           string
	HelpText       string
	Type           CustomFieldType
	Options        []string
}

// NewCustomField constructs a new value for this package.
func NewCustomField(in CustomFieldInput, now time.Time) (CustomField, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.OrganizationID = strings.TrimSpace(in.OrganizationID)
	in.Name = strings.TrimSpace(in.Name)
	if in.ID == "" || in.OrganizationID == "" {
		return CustomField{}, ErrInvalidID
	}
	if in.Name == "" {
		return CustomField{}, ErrInvalidName
	}
	in.Type = CustomFieldType(strings.ToUpper(strings.TrimSpace(string(in.Type))))
	if !in.Type.Valid() {
		return CustomField{}, ErrInvalidFieldType
	}
	options := make([]string, 0, len(in.Options))
	for _, opt := range in.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" || slices.Contains(options, opt) {
			continue
		}
		options = append(options, opt)
	}
	return CustomField{
		ID:             in.ID,
		OrganizationID: in.OrganizationID,
		Name:           in.Name,
		HelpText:       strings.TrimSpace(in.HelpText),
		Type:           in.Type,
		Options:        options,
		Active:         true,
		CreatedAt:      now.UTC(),
	}, nil
}

// CustomFieldRaw is the stored shape of one custom field value.
type CustomFieldRaw struct {
	Raw                any        `json:"raw"`
	ValueText          string     `json:"valueText,omitempty"`
	ValueBoolean       *bool      `json:"valueBoolean,omitempty"`
	ValueDate          *time.Time `json:"valueDate,omitempty"`
	ValueMultiLineText string     `json:"valueMultiLineText,omitempty"`
	ValueOption        string     `json:"valueOption,omitempty"`
}

// Amount returns the raw value as a number when it holds one.
func (v CustomFieldRaw) Amount() (float64, bool) {
	switch raw := v.Raw.(type) {
	case float64:
		return raw, true
	case float32:
		return float64(raw), true
	case int:
		return float64(raw), true
	case int64:
		return float64(raw), true
	case json.Number:
		f, err := raw.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ParseCustomFieldRaw converts user input into the stored value for a field type.
func ParseCustomFieldRaw(fieldType CustomFieldType, input string) (CustomFieldRaw, error) {
	input = strings.TrimSpace(input)
	switch fieldType {
	case CustomFieldTypeText:
		return CustomFieldRaw{Raw: input, ValueText: input}, nil
	case CustomFieldTypeMultilineText:
		return CustomFieldRaw{Raw: input, ValueMultiLineText: input}, nil
	case CustomFieldTypeOption:
		return CustomFieldRaw{Raw: input, ValueOption: input}, nil
	case CustomFieldTypeBoolean:
		b, err := strconv.ParseBool(input)
		if err != nil {
			return CustomFieldRaw{}, ErrInvalidFieldValue
		}
		return CustomFieldRaw{Raw: b, ValueBoolean: &b}, nil
	case CustomFieldTypeDate:
		d, err := time.Parse(time.DateOnly, input)
		if err != nil {
			return CustomFieldRaw{}, ErrInvalidFieldValue
		}
		return CustomFieldRaw{Raw: input, ValueDate: &d}, nil
	case CustomFieldTypeAmount:
		f, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return CustomFieldRaw{}, ErrInvalidFieldValue
		}
		return CustomFieldRaw{Raw: f}, nil
	default:
		return CustomFieldRaw{}, ErrInvalidFieldType
	}
}

// CustomFieldValue pairs a field definition with one asset's value.
type CustomFieldValue struct {
	ID          string
	CustomField CustomField
	Value       CustomFieldRaw
}
