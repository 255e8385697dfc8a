package domain

import (
	"strings"
)

// Column identifies one fixed column of the advanced asset index.
type Column string

// ColumnName and related constants enumerate the fixed index columns.
const (
	ColumnName             Column = "name"
	ColumnID               Column = "id"
	ColumnQRID             Column = "qrId"
	ColumnStatus           Column = "status"
	ColumnDescription      Column = "description"
	ColumnValuation        Column = "valuation"
	ColumnCreatedAt        Column = "createdAt"
	ColumnCategory         Column = "category"
	ColumnTags             Column = "tags"
	ColumnLocation         Column = "location"
	ColumnKit              Column = "kit"
	ColumnCustody          Column = "custody"
	ColumnAvailableToBook  Column = "availableToBook"
	ColumnUpcomingReminder Column = "upcomingReminder"
	ColumnActions          Column = "actions"
)

// CustomFieldPrefix marks a column key that references a custom field by name.
const CustomFieldPrefix = "cf_"

var fixedColumns = []Column{
	ColumnName,
	ColumnID,
	ColumnQRID,
	ColumnStatus,
	ColumnDescription,
	ColumnValuation,
	ColumnCreatedAt,
	ColumnCategory,
	ColumnTags,
	ColumnLocation,
	ColumnKit,
	ColumnCustody,
	ColumnAvailableToBook,
	ColumnUpcomingReminder,
	ColumnActions,
}

var columnLabels = map[Column]string{
	ColumnName:             "Name",
	ColumnID:               "ID",
	ColumnQRID:             "QR ID",
	ColumnStatus:           "Status",
	ColumnDescription:      "Description",
	ColumnValuation:        "Value",
	ColumnCreatedAt:        "Created at",
	ColumnCategory:         "Category",
	ColumnTags:             "Tags",
	ColumnLocation:         "Location",
	ColumnKit:              "Kit",
	ColumnCustody:          "Custody",
	ColumnAvailableToBook:  "Available to book",
	ColumnUpcomingReminder: "Upcoming reminder",
	ColumnActions:          "Actions",
}

// FixedColumns returns every fixed column in display order.
func FixedColumns() []Column {
	return append([]Column(nil), fixedColumns...)
}

// Valid reports whether the column is one of the fixed columns.
func (c Column) Valid() bool {
	_, ok := columnLabels[c]
	return ok
}

// Label returns the header label for the column.
func (c Column) Label() string {
	if label, ok := columnLabels[c]; ok {
		return label
	}
	return string(c)
}

// ColumnKey is either a fixed column or a custom field referenced by name.
type ColumnKey struct {
	fixed Column
	field string
}

// FixedColumnKey wraps a fixed column.
func FixedColumnKey(c Column) ColumnKey {
	return ColumnKey{fixed: c}
}

// CustomFieldColumnKey references the custom field with the given name.
func CustomFieldColumnKey(name string) ColumnKey {
	return ColumnKey{field: strings.TrimSpace(name)}
}

// ParseColumnKey parses "name", "createdAt" or "cf_<field name>". Unrecognised
// fixed keys are kept verbatim; see ColumnKey.Known.
func ParseColumnKey(raw string) (ColumnKey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ColumnKey{}, ErrInvalidColumnKey
	}
	if name, ok := strings.CutPrefix(raw, CustomFieldPrefix); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return ColumnKey{}, ErrInvalidColumnKey
		}
		return CustomFieldColumnKey(name), nil
	}
	return FixedColumnKey(Column(raw)), nil
}

// IsCustomField reports whether the key references a custom field.
func (k ColumnKey) IsCustomField() bool {
	return k.field != ""
}

// Known reports whether the key is a custom field or one of the fixed columns.
func (k ColumnKey) Known() bool {
	return k.IsCustomField() || k.fixed.Valid()
}

// CustomFieldName returns the referenced custom field name, or "".
func (k ColumnKey) CustomFieldName() string {
	return k.field
}

// Fixed returns the fixed column, or "" for custom field keys.
func (k ColumnKey) Fixed() Column {
	if k.IsCustomField() {
		return ""
	}
	return k.fixed
}

// String returns the wire form of the key.
func (k ColumnKey) String() string {
	if k.IsCustomField() {
		return CustomFieldPrefix + k.field
	}
	return string(k.fixed)
}

// Label returns the header label for the key.
func (k ColumnKey) Label() string {
	if k.IsCustomField() {
		return k.field
	}
	return k.fixed.Label()
}

// MarshalText implements encoding.TextMarshaler.
func (k ColumnKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ColumnKey) UnmarshalText(text []byte) error {
	parsed, err := ParseColumnKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseColumnKeys parses a list of keys, dropping duplicates while keeping order.
func ParseColumnKeys(raw []string) ([]ColumnKey, error) {
	out := make([]ColumnKey, 0, len(raw))
	seen := map[string]struct{}{}
	for _, item := range raw {
		key, err := ParseColumnKey(item)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[key.String()]; ok {
			continue
		}
		seen[key.String()] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}
