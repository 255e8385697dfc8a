package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNewAssetValidation(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if _, err := NewAsset(AssetInput{OrganizationID: "o1", Title: "Drill"}, now); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := NewAsset(AssetInput{ID: "a1", OrganizationID: "o1", Title: "  "}, now); !errors.Is(err, ErrInvalidTitle) {
		t.Fatalf("expected ErrInvalidTitle, got %v", err)
	}
	if _, err := NewAsset(AssetInput{ID: "a1", OrganizationID: "o1", Title: "Drill", Status: "LOST"}, now); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	asset, err := NewAsset(AssetInput{ID: "a1", OrganizationID: "o1", Title: " Drill "}, now)
	if err != nil {
		t.Fatalf("NewAsset() error = %v", err)
	}
	if asset.Title != "Drill" || asset.Status != AssetStatusAvailable || asset.QRID != "a1" {
		t.Fatalf("unexpected asset defaults %#v", asset)
	}
}

func TestNewAssetRejectsDuplicateCustomFieldNames(t *testing.T) {
	field := CustomField{ID: "f1", Name: "Serial", Type: CustomFieldTypeText}
	_, err := NewAsset(AssetInput{
		ID:             "a1",
		OrganizationID: "o1",
		Title:          "Drill",
		CustomFields: []CustomFieldValue{
			{ID: "v1", CustomField: field, Value: CustomFieldRaw{Raw: "A"}},
			{ID: "v2", CustomField: field, Value: CustomFieldRaw{Raw: "B"}},
		},
	}, time.Now())
	if !errors.Is(err, ErrDuplicateCustomField) {
		t.Fatalf("expected ErrDuplicateCustomField, got %v", err)
	}
}

func TestAssetCustomFieldValueLookup(t *testing.T) {
	asset := Asset{CustomFields: []CustomFieldValue{
		{ID: "v1", CustomField: CustomField{Name: "Serial"}, Value: CustomFieldRaw{Raw: "SN-1"}},
	}}
	if _, ok := asset.CustomFieldValue("Missing"); ok {
		t.Fatal("expected missing field lookup to fail")
	}
	v, ok := asset.CustomFieldValue("Serial")
	if !ok || v.ID != "v1" {
		t.Fatalf("unexpected lookup result %#v, %v", v, ok)
	}
}

func TestParseColumnKey(t *testing.T) {
	cases := []struct {
		raw        string
		wantErr    bool
		wantString string
		wantCustom bool
		wantLabel  string
		wantKnown  bool
	}{
		{raw: "name", wantString: "name", wantLabel: "Name", wantKnown: true},
		{raw: " upcomingReminder ", wantString: "upcomingReminder", wantLabel: "Upcoming reminder", wantKnown: true},
		{raw: "cf_Serial number", wantString: "cf_Serial number", wantCustom: true, wantLabel: "Serial number", wantKnown: true},
		{raw: "assignedTo", wantString: "assignedTo", wantLabel: "assignedTo"},
		{raw: "cf_", wantErr: true},
		{raw: "  ", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tc := range cases {
		key, err := ParseColumnKey(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidColumnKey) {
				t.Fatalf("ParseColumnKey(%q) expected ErrInvalidColumnKey, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseColumnKey(%q) error = %v", tc.raw, err)
		}
		if key.String() != tc.wantString {
			t.Fatalf("ParseColumnKey(%q) = %q, want %q", tc.raw, key.String(), tc.wantString)
		}
		if key.IsCustomField() != tc.wantCustom {
			t.Fatalf("ParseColumnKey(%q) custom = %t", tc.raw, key.IsCustomField())
		}
		if key.Label() != tc.wantLabel {
			t.Fatalf("ParseColumnKey(%q) label = %q, want %q", tc.raw, key.Label(), tc.wantLabel)
		}
		if key.Known() != tc.wantKnown {
			t.Fatalf("ParseColumnKey(%q) known = %t, want %t", tc.raw, key.Known(), tc.wantKnown)
		}
	}
}

func TestColumnKeyTextRoundTripInJSON(t *testing.T) {
	keys := []ColumnKey{FixedColumnKey(ColumnStatus), CustomFieldColumnKey("Warranty")}
	encoded, err := json.Marshal(keys)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(encoded) != `["status","cf_Warranty"]` {
		t.Fatalf("unexpected encoding %s", encoded)
	}
	var decoded []ColumnKey
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded[1].CustomFieldName() != "Warranty" || decoded[0].Fixed() != ColumnStatus {
		t.Fatalf("unexpected decoded keys %#v", decoded)
	}
}

func TestParseColumnKeysDropsDuplicates(t *testing.T) {
	keys, err := ParseColumnKeys([]string{"name", "status", "name", "cf_A", "cf_A"})
	if err != nil {
		t.Fatalf("ParseColumnKeys() error = %v", err)
	}
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(keys))
	}
}

func TestCustomFieldRawAmount(t *testing.T) {
	cases := []struct {
		raw  any
		want float64
		ok   bool
	}{
		{raw: 42.5, want: 42.5, ok: true},
		{raw: 7, want: 7, ok: true},
		{raw: json.Number("12.25"), want: 12.25, ok: true},
		{raw: " 3.5 ", want: 3.5, ok: true},
		{raw: "abc", ok: false},
		{raw: nil, ok: false},
	}
	for _, tc := range cases {
		got, ok := CustomFieldRaw{Raw: tc.raw}.Amount()
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("Amount(%#v) = %v, %v; want %v, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseCustomFieldRaw(t *testing.T) {
	raw, err := ParseCustomFieldRaw(CustomFieldTypeDate, "2026-04-05")
	if err != nil {
		t.Fatalf("ParseCustomFieldRaw(date) error = %v", err)
	}
	if raw.ValueDate == nil || raw.ValueDate.Day() != 5 {
		t.Fatalf("unexpected date value %#v", raw)
	}
	if _, err := ParseCustomFieldRaw(CustomFieldTypeAmount, "ten"); !errors.Is(err, ErrInvalidFieldValue) {
		t.Fatalf("expected ErrInvalidFieldValue, got %v", err)
	}
	b, err := ParseCustomFieldRaw(CustomFieldTypeBoolean, "true")
	if err != nil || b.ValueBoolean == nil || !*b.ValueBoolean {
		t.Fatalf("unexpected boolean value %#v, %v", b, err)
	}
}

func TestTeamMemberDisplayName(t *testing.T) {
	m := TeamMember{Name: "Front desk"}
	if m.DisplayName() != "Front desk" {
		t.Fatalf("unexpected display name %q", m.DisplayName())
	}
	m.User = &User{FirstName: "Ada", LastName: "Lovelace"}
	if m.DisplayName() != "Ada Lovelace" {
		t.Fatalf("unexpected user display name %q", m.DisplayName())
	}
}

func TestParseRoles(t *testing.T) {
	roles, err := ParseRoles([]string{"admin", " ", "ADMIN", "self_service"})
	if err != nil {
		t.Fatalf("ParseRoles() error = %v", err)
	}
	if len(roles) != 2 || roles[0] != RoleAdmin || roles[1] != RoleSelfService {
		t.Fatalf("unexpected roles %#v", roles)
	}
	if _, err := ParseRoles([]string{"guest"}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestNewCategoryValidatesColor(t *testing.T) {
	if _, err := NewCategory("c1", "Tools", "red"); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
	if _, err := NewCategory("c1", "Tools", "#ff8800"); err != nil {
		t.Fatalf("NewCategory() error = %v", err)
	}
}
