package cell

import (
	"time"

	"github.com/hylla/assetdex/internal/domain"
	"github.com/hylla/assetdex/internal/format"
	"github.com/hylla/assetdex/internal/permission"
)

// Mode selects the index layout.
type Mode string

// Mode values.
const (
	ModeSimple   Mode = "simple"
	ModeAdvanced Mode = "advanced"
)

// Preferences holds the user-toggled view flags.
type Preferences struct {
	ShowImage    bool
	FreezeColumn bool
	Mode         Mode
}

// Viewer is the context for one render pass. Build it once per page.
type Viewer struct {
	Locale      string
	TimeZone    string
	Currency    string
	Roles       []domain.Role
	Prefs       Preferences
	TrackingRef string
	Now         time.Time

	// Can evaluates a permission for Roles. Nil denies everything.
	Can func(roles []domain.Role, entity permission.Entity, action permission.Action) bool
	// FormatCurrency overrides format.Currency.
	FormatCurrency func(amount float64, locale, code string) string
	// FormatDate overrides format.Date.
	FormatDate func(t time.Time, locale, timeZone string) string
	// DisplayValue overrides format.CustomFieldDisplay.
	DisplayValue func(fieldType domain.CustomFieldType, value domain.CustomFieldRaw, locale, timeZone string) string
}

// NewViewer returns a viewer wired to the default formatters and role matrix.
func NewViewer(locale, timeZone, currency string, roles []domain.Role, prefs Preferences, now time.Time) Viewer {
	if prefs.Mode == "" {
		prefs.Mode = ModeAdvanced
	}
	return Viewer{
		Locale:      locale,
		TimeZone:    timeZone,
		Currency:    currency,
		Roles:       append([]domain.Role(nil), roles...),
		Prefs:       prefs,
		TrackingRef: DefaultTrackingRef,
		Now:         now,
		Can:         permission.HasPermission,
	}
}

// DefaultTrackingRef is appended to outbound custom field links.
const DefaultTrackingRef = "assetdex"

func (v Viewer) can(entity permission.Entity, action permission.Action) bool {
	if v.Can == nil {
		return false
	}
	return v.Can(v.Roles, entity, action)
}

func (v Viewer) currency(amount float64) string {
	if v.FormatCurrency != nil {
		return v.FormatCurrency(amount, v.Locale, v.Currency)
	}
	return format.Currency(amount, v.Locale, v.Currency)
}

func (v Viewer) date(t time.Time) string {
	if v.FormatDate != nil {
		return v.FormatDate(t, v.Locale, v.TimeZone)
	}
	return format.Date(t, v.Locale, v.TimeZone)
}

func (v Viewer) displayValue(fieldType domain.CustomFieldType, value domain.CustomFieldRaw) string {
	if v.DisplayValue != nil {
		return v.DisplayValue(fieldType, value, v.Locale, v.TimeZone)
	}
	return format.CustomFieldDisplay(fieldType, value, v.Locale, v.TimeZone)
}

// FreezesTitle reports whether the name column is pinned while scrolling.
func (v Viewer) FreezesTitle() bool {
	return v.Prefs.Mode == ModeAdvanced && v.Prefs.FreezeColumn
}
