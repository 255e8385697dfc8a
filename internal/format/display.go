package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/hylla/assetdex/internal/domain"
)

// CustomFieldDisplay resolves the text shown for a custom field value.
// AMOUNT values come back as plain numbers; currency formatting is the caller's choice.
func CustomFieldDisplay(fieldType domain.CustomFieldType, value domain.CustomFieldRaw, locale, timeZone string) string {
	switch fieldType {
	case domain.CustomFieldTypeDate:
		if value.ValueDate != nil {
			return Date(*value.ValueDate, locale, calendarZone(*value.ValueDate, timeZone))
		}
		if raw, ok := value.Raw.(string); ok {
			if d, err := time.Parse(time.DateOnly, strings.TrimSpace(raw)); err == nil {
				return Date(d, locale, "UTC")
			}
			return raw
		}
		return ""
	case domain.CustomFieldTypeBoolean:
		if value.ValueBoolean != nil {
			return YesNo(*value.ValueBoolean)
		}
		if b, ok := value.Raw.(bool); ok {
			return YesNo(b)
		}
		return ""
	case domain.CustomFieldTypeOption:
		if value.ValueOption != "" {
			return value.ValueOption
		}
	case domain.CustomFieldTypeMultilineText:
		if value.ValueMultiLineText != "" {
			return value.ValueMultiLineText
		}
	case domain.CustomFieldTypeAmount:
		if amount, ok := value.Amount(); ok {
			return strconv.FormatFloat(amount, 'f', -1, 64)
		}
	case domain.CustomFieldTypeText:
		if value.ValueText != "" {
			return value.ValueText
		}
	}
	return rawText(value.Raw)
}

// calendarZone keeps date-only values (UTC midnight) on their calendar day.
func calendarZone(t time.Time, timeZone string) string {
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return "UTC"
	}
	return timeZone
}

// YesNo renders a boolean as "Yes" or "No".
func YesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func rawText(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return YesNo(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case interface{ String() string }:
		return v.String()
	default:
		return ""
	}
}
