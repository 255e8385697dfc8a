package format

import (
	"strings"
	"time"
	_ "time/tzdata"
)

type dateLayouts struct {
	date     string
	dateTime string
}

var regionLayouts = map[string]dateLayouts{
	"en-US": {date: "1/2/2006", dateTime: "1/2/2006, 3:04 PM"},
	"en-GB": {date: "02/01/2006", dateTime: "02/01/2006, 15:04"},
	"en-CA": {date: "2006-01-02", dateTime: "2006-01-02, 3:04 PM"},
	"en-AU": {date: "02/01/2006", dateTime: "02/01/2006, 3:04 PM"},
}

var baseLayouts = map[string]dateLayouts{
	"en": {date: "1/2/2006", dateTime: "1/2/2006, 3:04 PM"},
	"de": {date: "2.1.2006", dateTime: "2.1.2006, 15:04"},
	"fr": {date: "02/01/2006", dateTime: "02/01/2006 15:04"},
	"es": {date: "2/1/2006", dateTime: "2/1/2006, 15:04"},
	"it": {date: "2/1/2006", dateTime: "2/1/2006, 15:04"},
	"nl": {date: "2-1-2006", dateTime: "2-1-2006, 15:04"},
	"pt": {date: "02/01/2006", dateTime: "02/01/2006, 15:04"},
	"pl": {date: "2.01.2006", dateTime: "2.01.2006, 15:04"},
	"sv": {date: "2006-01-02", dateTime: "2006-01-02 15:04"},
	"ja": {date: "2006/1/2", dateTime: "2006/1/2 15:04"},
	"zh": {date: "2006/1/2", dateTime: "2006/1/2 15:04"},
}

func layoutsFor(locale string) dateLayouts {
	tag := ParseLocale(locale)
	base, _ := tag.Base()
	region, _ := tag.Region()
	if l, ok := regionLayouts[base.String()+"-"+region.String()]; ok {
		return l
	}
	if l, ok := baseLayouts[base.String()]; ok {
		return l
	}
	return regionLayouts[DefaultLocale]
}

// LoadLocation resolves an IANA zone name, falling back to UTC.
func LoadLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Date renders t as a short locale date in the given time zone.
func Date(t time.Time, locale, timeZone string) string {
	if t.IsZero() {
		return ""
	}
	return t.In(LoadLocation(timeZone)).Format(layoutsFor(locale).date)
}

// DateTime renders t as a short locale date and time in the given time zone.
func DateTime(t time.Time, locale, timeZone string) string {
	if t.IsZero() {
		return ""
	}
	return t.In(LoadLocation(timeZone)).Format(layoutsFor(locale).dateTime)
}
