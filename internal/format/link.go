package format

import (
	"net/url"
	"strings"
)

// TrackingParam is the query parameter added to outbound links.
const TrackingParam = "ref"

// IsLink reports whether value is an absolute http(s) URL with a host.
func IsLink(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" || strings.ContainsAny(value, " \t\n") {
		return false
	}
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// WithTrackingRef sets the tracking parameter on href, keeping other query values.
// An empty ref or an unparsable href returns href unchanged.
func WithTrackingRef(href, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return href
	}
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	q := u.Query()
	q.Set(TrackingParam, ref)
	u.RawQuery = q.Encode()
	return u.String()
}
