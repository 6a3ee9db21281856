package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// providerLayouts are the timestamp shapes seen from upstream providers.
// ESPN frequently drops the seconds ("2024-01-02T00:30Z").
var providerLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseProviderTime parses any of the provider timestamp layouts. Values
// without a zone are treated as UTC.
func ParseProviderTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	var lastErr error
	for _, layout := range providerLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// NormalizeTimestamp re-renders a provider timestamp as RFC3339 UTC. Values
// that cannot be parsed are passed through unchanged.
func NormalizeTimestamp(value string) string {
	parsed, err := ParseProviderTime(value)
	if err != nil {
		return value
	}
	return parsed.Format(time.RFC3339)
}
