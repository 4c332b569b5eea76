// Package dates parses backend timestamps and tests recency windows.
package dates

import (
	"strings"
	"time"
)

var layouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseISOOrNull parses an ISO timestamp. It reports false for empty or
// unparseable input.
func ParseISOOrNull(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// IsWithinDays reports whether value was posted within the last days days
// of now. Missing dates, missing windows and unparseable input all pass.
func IsWithinDays(value string, days int, now time.Time) bool {
	if strings.TrimSpace(value) == "" || days <= 0 {
		return true
	}
	ts, ok := ParseISOOrNull(value)
	if !ok {
		return true
	}
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	return !ts.Before(cutoff)
}
