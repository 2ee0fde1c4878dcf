package maintenance

import (
	"strings"
	"time"
)

// timestampLayouts covers the ISO variants that appear on stored logs:
// RFC3339 with or without fractional seconds, offset-less timestamps from
// manual entry, and bare dates.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp parses a stored ISO timestamp. The second return value is
// false for empty or malformed input; callers fall back to their documented
// default instead of failing the computation.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// intValue reads an optional stored counter, treating absence as zero.
func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func intPtr(v int) *int {
	return &v
}
