package util

import (
	"strconv"
	"time"
)

// naiveLayouts cover ISO timestamps emitted without a zone offset
// (Python's datetime.isoformat on a naive value).
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseTime tries RFC3339, RFC3339Nano, naive ISO and unix seconds. Returns (t, true) if any worked.
// Naive values are read in loc; a nil loc means time.Local.
func ParseTime(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, loc *time.Location, def time.Time) time.Time {
	if t, ok := ParseTime(s, loc); ok {
		return t
	}
	return def
}
