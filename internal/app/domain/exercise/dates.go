package exercise

import (
	"strings"
	"time"
)

// DayLayout is the human readable day format used in responses,
// e.g. "Sun Jan 01 2023".
const DayLayout = "Mon Jan 02 2006"

// dateLayouts are tried in order. Inputs without an offset are read as UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006/01/02",
	DayLayout,
	"Mon Jan 2 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

// ParseDate reads a calendar date or timestamp. The result is in UTC.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// StartOfDay returns 00:00:00.000 UTC of t's UTC day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns 23:59:59.999 UTC of t's UTC day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Millisecond)
}

// FormatDay renders t's UTC day with DayLayout.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayLayout)
}
