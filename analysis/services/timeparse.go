package services

import (
	"strings"
	"time"
)

// The export uses UK/European day-first timestamps. Non-padded layout
// elements also accept zero-padded values, so "09/01/2026 7:30" and
// "9/1/2026 07:30" both parse.
var timestampLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2-1-2006",
	"2/1/2006 3:04 PM",
}

// ParseTimestamp interprets a raw cell with day-before-month convention.
// Empty and unparseable input both yield nil rather than an error; the row
// validator decides which of those is a quarantine reason.
func ParseTimestamp(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return &ts
		}
	}
	return nil
}

// ISOWeek returns the ISO-8601 week number and ISO year (Monday-start) for
// a timestamp, or (0, 0, false) when the timestamp is nil.
func ISOWeek(ts *time.Time) (week int, isoYear int, ok bool) {
	if ts == nil {
		return 0, 0, false
	}
	isoYear, week = ts.ISOWeek()
	return week, isoYear, true
}

// DurationHours returns (end - start) in hours. Either endpoint missing
// yields 0. Negative results are not clamped: a shift entered with end
// before start contributes a negative duration, which downstream totals
// tolerate the same way the zero case is tolerated.
func DurationHours(start, end *time.Time) float64 {
	if start == nil || end == nil {
		return 0
	}
	return end.Sub(*start).Hours()
}
