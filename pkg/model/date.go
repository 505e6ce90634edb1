package model

import "time"

// DateLayout is the wire format for calendar dates. Reservations are
// date-granular; the shift governs intra-day allocation.
const DateLayout = "2006-01-02"

// Day normalizes a timestamp to midnight UTC so that date comparisons
// are exact regardless of the clock component of the input.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar date in DateLayout, normalized to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// SpanDays returns the inclusive length of [start, end] in whole days.
// A reservation from 2025-01-01 to 2025-01-05 spans 5 days.
func SpanDays(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours()/24) + 1
}

// RangesOverlap reports whether two inclusive date ranges share at least
// one calendar day.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !Day(aStart).After(Day(bEnd)) && !Day(aEnd).Before(Day(bStart))
}
