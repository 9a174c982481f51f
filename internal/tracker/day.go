// Package tracker implements the daily aggregation core: day bucketing,
// target resolution, meal and metric rollup, and derived stats. Everything
// here is pure computation over the document models; persistence stays in
// the handlers.
package tracker

import "time"

// DayKeyFormat is the composite-key date layout stored on day buckets.
const DayKeyFormat = "2006-01-02"

// DayBounds returns the [midnight, next midnight) range containing t,
// in t's location.
func DayBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 0, 1)
	return start, end
}

// DayKey returns the "2006-01-02" key for the calendar day containing t.
func DayKey(t time.Time) string {
	return t.Format(DayKeyFormat)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
