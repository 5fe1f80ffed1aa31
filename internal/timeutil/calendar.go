package timeutil

import "time"

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns the first day of the month at 00:00:00 in the same timezone
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of days in the month containing t.
// Day 0 of the following month is the last day of this one.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// AddMonths moves month by delta months and pins the result to day 1.
// Pinning first means Jan 31 + 1 lands on Feb 1 instead of rolling into March.
func AddMonths(month time.Time, delta int) time.Time {
	first := StartOfMonth(month)
	return time.Date(first.Year(), first.Month()+time.Month(delta), 1, 0, 0, 0, 0, first.Location())
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}
