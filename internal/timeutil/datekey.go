// Package timeutil holds the date and clock helpers shared by the planner.
// Every function is pure: callers pass the current time in explicitly.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateKeyLayout is the time layout of a date key ("YYYY-MM-DD").
const DateKeyLayout = "2006-01-02"

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Clock returns the current time. Registries and the controller take a Clock
// so tests can pin "now".
type Clock func() time.Time

// SystemClock is the wall clock of the device.
func SystemClock() time.Time {
	return time.Now()
}

// DateKey formats t as "YYYY-MM-DD" from its local calendar fields.
// UTC fields are never used, so a late-evening time does not roll over
// into the next day.
func DateKey(t time.Time) string {
	y, m, d := t.Local().Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseDateKey parses a "YYYY-MM-DD" key into local midnight of that day.
// Malformed strings and calendar-impossible dates (2024-02-30, 2024-13-01)
// report false. It never returns an error.
func ParseDateKey(s string) (time.Time, bool) {
	if !dateKeyPattern.MatchString(s) {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(s[0:4])
	month, _ := strconv.Atoi(s[5:7])
	day, _ := strconv.Atoi(s[8:10])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes overflow (Feb 30 -> Mar 1), so re-deriving the
	// key catches impossible dates.
	if DateKey(t) != s {
		return time.Time{}, false
	}
	return t, true
}

// IsDateKey reports whether s is a valid date key.
func IsDateKey(s string) bool {
	_, ok := ParseDateKey(s)
	return ok
}

// Today returns the date key of now.
func Today(now time.Time) string {
	return DateKey(now)
}

// Tomorrow returns the date key of the day after now.
func Tomorrow(now time.Time) string {
	return DateKey(StartOfDay(now.Local()).AddDate(0, 0, 1))
}

// NormalizeDateKey returns s and its parsed day when s is a valid key,
// otherwise today's key and day.
func NormalizeDateKey(s string, now time.Time) (string, time.Time) {
	if t, ok := ParseDateKey(s); ok {
		return s, t
	}
	today := StartOfDay(now.Local())
	return DateKey(today), today
}
