package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// clockPattern matches a zero-padded 24-hour "HH:MM" time.
var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	return hours*60 + mins, true
}

// IsClock reports whether s is a well-formed "HH:MM" time.
func IsClock(s string) bool {
	return clockPattern.MatchString(s)
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesSinceMidnight returns the local wall-clock minute of t.
func MinutesSinceMidnight(t time.Time) int {
	t = t.Local()
	return t.Hour()*60 + t.Minute()
}
