package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Locale selects how date labels are rendered.
type Locale string

const (
	LocaleEnglish     Locale = "en"
	LocaleTraditional Locale = "zh-TW"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = LocaleEnglish

// ParseLocale maps a config value onto a known Locale.
func ParseLocale(s string) (Locale, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "en", "en-us", "en-gb":
		return LocaleEnglish, true
	case "zh-tw", "zh_tw", "zh":
		return LocaleTraditional, true
	}
	return DefaultLocale, false
}

// Label renders the long-form label of a day.
func (l Locale) Label(t time.Time) string {
	t = t.Local()
	if l == LocaleTraditional {
		return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
	}
	return t.Format("Monday, January 2, 2006")
}

// MonthLabel renders the heading of a calendar month.
func (l Locale) MonthLabel(t time.Time) string {
	t = t.Local()
	if l == LocaleTraditional {
		return fmt.Sprintf("%d年%d月", t.Year(), int(t.Month()))
	}
	return t.Format("January 2006")
}

var weekdayHeaders = map[Locale][]string{
	LocaleEnglish:     {"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
	LocaleTraditional: {"日", "一", "二", "三", "四", "五", "六"},
}

// WeekdayHeaders returns the Sunday-first column headings of a month grid.
func (l Locale) WeekdayHeaders() []string {
	h, ok := weekdayHeaders[l]
	if !ok {
		h = weekdayHeaders[DefaultLocale]
	}
	out := make([]string, len(h))
	copy(out, h)
	return out
}

// FormatLabel renders t with the default locale.
func FormatLabel(t time.Time) string {
	return DefaultLocale.Label(t)
}
