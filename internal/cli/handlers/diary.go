package handlers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xolan/timeflow/internal/cli"
	"github.com/xolan/timeflow/internal/selection"
	"github.com/xolan/timeflow/internal/timeutil"
)

// ShowDiary prints the diary page of a day. Without a date it reopens the
// last viewed day.
func ShowDiary(deps *cli.Deps, dateArg string) {
	date, ok := resolveDate(deps, dateArg, deps.Services.Diary.LastViewedDate())
	if !ok {
		return
	}
	v := deps.Services.Selection.SelectDiaryDate(date, selection.SelectOptions{})
	cli.WriteDiary(deps.Stdout, v)
}

// WriteDiary replaces the diary text of a day. When text is empty it is
// read from deps.Stdin.
func WriteDiary(deps *cli.Deps, dateArg, text string) {
	date, ok := resolveDate(deps, dateArg, timeutil.Today(deps.Services.Clock()))
	if !ok {
		return
	}

	if text == "" {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to read diary text: %v\n", err)
			deps.Exit(1)
			return
		}
		text = string(data)
	}

	ctrl := deps.Services.Selection
	ctrl.SelectDiaryDate(date, selection.SelectOptions{})
	ctrl.EditDiary(text)
	v := ctrl.SaveDiary()
	if v.Dirty {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to save diary for %s\n", v.Label)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check the data directory with 'timeflow validate'")
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%s: %s\n", v.Status, v.Label)
}

// ListDiaryDates prints every day that has diary text, oldest first.
func ListDiaryDates(deps *cli.Deps) {
	dates := deps.Services.Diary.Dates()
	if len(dates) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No diary entries yet")
		return
	}

	locale := deps.Services.Selection.Locale()
	for _, d := range dates {
		day, _ := timeutil.ParseDateKey(d)
		preview := firstLine(deps.Services.Diary.EntryFor(d), 40)
		_, _ = fmt.Fprintf(deps.Stdout, "%s  %-28s %s\n", d, locale.Label(day), preview)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %d %s\n", len(dates), cli.Pluralize("day", len(dates)))
}

// ShowCalendar prints a month grid. month is "YYYY-MM" or empty for the
// month of the selected diary day; shift moves it by whole months.
func ShowCalendar(deps *cli.Deps, month string, shift int) {
	ctrl := deps.Services.Selection
	current := ctrl.CalendarView().Month

	delta := shift
	if month != "" {
		target, err := time.ParseInLocation("2006-01", strings.TrimSpace(month), time.Local)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid month '%s'\n", month)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use YYYY-MM, e.g. 2025-06")
			deps.Exit(1)
			return
		}
		delta += (target.Year()-current.Year())*12 + int(target.Month()-current.Month())
	}

	v := ctrl.ShiftCalendarMonth(delta)
	cli.WriteCalendar(deps.Stdout, v, ctrl.Locale())
}

func firstLine(s string, max int) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " ..."
	}
	r := []rune(s)
	if len(r) > max {
		return string(r[:max-3]) + "..."
	}
	return s
}
