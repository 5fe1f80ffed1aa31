// Package cli provides the CLI presentation layer for the timeflow
// application. It handles command-line output formatting and user
// interaction.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/xolan/timeflow/internal/diary"
	"github.com/xolan/timeflow/internal/goal"
	"github.com/xolan/timeflow/internal/selection"
	"github.com/xolan/timeflow/internal/storage"
	"github.com/xolan/timeflow/internal/task"
	"github.com/xolan/timeflow/internal/timeutil"
)

var (
	headingColor = color.New(color.Bold, color.Underline)
	faintColor   = color.New(color.Faint)
	activeColor  = color.New(color.Bold, color.FgHiYellow)
	todayColor   = color.New(color.Bold, color.FgHiWhite)
	okColor      = color.New(color.FgGreen)
	badColor     = color.New(color.FgRed)

	taskColors = map[task.Color]*color.Color{
		task.ColorBlue:   color.New(color.FgBlue),
		task.ColorGreen:  color.New(color.FgGreen),
		task.ColorPurple: color.New(color.FgMagenta),
		task.ColorOrange: color.New(color.FgYellow),
		task.ColorRed:    color.New(color.FgRed),
	}
)

// FormatDuration formats minutes as a human-readable string
// Examples: "30m", "2h", "1h 30m"
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// TaskMinutes returns the length of t, or 0 when the end does not come
// after the start.
func TaskMinutes(t task.Task) int {
	start, ok1 := timeutil.ParseClock(t.StartTime)
	end, ok2 := timeutil.ParseClock(t.EndTime)
	if !ok1 || !ok2 || end <= start {
		return 0
	}
	return end - start
}

// FormatSpan formats a task's time range as "09:30-10:30".
func FormatSpan(t task.Task) string {
	return t.StartTime + "-" + t.EndTime
}

// ColorizeTitle paints a task title in its colour tag.
func ColorizeTitle(t task.Task) string {
	c, ok := taskColors[t.Color]
	if !ok {
		c = taskColors[task.DefaultColor]
	}
	return c.Sprint(t.Title)
}

// FormatDayHeading returns the label of the schedule day with a
// today/tomorrow marker.
func FormatDayHeading(v selection.TaskView) string {
	switch {
	case v.IsToday:
		return v.Label + " (today)"
	case v.IsTomorrow:
		return v.Label + " (tomorrow)"
	}
	return v.Label
}

// WriteSchedule prints the tasks of one day. The active task is marked
// with an arrow.
func WriteSchedule(w io.Writer, v selection.TaskView) {
	_, _ = fmt.Fprintln(w, headingColor.Sprint(FormatDayHeading(v)))

	if len(v.Tasks) == 0 {
		_, _ = fmt.Fprintln(w, faintColor.Sprint("No tasks scheduled"))
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	done := 0
	for _, t := range v.Tasks {
		marker := " "
		if v.HasActive && t.ID == v.ActiveID {
			marker = activeColor.Sprint(">")
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
			done++
		}
		tbl.AddRow(marker, check, t.ID, FormatSpan(t), ColorizeTitle(t), FormatDuration(TaskMinutes(t)))
	}
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintf(w, "%d %s, %d done\n", len(v.Tasks), Pluralize("task", len(v.Tasks)), done)
}

// WriteTask prints a single task on one line.
func WriteTask(w io.Writer, verb string, t task.Task) {
	_, _ = fmt.Fprintf(w, "%s: [%d] %s %s %s (%s)\n", verb, t.ID, t.Date, FormatSpan(t), t.Title, t.Color)
}

// WriteCalendar prints a Sunday-first month grid. Days with a diary entry
// carry a '*'; the selected day is bracketed.
func WriteCalendar(w io.Writer, v selection.CalendarView, locale timeutil.Locale) {
	_, _ = fmt.Fprintln(w, headingColor.Sprint(v.Label))

	headers := locale.WeekdayHeaders()
	cols := make([]string, len(headers))
	for i, h := range headers {
		cols[i] = padCell(h)
	}
	_, _ = fmt.Fprintln(w, strings.TrimRight(strings.Join(cols, ""), " "))

	for _, week := range v.Calendar.Weeks() {
		var b strings.Builder
		for _, cell := range week {
			b.WriteString(formatCell(cell))
		}
		_, _ = fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

// padCell pads a weekday header to the five-column cell width. Wide CJK
// characters take two columns.
func padCell(h string) string {
	width := len([]rune(h))
	if width == 1 {
		width = 2
	}
	return " " + h + strings.Repeat(" ", 4-width)
}

func formatCell(c diary.Cell) string {
	if c.Blank() {
		return "     "
	}
	left, right := " ", " "
	if c.IsSelected {
		left, right = "[", "]"
	}
	mark := " "
	if c.HasEntry {
		mark = "*"
	}
	day := fmt.Sprintf("%2d", c.Day)
	if c.IsToday {
		day = todayColor.Sprint(day)
	}
	return left + day + right + mark
}

// WriteDiary prints one diary page.
func WriteDiary(w io.Writer, v selection.DiaryView) {
	_, _ = fmt.Fprintln(w, headingColor.Sprint(v.Label))
	if strings.TrimSpace(v.Text) == "" {
		_, _ = fmt.Fprintln(w, faintColor.Sprint("(empty)"))
		return
	}
	_, _ = fmt.Fprintln(w, strings.TrimRight(v.Text, "\n"))
}

// WriteGoals prints the goal checklist, newest first.
func WriteGoals(w io.Writer, v selection.GoalView) {
	_, _ = fmt.Fprintln(w, headingColor.Sprintf("Goals (%d/%d done)", v.Completed, len(v.Goals)))
	if len(v.Goals) == 0 {
		_, _ = fmt.Fprintln(w, faintColor.Sprint("No goals yet"))
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, g := range v.Goals {
		tbl.AddRow(goalCheck(g), g.ID, g.Title)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func goalCheck(g goal.Goal) string {
	if g.Completed {
		return "[x]"
	}
	return "[ ]"
}

// WriteHealth prints one row per stored key.
func WriteHealth(w io.Writer, report []storage.KeyHealth) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("NAME", "KEY", "STATUS", "SIZE", "BACKUPS")
	for _, h := range report {
		status := okColor.Sprint("ok")
		switch {
		case !h.Present:
			status = faintColor.Sprint("missing")
		case !h.Valid:
			status = badColor.Sprint("corrupt: " + h.Error)
		}
		tbl.AddRow(h.Name, h.Key, status, h.Size, h.Backups)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

// WriteBackups prints the backups of one collection.
func WriteBackups(w io.Writer, name string, backups []storage.BackupInfo) {
	if len(backups) == 0 {
		_, _ = fmt.Fprintf(w, "No backups of %s\n", name)
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("#", "KEY", "SIZE")
	for _, b := range backups {
		tbl.AddRow(b.Number, b.Key, b.Size)
	}
	_, _ = fmt.Fprintln(w, tbl)
}
