// Package views holds one bubbletea model per TUI tab.
package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/timeflow/internal/cli"
	"github.com/xolan/timeflow/internal/selection"
	"github.com/xolan/timeflow/internal/timeutil"
	"github.com/xolan/timeflow/internal/tui/ui"
	"github.com/xolan/timeflow/internal/validate"
)

// TaskRenderOptions configures how a schedule is rendered
type TaskRenderOptions struct {
	Width  int // Available width for rendering
	Cursor int // Currently selected task index (-1 for none)
}

// RenderTaskList renders the tasks of one day with aligned columns. The
// active task is marked with an arrow and completed tasks are struck
// through.
func RenderTaskList(v selection.TaskView, styles ui.Styles, opts TaskRenderOptions) string {
	if len(v.Tasks) == 0 {
		return ""
	}

	maxIDWidth := 0
	for _, t := range v.Tasks {
		if w := len(fmt.Sprintf("[%d]", t.ID)); w > maxIDWidth {
			maxIDWidth = w
		}
	}

	maxTitleWidth := max(opts.Width-maxIDWidth-35, 20)

	var b strings.Builder
	for i, t := range v.Tasks {
		marker := "  "
		if v.HasActive && t.ID == v.ActiveID {
			marker = styles.TaskActive.Render("▶ ")
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}

		title := truncate(t.Title, maxTitleWidth)
		if t.Completed {
			title = styles.ItemDone.Render(title)
		} else {
			title = styles.TaskColor(t.Color).Render(title)
		}

		id := styles.ItemID.Render(fmt.Sprintf("%-*s", maxIDWidth, fmt.Sprintf("[%d]", t.ID)))
		span := styles.TaskTime.Render(cli.FormatSpan(t))
		duration := styles.TaskDuration.Render(cli.FormatDuration(cli.TaskMinutes(t)))

		line := fmt.Sprintf("%s%s %s %s %s %s", marker, check, id, span, duration, title)
		if i == opts.Cursor {
			b.WriteString(styles.ItemSelected.Render(line))
		} else {
			b.WriteString(styles.ItemNormal.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderCalendar renders a Sunday-first month grid. Days with a diary
// entry carry a '*'.
func RenderCalendar(v selection.CalendarView, locale timeutil.Locale, styles ui.Styles) string {
	var b strings.Builder

	b.WriteString(styles.ViewTitle.Render(v.Label))
	b.WriteString("\n")

	for _, h := range locale.WeekdayHeaders() {
		b.WriteString(styles.CalendarHeader.Render(h))
	}
	b.WriteString("\n")

	for _, week := range v.Calendar.Weeks() {
		for _, cell := range week {
			if cell.Blank() {
				b.WriteString(styles.CalendarDay.Render(""))
				continue
			}
			mark := " "
			if cell.HasEntry {
				mark = styles.CalendarEntry.Render("*")
			}
			text := fmt.Sprintf("%2d", cell.Day) + mark

			switch {
			case cell.IsSelected:
				b.WriteString(styles.CalendarSelected.Render(text))
			case cell.IsToday:
				b.WriteString(styles.CalendarToday.Render(text))
			default:
				b.WriteString(styles.CalendarDay.Render(text))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// describeError turns a registry error into one line for the status area.
func describeError(err error) string {
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		return "Invalid " + verr.Field + ": " + verr.Error()
	}
	return err.Error()
}

func renderLabelValue(styles ui.Styles, label, value string) string {
	return styles.Label.Render(label+":") + " " + styles.Value.Render(value) + "\n"
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
