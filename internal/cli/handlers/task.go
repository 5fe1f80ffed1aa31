package handlers

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/xolan/timeflow/internal/cli"
	"github.com/xolan/timeflow/internal/task"
	"github.com/xolan/timeflow/internal/timeutil"
)

const taskHint = "List tasks with 'timeflow task list' to see ids"

// TaskInput holds the flags of 'task add'.
type TaskInput struct {
	Title string
	Start string
	End   string
	Date  string
	Color string
}

// ShowDay prints the schedule of a day ("" means today).
func ShowDay(deps *cli.Deps, dateArg string) {
	date, ok := resolveDate(deps, dateArg, timeutil.Today(deps.Services.Clock()))
	if !ok {
		return
	}
	v := deps.Services.Selection.SelectTaskDate(date)
	cli.WriteSchedule(deps.Stdout, v)
}

// ListTasks prints the schedule of a day, or every stored task grouped by
// date when all is set.
func ListTasks(deps *cli.Deps, dateArg string, all bool) {
	if !all {
		ShowDay(deps, dateArg)
		return
	}

	tasks := deps.Services.Tasks.All()
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No tasks found")
		return
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Date != tasks[j].Date {
			return tasks[i].Date < tasks[j].Date
		}
		return tasks[i].StartTime < tasks[j].StartTime
	})

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("DATE", "TIME", "ID", "DONE", "TITLE")
	for _, t := range tasks {
		done := ""
		if t.Completed {
			done = "x"
		}
		tbl.AddRow(t.Date, cli.FormatSpan(t), t.ID, done, cli.ColorizeTitle(t))
	}
	_, _ = fmt.Fprintln(deps.Stdout, tbl)
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %d %s\n", len(tasks), cli.Pluralize("task", len(tasks)))
}

// ShowNow prints the task running at this minute, or the next one today.
func ShowNow(deps *cli.Deps) {
	now := deps.Services.Clock()
	v := deps.Services.Selection.SelectToday()

	if active, ok := v.Active(); ok {
		end, _ := timeutil.ParseClock(active.EndTime)
		left := end - timeutil.MinutesSinceMidnight(now)
		_, _ = fmt.Fprintf(deps.Stdout, "Now: %s (%s, %s left)\n",
			cli.ColorizeTitle(active), cli.FormatSpan(active), cli.FormatDuration(left))
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Nothing scheduled right now")
	minutes := timeutil.MinutesSinceMidnight(now)
	for _, t := range v.Tasks {
		start, ok := timeutil.ParseClock(t.StartTime)
		if ok && start > minutes && !t.Completed {
			_, _ = fmt.Fprintf(deps.Stdout, "Next: %s at %s (in %s)\n",
				cli.ColorizeTitle(t), t.StartTime, cli.FormatDuration(start-minutes))
			return
		}
	}
}

// AddTask adds a task. Missing start and end times take the suggested
// slot; a missing date means today.
func AddTask(deps *cli.Deps, in TaskInput) {
	if strings.TrimSpace(in.Title) == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Title cannot be empty")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: timeflow task add <title> --start HH:MM --end HH:MM")
		deps.Exit(1)
		return
	}

	date, ok := resolveDate(deps, in.Date, timeutil.Today(deps.Services.Clock()))
	if !ok {
		return
	}

	if _, ok := task.ParseColor(in.Color); !ok {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unknown color '%s'\n", in.Color)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Use one of %s\n", colorNames())
		deps.Exit(1)
		return
	}

	start, end := in.Start, in.End
	if start == "" || end == "" {
		suggestedStart, suggestedEnd := deps.Services.Selection.SuggestedSlot()
		if start == "" {
			start = suggestedStart
		}
		if end == "" {
			end = suggestedEnd
		}
	}

	added, _, err := deps.Services.Selection.AddTask(task.Fields{
		Title:     in.Title,
		StartTime: start,
		EndTime:   end,
		Date:      date,
		Color:     in.Color,
	})
	if err != nil {
		reportError(deps, err)
		return
	}

	cli.WriteTask(deps.Stdout, "Added", added)
}

// EditTask applies the set fields of p to a task.
func EditTask(deps *cli.Deps, idStr string, p task.Patch) {
	id, ok := parseID(deps, idStr, taskHint)
	if !ok {
		return
	}

	if p.Empty() {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: At least one flag (--title, --start, --end, --date or --color) is required")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage:")
		_, _ = fmt.Fprintln(deps.Stderr, "  timeflow task edit <id> --title 'new title'")
		_, _ = fmt.Fprintln(deps.Stderr, "  timeflow task edit <id> --start 14:00 --end 15:00")
		deps.Exit(1)
		return
	}

	if p.Date != nil {
		date, ok := resolveDate(deps, *p.Date, "")
		if !ok {
			return
		}
		p.Date = &date
	}

	if _, err := deps.Services.Selection.UpdateTask(id, p); err != nil {
		reportTaskError(deps, id, err)
		return
	}
	t, _ := deps.Services.Tasks.Get(id)
	cli.WriteTask(deps.Stdout, "Updated", t)
}

// ToggleTask flips a task between done and open.
func ToggleTask(deps *cli.Deps, idStr string) {
	id, ok := parseID(deps, idStr, taskHint)
	if !ok {
		return
	}

	if _, err := deps.Services.Selection.ToggleTask(id); err != nil {
		reportTaskError(deps, id, err)
		return
	}
	t, _ := deps.Services.Tasks.Get(id)
	verb := "Reopened"
	if t.Completed {
		verb = "Completed"
	}
	cli.WriteTask(deps.Stdout, verb, t)
}

// DeleteTask removes a task.
func DeleteTask(deps *cli.Deps, idStr string) {
	id, ok := parseID(deps, idStr, taskHint)
	if !ok {
		return
	}

	t, found := deps.Services.Tasks.Get(id)
	if !found {
		reportTaskError(deps, id, task.ErrNotFound)
		return
	}
	deps.Services.Selection.DeleteTask(id)
	cli.WriteTask(deps.Stdout, "Deleted", t)
	_, _ = fmt.Fprintln(deps.Stdout, "Hint: Use 'timeflow restore tasks' to bring it back")
}

func reportTaskError(deps *cli.Deps, id int64, err error) {
	if errors.Is(err, task.ErrNotFound) {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Task %d not found\n", id)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", taskHint)
		deps.Exit(1)
		return
	}
	reportError(deps, err)
}

func colorNames() string {
	names := make([]string, len(task.Colors))
	for i, c := range task.Colors {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
