package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/timeflow/internal/cli"
)

const goalHint = "List goals with 'timeflow goal list' to see ids"

// ListGoals prints the goal checklist.
func ListGoals(deps *cli.Deps) {
	cli.WriteGoals(deps.Stdout, deps.Services.Selection.GoalView())
}

// AddGoal adds a goal at the top of the list.
func AddGoal(deps *cli.Deps, title string) {
	if strings.TrimSpace(title) == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Goal cannot be empty")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: timeflow goal add <title>")
		deps.Exit(1)
		return
	}

	v, err := deps.Services.Selection.AddGoal(title)
	if err != nil {
		reportError(deps, err)
		return
	}
	g := v.Goals[0]
	_, _ = fmt.Fprintf(deps.Stdout, "Added goal: [%d] %s\n", g.ID, g.Title)
}

// ToggleGoal flips a goal between done and open.
func ToggleGoal(deps *cli.Deps, idStr string) {
	id, ok := parseID(deps, idStr, goalHint)
	if !ok {
		return
	}

	g, found := deps.Services.Goals.Toggle(id)
	if !found {
		goalNotFound(deps, id)
		return
	}
	verb := "Reopened"
	if g.Completed {
		verb = "Completed"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%s goal: [%d] %s\n", verb, g.ID, g.Title)
}

// DeleteGoal removes a goal.
func DeleteGoal(deps *cli.Deps, idStr string) {
	id, ok := parseID(deps, idStr, goalHint)
	if !ok {
		return
	}

	if !deps.Services.Goals.Delete(id) {
		goalNotFound(deps, id)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted goal %d\n", id)
}

func goalNotFound(deps *cli.Deps, id int64) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: Goal %d not found\n", id)
	_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", goalHint)
	deps.Exit(1)
}
