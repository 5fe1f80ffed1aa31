package handlers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/xolan/timeflow/internal/task"
)

func TestShowDay(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"default is today", "", "Sunday, June 1, 2025 (today)"},
		{"today", "today", "Sunday, June 1, 2025 (today)"},
		{"tomorrow", "tomorrow", "Monday, June 2, 2025 (tomorrow)"},
		{"yesterday", "yesterday", "Saturday, May 31, 2025"},
		{"date key", "2025-12-25", "Thursday, December 25, 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, stdout, stderr, exitCode := setupTestDeps(t)

			ShowDay(deps, tt.arg)

			expectOK(t, exitCode, stderr)
			if !strings.HasPrefix(stdout.String(), tt.want+"\n") {
				t.Errorf("expected heading %q, got %q", tt.want, stdout.String())
			}
			if !strings.Contains(stdout.String(), "No tasks scheduled") {
				t.Errorf("expected empty schedule, got %q", stdout.String())
			}
		})
	}
}

func TestShowDay_InvalidDate(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	ShowDay(deps, "2025-02-30")

	expectExit(t, exitCode, stderr, "Invalid date '2025-02-30'")
	if !strings.Contains(stderr.String(), "Hint:") {
		t.Errorf("expected hint, got %q", stderr.String())
	}
}

func TestAddTask(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)

	AddTask(deps, TaskInput{Title: "Standup", Start: "09:30", End: "10:15", Color: "green"})

	expectOK(t, exitCode, stderr)
	if !strings.Contains(stdout.String(), "Added: [") || !strings.Contains(stdout.String(), "2025-06-01 09:30-10:15 Standup (green)") {
		t.Errorf("unexpected output %q", stdout.String())
	}

	tasks := deps.Services.Tasks.List("2025-06-01")
	if len(tasks) != 1 || tasks[0].Color != task.ColorGreen {
		t.Fatalf("expected one green task, got %+v", tasks)
	}
}

func TestAddTask_DefaultsToSuggestedSlot(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)

	AddTask(deps, TaskInput{Title: "Plan", Date: "tomorrow"})

	expectOK(t, exitCode, stderr)
	// At 10:00 the next half hour is 10:00 itself.
	if !strings.Contains(stdout.String(), "2025-06-02 10:00-11:00 Plan (blue)") {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestAddTask_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   TaskInput
		want string
	}{
		{"empty title", TaskInput{Title: "  ", Start: "09:00", End: "10:00"}, "Title cannot be empty"},
		{"bad date", TaskInput{Title: "x", Date: "soon"}, "Invalid date 'soon'"},
		{"bad color", TaskInput{Title: "x", Color: "pink"}, "Unknown color 'pink'"},
		{"bad start", TaskInput{Title: "x", Start: "25:00", End: "10:00"}, "Invalid startTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _, stderr, exitCode := setupTestDeps(t)

			AddTask(deps, tt.in)

			expectExit(t, exitCode, stderr, tt.want)
			if n := len(deps.Services.Tasks.All()); n != 0 {
				t.Errorf("expected no tasks to be stored, got %d", n)
			}
		})
	}
}

func TestListTasks(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	AddTask(deps, TaskInput{Title: "Late", Start: "15:00", End: "16:00"})
	AddTask(deps, TaskInput{Title: "Early", Start: "08:00", End: "09:00"})
	AddTask(deps, TaskInput{Title: "Next week", Start: "08:00", End: "09:00", Date: "2025-06-08"})
	stdout.Reset()

	ListTasks(deps, "", false)

	expectOK(t, exitCode, stderr)
	out := stdout.String()
	if strings.Index(out, "Early") > strings.Index(out, "Late") {
		t.Errorf("expected tasks ordered by start time, got:\n%s", out)
	}
	if strings.Contains(out, "Next week") {
		t.Errorf("expected only today's tasks, got:\n%s", out)
	}
	if !strings.Contains(out, "2 tasks, 0 done") {
		t.Errorf("expected summary line, got:\n%s", out)
	}

	stdout.Reset()
	ListTasks(deps, "", true)
	out = stdout.String()
	if !strings.Contains(out, "Next week") || !strings.Contains(out, "Total: 3 tasks") {
		t.Errorf("expected all tasks, got:\n%s", out)
	}
}

func TestListTasks_AllEmpty(t *testing.T) {
	deps, stdout, _, _ := setupTestDeps(t)

	ListTasks(deps, "", true)

	if stdout.String() != "No tasks found\n" {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestShowNow(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	AddTask(deps, TaskInput{Title: "Focus", Start: "09:30", End: "11:00"})
	stdout.Reset()

	ShowNow(deps)

	expectOK(t, exitCode, stderr)
	if stdout.String() != "Now: Focus (09:30-11:00, 1h left)\n" {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestShowNow_NextTask(t *testing.T) {
	deps, stdout, _, _ := setupTestDeps(t)
	AddTask(deps, TaskInput{Title: "Lunch", Start: "12:30", End: "13:30"})
	stdout.Reset()

	ShowNow(deps)

	want := "Nothing scheduled right now\nNext: Lunch at 12:30 (in 2h 30m)\n"
	if stdout.String() != want {
		t.Errorf("expected %q, got %q", want, stdout.String())
	}
}

func TestEditToggleDeleteTask(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	AddTask(deps, TaskInput{Title: "Draft", Start: "09:00", End: "10:00"})
	id := deps.Services.Tasks.All()[0].ID
	idStr := fmt.Sprint(id)

	title := "Final"
	date := "tomorrow"
	stdout.Reset()
	EditTask(deps, idStr, task.Patch{Title: &title, Date: &date})
	expectOK(t, exitCode, stderr)
	if !strings.Contains(stdout.String(), "Updated: ") || !strings.Contains(stdout.String(), "2025-06-02 09:00-10:00 Final") {
		t.Errorf("unexpected edit output %q", stdout.String())
	}

	stdout.Reset()
	ToggleTask(deps, idStr)
	if !strings.HasPrefix(stdout.String(), "Completed: ") {
		t.Errorf("unexpected toggle output %q", stdout.String())
	}
	stdout.Reset()
	ToggleTask(deps, idStr)
	if !strings.HasPrefix(stdout.String(), "Reopened: ") {
		t.Errorf("unexpected second toggle output %q", stdout.String())
	}

	stdout.Reset()
	DeleteTask(deps, idStr)
	expectOK(t, exitCode, stderr)
	if !strings.HasPrefix(stdout.String(), "Deleted: ") {
		t.Errorf("unexpected delete output %q", stdout.String())
	}
	if len(deps.Services.Tasks.All()) != 0 {
		t.Error("expected task to be deleted")
	}
}

func TestEditTask_Errors(t *testing.T) {
	bad := "7:00pm"
	tests := []struct {
		name  string
		id    string
		patch task.Patch
		want  string
	}{
		{"non-numeric id", "abc", task.Patch{}, "Invalid id 'abc'"},
		{"no flags", "1", task.Patch{}, "At least one flag"},
		{"unknown id", "42", task.Patch{StartTime: &bad}, "Task 42 not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _, stderr, exitCode := setupTestDeps(t)

			EditTask(deps, tt.id, tt.patch)

			expectExit(t, exitCode, stderr, tt.want)
		})
	}
}

func TestEditTask_ValidationKeepsTask(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)
	AddTask(deps, TaskInput{Title: "Draft", Start: "09:00", End: "10:00"})
	before := deps.Services.Tasks.All()[0]

	bad := "7:00pm"
	EditTask(deps, fmt.Sprint(before.ID), task.Patch{EndTime: &bad})

	expectExit(t, exitCode, stderr, "Invalid endTime")
	after, _ := deps.Services.Tasks.Get(before.ID)
	if after != before {
		t.Errorf("expected task unchanged, got %+v", after)
	}
}

func TestToggleAndDeleteTask_NotFound(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)
	ToggleTask(deps, "99")
	expectExit(t, exitCode, stderr, "Task 99 not found")

	deps, _, stderr, exitCode = setupTestDeps(t)
	DeleteTask(deps, "99")
	expectExit(t, exitCode, stderr, "Task 99 not found")
}
