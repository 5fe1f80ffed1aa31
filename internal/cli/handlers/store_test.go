package handlers

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidate_Healthy(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	AddGoal(deps, "stay healthy")
	stdout.Reset()

	Validate(deps)

	expectOK(t, exitCode, stderr)
	out := stdout.String()
	for _, want := range []string{"Namespace: timeflow", "timeflow_goals", "All collections are healthy"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestValidate_Corrupt(t *testing.T) {
	deps, backend, stdout, stderr, exitCode := newDeps(t, "")
	backend.Put("timeflow_tasks", []byte("{not json"))

	Validate(deps)

	expectExit(t, exitCode, stderr, "could not be parsed")
	if !strings.Contains(stdout.String(), "corrupt") {
		t.Errorf("expected corrupt row, got:\n%s", stdout.String())
	}
}

func TestBackupsAndRestore(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	AddTask(deps, TaskInput{Title: "Keep me", Start: "09:00", End: "10:00"})
	DeleteTask(deps, fmt.Sprint(deps.Services.Tasks.All()[0].ID))
	stdout.Reset()

	ListBackups(deps, "tasks")
	expectOK(t, exitCode, stderr)
	if !strings.Contains(stdout.String(), "timeflow_tasks.bak.1") {
		t.Errorf("expected backup listing, got:\n%s", stdout.String())
	}

	stdout.Reset()
	RestoreBackup(deps, "tasks", "")
	expectOK(t, exitCode, stderr)
	if stdout.String() != "Restored tasks from backup 1\n" {
		t.Errorf("unexpected restore output %q", stdout.String())
	}
	tasks := deps.Services.Selection.TaskView().Tasks
	if len(tasks) != 1 || tasks[0].Title != "Keep me" {
		t.Errorf("expected restored task in view, got %+v", tasks)
	}
}

func TestListBackups_None(t *testing.T) {
	deps, stdout, _, _ := setupTestDeps(t)

	ListBackups(deps, "goals")

	if stdout.String() != "No backups of goals\n" {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestBackups_Errors(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T) (*int, string)
		want string
	}{
		{"unknown name", func(t *testing.T) (*int, string) {
			deps, _, stderr, exitCode := setupTestDeps(t)
			ListBackups(deps, "notes")
			return exitCode, stderr.String()
		}, "unknown collection \"notes\""},
		{"bad number", func(t *testing.T) (*int, string) {
			deps, _, stderr, exitCode := setupTestDeps(t)
			RestoreBackup(deps, "tasks", "two")
			return exitCode, stderr.String()
		}, "Invalid backup number 'two'"},
		{"missing backup", func(t *testing.T) (*int, string) {
			deps, _, stderr, exitCode := setupTestDeps(t)
			RestoreBackup(deps, "tasks", "3")
			return exitCode, stderr.String()
		}, "backup 3 of tasks does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exitCode, stderr := tt.run(t)
			if *exitCode != 1 {
				t.Errorf("expected exit code 1, got %d", *exitCode)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("expected %q in stderr, got %q", tt.want, stderr)
			}
		})
	}
}
