package cmd

import (
	"bytes"
	"io"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/xolan/timeflow/internal/storage"
	"github.com/xolan/timeflow/internal/task"
)

func TestGenerateCompletion(t *testing.T) {
	tests := []struct {
		shell  string
		marker string
	}{
		{"bash", "__start_timeflow"},
		{"zsh", "#compdef timeflow"},
		{"fish", "complete -c timeflow"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			_, stdout, stderr, exitCode := testDeps(t)

			generateCompletion(tt.shell)

			if *exitCode != 0 || stderr.Len() != 0 {
				t.Fatalf("unexpected failure (exit %d): %s", *exitCode, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.marker) {
				t.Errorf("expected %q in %s script", tt.marker, tt.shell)
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	_, stdout, stderr, exitCode := testDeps(t)

	generateCompletion("tcsh")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no script, got %q", stdout.String())
	}
	for _, want := range []string{"unsupported shell 'tcsh'", "bash, zsh, fish, powershell"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("expected %q in stderr, got %q", want, stderr.String())
		}
	}
}

// complete runs cobra's hidden completion command and returns the offered
// candidates without the trailing directive line.
func complete(t *testing.T, args ...string) []string {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	execute(t, append([]string{cobra.ShellCompRequestCmd}, args...)...)

	var got []string
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line != "" && !strings.HasPrefix(line, ":") {
			got = append(got, line)
		}
	}
	return got
}

func TestCompletion_StaticValues(t *testing.T) {
	testDeps(t)

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{"shells", []string{"completion", ""}, []string{"bash", "zsh", "fish", "powershell"}},
		{"all colors", []string{"task", "add", "x", "--color", ""}, []string{"blue", "green", "purple", "orange", "red"}},
		{"color prefix", []string{"task", "edit", "1", "--color", "p"}, []string{"purple"}},
		{"date words", []string{"day", ""}, []string{"today", "tomorrow", "yesterday", "2025-06-01"}},
		{"date prefix", []string{"day", "to"}, []string{"today", "tomorrow"}},
		{"date flag", []string{"task", "list", "--date", "y"}, []string{"yesterday"}},
		{"second date arg", []string{"day", "today", ""}, nil},
		{"collections", []string{"backups", ""}, storage.Names},
		{"collection prefix", []string{"restore", "diary_"}, []string{"diary_entries", "diary_last_date", "diary_migrated"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := complete(t, tt.args...); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("completing %v: got %v, expected %v", tt.args, got, tt.expected)
			}
		})
	}
}

func TestCompletion_PlannerData(t *testing.T) {
	services, _, _, _ := testDeps(t)

	standup, err := services.Tasks.Add(task.Fields{Title: "Standup", StartTime: "09:00", EndTime: "09:15", Date: "2025-06-01"})
	if err != nil {
		t.Fatal(err)
	}
	scratch, err := services.Tasks.Add(task.Fields{Title: "Scratch", StartTime: "11:00", EndTime: "12:00", Date: "2025-06-01"})
	if err != nil {
		t.Fatal(err)
	}
	services.Tasks.Delete(scratch.ID)

	g, err := services.Goals.Add("Read more")
	if err != nil {
		t.Fatal(err)
	}
	for _, date := range []string{"2025-05-30", "2025-06-01"} {
		if err := services.Diary.Save(date, "notes"); err != nil {
			t.Fatal(err)
		}
	}

	taskID := strconv.FormatInt(standup.ID, 10)
	goalID := strconv.FormatInt(g.ID, 10)

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{"task ids", []string{"task", "done", ""}, []string{taskID + "\t2025-06-01 09:00 Standup"}},
		{"task id mismatch", []string{"task", "rm", "x"}, nil},
		{"goal ids", []string{"goal", "rm", ""}, []string{goalID + "\tRead more"}},
		{"diary days newest first", []string{"diary", "2025"}, []string{"2025-06-01", "2025-05-30"}},
		{"backup numbers", []string{"restore", "tasks", ""}, []string{"1\t" + backupSize(t, services.Store.Backups, storage.NameTasks) + " bytes"}},
		{"no backups", []string{"restore", "goals", ""}, nil},
		{"unknown collection", []string{"restore", "nope", ""}, nil},
		{"backups takes one arg", []string{"backups", "tasks", ""}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := complete(t, tt.args...); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("completing %v: got %q, expected %q", tt.args, got, tt.expected)
			}
		})
	}
}

func backupSize(t *testing.T, backups func(string) ([]storage.BackupInfo, error), name string) string {
	t.Helper()
	list, err := backups(name)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one %s backup, got %+v, %v", name, list, err)
	}
	return strconv.Itoa(list[0].Size)
}
