package handlers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/xolan/timeflow/internal/cli"
	"github.com/xolan/timeflow/internal/config"
	"github.com/xolan/timeflow/internal/service"
	"github.com/xolan/timeflow/internal/storage"
	"github.com/xolan/timeflow/internal/timer"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// testNow is Sunday, June 1 2025 at 10:00 local time.
func testNow() time.Time {
	return time.Date(2025, time.June, 1, 10, 0, 0, 0, time.Local)
}

func newDeps(t *testing.T, configPath string) (*cli.Deps, *storage.MemoryBackend, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	cfg := config.DefaultConfig()
	store, backend := storage.NewMemory("")
	services := service.NewServicesWithStore(store, configPath, cfg, nil, service.Options{
		Clock:     testNow,
		Scheduler: timer.NewManual(),
	})

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:   stdout,
		Stderr:   stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { exitCode = code },
		Services: services,
		Config:   cfg,
	}
	return deps, backend, stdout, stderr, &exitCode
}

func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	deps, _, stdout, stderr, exitCode := newDeps(t, filepath.Join(t.TempDir(), "config.toml"))
	return deps, stdout, stderr, exitCode
}

// setupBrokenConfigDeps points the config file into a directory that does
// not exist, so writing it fails.
func setupBrokenConfigDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	deps, _, stdout, stderr, exitCode := newDeps(t, filepath.Join(t.TempDir(), "missing", "config.toml"))
	return deps, stdout, stderr, exitCode
}

func expectExit(t *testing.T, exitCode *int, stderr *bytes.Buffer, want string) {
	t.Helper()
	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), want) {
		t.Errorf("expected %q in stderr, got %q", want, stderr.String())
	}
}

func expectOK(t *testing.T, exitCode *int, stderr *bytes.Buffer) {
	t.Helper()
	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d (stderr: %q)", *exitCode, stderr.String())
	}
}

