package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xolan/timeflow/internal/osutil"
)

// MockPathProvider for testing config validation failure
type MockPathProvider struct {
	UserConfigDirFn func() (string, error)
	MkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *MockPathProvider) UserConfigDir() (string, error) {
	if m.UserConfigDirFn != nil {
		return m.UserConfigDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return nil
}

// useTempConfigDir points the config directory at a fresh temp dir.
func useTempConfigDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	osutil.SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return dir, nil },
		MkdirAllFn:      os.MkdirAll,
	})
	t.Cleanup(osutil.ResetProvider)
}

func TestRun_Success(t *testing.T) {
	useTempConfigDir(t)
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()
	os.Args = []string{"timeflow", "--version"}

	code := run()
	if code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
}

func TestRun_ConfigValidationFailure(t *testing.T) {
	// Save original provider
	original := osutil.Provider
	defer osutil.ResetProvider()

	// Mock to simulate config path error
	osutil.SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) {
			return "", errors.New("permission denied")
		},
	})

	code := run()
	if code != 1 {
		t.Errorf("Expected exit code 1 for config validation failure, got %d", code)
	}

	// Reset for next test
	osutil.Provider = original
}

func TestRun_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	osutil.SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return dir, nil },
		MkdirAllFn:      os.MkdirAll,
	})
	defer osutil.ResetProvider()

	if err := os.MkdirAll(filepath.Join(dir, "timeflow"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "timeflow", "config.toml"), []byte(`locale = "fr"`), 0644); err != nil {
		t.Fatal(err)
	}

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for an invalid config file, got %d", code)
	}
}

func TestRun_ExecuteError(t *testing.T) {
	useTempConfigDir(t)
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Args = []string{"timeflow", "--unknownflag"}

	code := run()
	if code != 1 {
		t.Errorf("Expected exit code 1 for Execute error, got %d", code)
	}
}

func TestMain_CallsExitWithRunResult(t *testing.T) {
	useTempConfigDir(t)
	originalExit := exitFunc
	originalArgs := os.Args
	defer func() {
		exitFunc = originalExit
		os.Args = originalArgs
	}()

	var capturedCode int
	exitFunc = func(code int) {
		capturedCode = code
	}
	os.Args = []string{"timeflow", "--version"}

	main()

	if capturedCode != 0 {
		t.Errorf("Expected exit code 0, got %d", capturedCode)
	}
}
