package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xolan/timeflow/internal/config"
)

func TestNewConfigService(t *testing.T) {
	svc := NewConfigService("/tmp/config.toml", config.DefaultConfig())
	if svc == nil {
		t.Fatal("expected non-nil service")
	}
}

func TestConfigService_Get(t *testing.T) {
	cfg := config.DefaultConfig()
	svc := NewConfigService("/tmp/config.toml", cfg)

	result := svc.Get()
	if result.Namespace != cfg.Namespace {
		t.Errorf("expected Namespace %q, got %q", cfg.Namespace, result.Namespace)
	}
	if result.Locale != cfg.Locale {
		t.Errorf("expected Locale %q, got %q", cfg.Locale, result.Locale)
	}
}

func TestConfigService_GetPath(t *testing.T) {
	svc := NewConfigService("/tmp/test/config.toml", config.DefaultConfig())

	path := svc.GetPath()
	if path != "/tmp/test/config.toml" {
		t.Errorf("expected path '/tmp/test/config.toml', got %q", path)
	}
}

func TestConfigService_Exists(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	// File doesn't exist yet
	if svc.Exists() {
		t.Error("expected Exists() to return false")
	}

	// Create the file
	if err := os.WriteFile(configPath, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	// Now it exists
	if !svc.Exists() {
		t.Error("expected Exists() to return true")
	}
}

func TestConfigService_Update(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	// Update config
	newCfg := config.DefaultConfig()
	newCfg.Locale = "zh-tw"
	newCfg.Namespace = "work"

	err := svc.Update(newCfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Verify in-memory config was updated
	result := svc.Get()
	if result.Locale != "zh-TW" {
		t.Errorf("expected Locale 'zh-TW', got %q", result.Locale)
	}
	if result.Namespace != "work" {
		t.Errorf("expected Namespace 'work', got %q", result.Namespace)
	}

	// Verify file was written
	if !svc.Exists() {
		t.Error("expected config file to exist")
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(content) == 0 {
		t.Error("expected non-empty config file")
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if loaded.Namespace != "work" {
		t.Errorf("expected reloaded Namespace 'work', got %q", loaded.Namespace)
	}
}

func TestConfigService_Update_InvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	invalidCfg := config.DefaultConfig()
	invalidCfg.Locale = "fr"

	err := svc.Update(invalidCfg)
	if err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestConfigService_Init(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	// Init should create a sample config
	err := svc.Init()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// File should exist
	if !svc.Exists() {
		t.Error("expected config file to exist after Init")
	}

	// File should have content
	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(content) == 0 {
		t.Error("expected non-empty config file after Init")
	}
}

func TestConfigService_Init_AlreadyExists(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	// Create existing file
	if err := os.WriteFile(configPath, []byte("existing"), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewConfigService(configPath, config.DefaultConfig())

	// Init should fail if file already exists
	err := svc.Init()
	if err == nil {
		t.Error("expected error when config file already exists")
	}
}

func TestConfigService_Reload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	// Create initial config
	initialContent := `
namespace = "work"
locale = "zh-TW"
`
	if err := os.WriteFile(configPath, []byte(initialContent), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewConfigService(configPath, config.DefaultConfig())

	// Reload
	err := svc.Reload()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := svc.Get()
	if result.Namespace != "work" {
		t.Errorf("expected Namespace 'work', got %q", result.Namespace)
	}
	if result.Locale != "zh-TW" {
		t.Errorf("expected Locale 'zh-TW', got %q", result.Locale)
	}
}

func TestConfigService_Reload_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	// Create invalid config
	if err := os.WriteFile(configPath, []byte("invalid toml {{{"), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewConfigService(configPath, config.DefaultConfig())

	err := svc.Reload()
	if err == nil {
		t.Error("expected error for invalid config file")
	}
}

func TestConfigService_Update_WriteError(t *testing.T) {
	// Use a path that can't be written to
	svc := NewConfigService("/nonexistent/dir/config.toml", config.DefaultConfig())

	err := svc.Update(config.DefaultConfig())
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestConfigService_Init_WriteError(t *testing.T) {
	// Use a path that can't be written to
	svc := NewConfigService("/nonexistent/dir/config.toml", config.DefaultConfig())

	err := svc.Init()
	if err == nil {
		t.Error("expected error for invalid path")
	}
}
