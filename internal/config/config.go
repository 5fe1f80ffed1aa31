// Package config loads the optional TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
	"github.com/xolan/timeflow/internal/osutil"
	"github.com/xolan/timeflow/internal/timeutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// DataDirName is the default data directory under the app directory
	DataDirName = "data"
)

var (
	namespacePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	validLogLevels   = []string{"debug", "info", "warn", "error"}
)

// Duration is a time.Duration written as a Go duration string ("800ms").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config represents the application configuration
type Config struct {
	// DataDir is where the key-value files live. "~" is expanded. Empty
	// means <UserConfigDir>/timeflow/data.
	DataDir string `toml:"data_dir"`
	// Namespace prefixes every stored key.
	Namespace string `toml:"namespace"`
	// Locale selects date label formatting: "en" or "zh-TW".
	Locale string `toml:"locale"`
	// Theme is the bubbletint theme used by the TUI.
	Theme string `toml:"theme"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// LogFile, when set, receives log lines instead of stderr.
	LogFile string `toml:"log_file"`
	// AutosaveDelay is the quiet period before a diary edit is saved.
	AutosaveDelay Duration `toml:"autosave_delay"`
	// StatusTimeout is how long a save message stays visible.
	StatusTimeout Duration `toml:"status_timeout"`
	// TickInterval is how often the TUI refreshes the active task.
	TickInterval Duration `toml:"tick_interval"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DataDir:       "",
		Namespace:     "timeflow",
		Locale:        string(timeutil.DefaultLocale),
		Theme:         "dracula",
		LogLevel:      "warn",
		LogFile:       "",
		AutosaveDelay: Duration{800 * time.Millisecond},
		StatusTimeout: Duration{1500 * time.Millisecond},
		TickInterval:  Duration{time.Minute},
	}
}

// GetConfigPath returns the path to the config file, creating its
// directory if needed.
func GetConfigPath() (string, error) {
	dir, err := osutil.AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// Load reads and validates the config file at path. Keys missing from the
// file keep their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path if it exists and returns DefaultConfig otherwise.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// Normalize trims values and canonicalises case.
func (c *Config) Normalize() {
	c.DataDir = strings.TrimSpace(c.DataDir)
	c.Namespace = strings.TrimSpace(c.Namespace)
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFile = strings.TrimSpace(c.LogFile)

	if c.Namespace == "" {
		c.Namespace = DefaultConfig().Namespace
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultConfig().LogLevel
	}
	if c.Theme == "" {
		c.Theme = DefaultConfig().Theme
	}
	if loc, ok := timeutil.ParseLocale(c.Locale); ok {
		c.Locale = string(loc)
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if !namespacePattern.MatchString(c.Namespace) {
		return fmt.Errorf("namespace %q may only contain letters, digits, '-' and '_'", c.Namespace)
	}
	if _, ok := timeutil.ParseLocale(c.Locale); !ok {
		return fmt.Errorf("locale must be \"en\" or \"zh-TW\", got %q", c.Locale)
	}

	levelOK := false
	for _, l := range validLogLevels {
		if c.LogLevel == l {
			levelOK = true
			break
		}
	}
	if !levelOK {
		return fmt.Errorf("log_level must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.LogLevel)
	}

	for name, d := range map[string]Duration{
		"autosave_delay": c.AutosaveDelay,
		"status_timeout": c.StatusTimeout,
		"tick_interval":  c.TickInterval,
	} {
		if d.Duration <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d.Duration)
		}
	}
	return nil
}

// LocaleValue returns the parsed label locale.
func (c Config) LocaleValue() timeutil.Locale {
	loc, _ := timeutil.ParseLocale(c.Locale)
	return loc
}

// ResolveDataDir returns the absolute data directory, expanding "~".
func (c Config) ResolveDataDir() (string, error) {
	if c.DataDir == "" {
		dir, err := osutil.AppDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, DataDirName), nil
	}

	dir, err := homedir.Expand(c.DataDir)
	if err != nil {
		return "", fmt.Errorf("failed to expand data_dir: %w", err)
	}
	return filepath.Abs(dir)
}

// ResolveLogFile returns the log file path with "~" expanded, or "".
func (c Config) ResolveLogFile() (string, error) {
	if c.LogFile == "" {
		return "", nil
	}
	path, err := homedir.Expand(c.LogFile)
	if err != nil {
		return "", fmt.Errorf("failed to expand log_file: %w", err)
	}
	return path, nil
}

// Write encodes c as TOML to path.
func Write(path string, c Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString("# timeflow configuration file\n\n"); err != nil {
		return err
	}
	return toml.NewEncoder(f).Encode(c)
}

// GenerateSampleConfig returns a commented config file listing every key
// with its default.
func GenerateSampleConfig() string {
	return `# timeflow configuration file
# Uncomment and edit the settings you want to change.

# Data directory for tasks, diary entries and goals. "~" is expanded.
# Default: <config dir>/timeflow/data
# data_dir = "~/Documents/timeflow"

# Key prefix inside the data directory. Use a different namespace to keep
# separate planners side by side.
# namespace = "timeflow"

# Date label language: "en" or "zh-TW"
# locale = "en"

# TUI colour theme (any bubbletint theme id, e.g. "dracula", "nord")
# theme = "dracula"

# Log level: debug, info, warn, error
# log_level = "warn"

# Write logs to this file (rotated) instead of stderr
# log_file = "~/.cache/timeflow/timeflow.log"

# Diary autosave delay after the last keystroke
# autosave_delay = "800ms"

# How long "Saved" messages stay visible
# status_timeout = "1.5s"

# How often the TUI refreshes the active task
# tick_interval = "1m"
`
}
