package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/timeflow/internal/cli"
)

// ShowConfig displays the current configuration
func ShowConfig(deps *cli.Deps) {
	cfg := deps.Services.Config.Get()
	path := deps.Services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	dataDir := deps.Services.Store.Dir()
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	_, _ = fmt.Fprintf(deps.Stdout, "data_dir:       %s\n", dataDir)
	_, _ = fmt.Fprintf(deps.Stdout, "namespace:      %s\n", cfg.Namespace)
	_, _ = fmt.Fprintf(deps.Stdout, "locale:         %s\n", cfg.Locale)
	_, _ = fmt.Fprintf(deps.Stdout, "theme:          %s\n", cfg.Theme)
	_, _ = fmt.Fprintf(deps.Stdout, "log_level:      %s\n", cfg.LogLevel)
	if cfg.LogFile != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "log_file:       %s\n", cfg.LogFile)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "autosave_delay: %s\n", cfg.AutosaveDelay.Duration)
	_, _ = fmt.Fprintf(deps.Stdout, "status_timeout: %s\n", cfg.StatusTimeout.Duration)
	_, _ = fmt.Fprintf(deps.Stdout, "tick_interval:  %s\n", cfg.TickInterval.Duration)
}

// ShowConfigPath prints only the config file path.
func ShowConfigPath(deps *cli.Deps) {
	_, _ = fmt.Fprintln(deps.Stdout, deps.Services.Config.GetPath())
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	err := deps.Services.Config.Init()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	path := deps.Services.Config.GetPath()
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}
