package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/timeflow/internal/cli"
	"github.com/xolan/timeflow/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for timeflow.

Shows the configuration file location, whether it exists, and all current settings.
Configuration values are merged from the config file with sensible defaults.

By default, timeflow works without any configuration file. All settings have defaults:
  - data_dir: <config dir>/timeflow/data
  - namespace: timeflow
  - locale: en
  - autosave_delay: 800ms

Examples:
  timeflow config                  Show all current settings
  timeflow config --path           Print only the config file path
  timeflow config init             Write a commented sample config file

Configuration file location:
  ~/.config/timeflow/config.toml             Linux
  ~/Library/Application Support/timeflow     macOS
  %APPDATA%\timeflow\config.toml             Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		pathOnly, _ := cmd.Flags().GetBool("path")
		withServices(func(d *cli.Deps) {
			if pathOnly {
				handlers.ShowConfigPath(d)
				return
			}
			handlers.ShowConfig(d)
		})
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(handlers.InitConfig)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.Flags().Bool("path", false, "Print only the config file path")
}
