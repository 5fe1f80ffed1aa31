package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/timeflow/internal/service"
	"github.com/xolan/timeflow/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for timeflow.

Views available:
  - Schedule: The tasks of a day, with the running task highlighted
  - Diary: One page per day with autosave and a month calendar
  - Goals: A checklist of goals
  - Config: View settings and pick a theme

Changes made from another terminal (for example 'timeflow task add') show up
immediately.

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-4: Jump to specific view
  - j/k or arrows: Navigate within lists
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

// runTUI initializes and runs the TUI application
func runTUI() {
	services, err := service.NewServices(service.Options{Quiet: true})
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error initializing services: %v\n", err)
		deps.Exit(1)
		return
	}
	defer services.Close()

	if err := tui.Run(services); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error running TUI: %v\n", err)
		deps.Exit(1)
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI()
		return true
	}
	return false
}
