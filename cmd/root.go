package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/timeflow/internal/cli"
	"github.com/xolan/timeflow/internal/cli/handlers"
)

var rootCmd = &cobra.Command{
	Use:   "timeflow",
	Short: "A daily planner for tasks, diary entries and goals",
	Long: `timeflow is a daily planner: time-boxed tasks on a schedule, one diary
page per day and a checklist of goals.

Usage:
  timeflow                                      Show today's schedule
  timeflow day tomorrow                         Show tomorrow's schedule
  timeflow now                                  Show the task running right now
  timeflow task add <title> --start 09:00 --end 10:00
  timeflow task done <id>                       Mark a task done (or open again)
  timeflow diary                                Show the last viewed diary page
  timeflow diary write "Shipped it"             Save today's diary page
  timeflow cal                                  Show the diary calendar
  timeflow goal add <title>                     Add a goal
  timeflow tui                                  Launch the interactive UI

Dates: YYYY-MM-DD, today, tomorrow or yesterday
Times: 24-hour HH:MM`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		showDay(args)
	},
}

// dayCmd represents the day command
var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show the schedule of a day",
	Long: `Show the tasks scheduled on a day, ordered by start time.

When the day is today, the task whose time span contains the current minute
is marked with '>'.

Examples:
  timeflow day                 Today
  timeflow day tomorrow        Tomorrow
  timeflow day 2025-06-01      A specific date`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		showDay(args)
	},
}

// nowCmd represents the now command
var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Show the task running right now",
	Long:  `Show today's active task and how long it has left, or the next task if nothing is running.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(handlers.ShowNow)
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check stored data health",
	Long:  `Check every stored collection (tasks, diary entries, goals) and report missing or unreadable values and their backups.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(handlers.Validate)
	},
}

func init() {
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(nowCmd)
	rootCmd.AddCommand(validateCmd)

	dayCmd.ValidArgsFunction = completeFirstArg(completeDate)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"timeflow version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func showDay(args []string) {
	date := ""
	if len(args) > 0 {
		date = args[0]
	}
	withServices(func(d *cli.Deps) {
		handlers.ShowDay(d, date)
	})
}
