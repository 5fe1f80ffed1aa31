package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/timeflow/internal/cli"
	"github.com/xolan/timeflow/internal/cli/handlers"
)

// diaryCmd represents the diary command
var diaryCmd = &cobra.Command{
	Use:   "diary [date]",
	Short: "Show or write diary pages",
	Long: `Show the diary page of a day. Without a date the last viewed page is
shown, the same one the TUI reopens on.

Examples:
  timeflow diary                        Last viewed page
  timeflow diary yesterday              Yesterday's page
  timeflow diary write "Good day"       Replace today's page
  echo "notes" | timeflow diary write   Read the page from stdin`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date := ""
		if len(args) > 0 {
			date = args[0]
		}
		withServices(func(d *cli.Deps) {
			handlers.ShowDiary(d, date)
		})
	},
}

var diaryWriteCmd = &cobra.Command{
	Use:   "write [text...]",
	Short: "Replace the diary page of a day",
	Long:  `Replace the diary page of a day (today by default). Without text the page is read from stdin.`,
	Run: func(cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")
		text := strings.Join(args, " ")
		withServices(func(d *cli.Deps) {
			handlers.WriteDiary(d, date, text)
		})
	},
}

var diaryDatesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List days that have a diary page",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(handlers.ListDiaryDates)
	},
}

// calCmd represents the cal command
var calCmd = &cobra.Command{
	Use:   "cal",
	Short: "Show the diary calendar",
	Long: `Show a month grid of the diary. Days with a page are marked with '*' and the
selected diary day is bracketed.

Examples:
  timeflow cal                      Month of the selected diary day
  timeflow cal --shift -1           The month before
  timeflow cal --month 2025-02      February 2025`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		month, _ := cmd.Flags().GetString("month")
		shift, _ := cmd.Flags().GetInt("shift")
		withServices(func(d *cli.Deps) {
			handlers.ShowCalendar(d, month, shift)
		})
	},
}

func init() {
	rootCmd.AddCommand(diaryCmd)
	rootCmd.AddCommand(calCmd)
	diaryCmd.AddCommand(diaryWriteCmd, diaryDatesCmd)

	diaryWriteCmd.Flags().StringP("date", "d", "", "Date of the page (default today)")
	_ = diaryWriteCmd.RegisterFlagCompletionFunc("date", completeDateFlag)
	diaryCmd.ValidArgsFunction = completeFirstArg(completeDiaryDate)

	calCmd.Flags().StringP("month", "m", "", "Month to show (YYYY-MM)")
	calCmd.Flags().IntP("shift", "s", 0, "Move the month by this many months")
}
