package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/timeflow/internal/cli"
	"github.com/xolan/timeflow/internal/cli/handlers"
)

// goalCmd groups the goal subcommands
var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals",
	Long:  `Keep a checklist of goals, newest first.`,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(handlers.ListGoals)
	},
}

var goalAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a goal",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := strings.Join(args, " ")
		withServices(func(d *cli.Deps) {
			handlers.AddGoal(d, title)
		})
	},
}

var goalDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a goal done, or open again",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withServices(func(d *cli.Deps) {
			handlers.ToggleGoal(d, args[0])
		})
	},
}

var goalRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a goal",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withServices(func(d *cli.Deps) {
			handlers.DeleteGoal(d, args[0])
		})
	},
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withServices(handlers.ListGoals)
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalAddCmd, goalDoneCmd, goalRmCmd, goalListCmd)

	goalDoneCmd.ValidArgsFunction = completeFirstArg(completeGoalID)
	goalRmCmd.ValidArgsFunction = completeFirstArg(completeGoalID)
}
