package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/timeflow/internal/cli"
	"github.com/xolan/timeflow/internal/cli/handlers"
	"github.com/xolan/timeflow/internal/task"
)

// taskCmd groups the task subcommands
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage scheduled tasks",
	Long: `Add, edit, complete and remove time-boxed tasks.

Each task has a title, a start and end time (24-hour HH:MM), a date and a
color tag: blue, green, purple, orange or red.`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a task to a day. Without --start/--end the task gets a one hour slot
starting at the next half hour. Without --date it goes on today.

Examples:
  timeflow task add Standup --start 09:30 --end 09:45
  timeflow task add "Write report" -s 14:00 -e 16:00 -d tomorrow -c purple`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in := handlers.TaskInput{Title: strings.Join(args, " ")}
		in.Start, _ = cmd.Flags().GetString("start")
		in.End, _ = cmd.Flags().GetString("end")
		in.Date, _ = cmd.Flags().GetString("date")
		in.Color, _ = cmd.Flags().GetString("color")
		withServices(func(d *cli.Deps) {
			handlers.AddTask(d, in)
		})
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task",
	Long: `Change any field of a task. Only the flags you pass are changed.

Examples:
  timeflow task edit 1717228800000 --title "Standup (remote)"
  timeflow task edit 1717228800000 --start 10:00 --end 10:30 --date tomorrow`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := patchFromFlags(cmd)
		withServices(func(d *cli.Deps) {
			handlers.EditTask(d, args[0], p)
		})
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task done, or open again",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withServices(func(d *cli.Deps) {
			handlers.ToggleTask(d, args[0])
		})
	},
}

var taskRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Long:    `Delete a task. The previous task list is kept as a backup; use 'timeflow restore tasks' to undo.`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withServices(func(d *cli.Deps) {
			handlers.DeleteTask(d, args[0])
		})
	},
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `List the tasks of a day (today by default), or every task with --all.`,
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")
		all, _ := cmd.Flags().GetBool("all")
		withServices(func(d *cli.Deps) {
			handlers.ListTasks(d, date, all)
		})
	},
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskEditCmd, taskDoneCmd, taskRmCmd, taskListCmd)

	taskAddCmd.Flags().StringP("start", "s", "", "Start time (HH:MM)")
	taskAddCmd.Flags().StringP("end", "e", "", "End time (HH:MM)")
	taskAddCmd.Flags().StringP("date", "d", "", "Date (YYYY-MM-DD, today, tomorrow)")
	taskAddCmd.Flags().StringP("color", "c", "", "Color tag (blue, green, purple, orange, red)")

	taskEditCmd.Flags().String("title", "", "New title")
	taskEditCmd.Flags().StringP("start", "s", "", "New start time (HH:MM)")
	taskEditCmd.Flags().StringP("end", "e", "", "New end time (HH:MM)")
	taskEditCmd.Flags().StringP("date", "d", "", "New date (YYYY-MM-DD, today, tomorrow)")
	taskEditCmd.Flags().StringP("color", "c", "", "New color tag")

	taskListCmd.Flags().StringP("date", "d", "", "Date to list (default today)")
	taskListCmd.Flags().BoolP("all", "a", false, "List every stored task")

	for _, c := range []*cobra.Command{taskEditCmd, taskDoneCmd, taskRmCmd} {
		c.ValidArgsFunction = completeFirstArg(completeTaskID)
	}
	for _, c := range []*cobra.Command{taskAddCmd, taskEditCmd} {
		_ = c.RegisterFlagCompletionFunc("color", completeColor)
	}
	for _, c := range []*cobra.Command{taskAddCmd, taskEditCmd, taskListCmd} {
		_ = c.RegisterFlagCompletionFunc("date", completeDateFlag)
	}
}

// patchFromFlags sets only the fields whose flags were passed.
func patchFromFlags(cmd *cobra.Command) task.Patch {
	var p task.Patch
	set := func(flag string) *string {
		if !cmd.Flags().Changed(flag) {
			return nil
		}
		v, _ := cmd.Flags().GetString(flag)
		return &v
	}
	p.Title = set("title")
	p.StartTime = set("start")
	p.EndTime = set("end")
	p.Date = set("date")
	p.Color = set("color")
	return p
}
