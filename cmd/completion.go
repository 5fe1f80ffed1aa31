package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/timeflow/internal/service"
	"github.com/xolan/timeflow/internal/storage"
	"github.com/xolan/timeflow/internal/task"
	"github.com/xolan/timeflow/internal/timeutil"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a shell completion script for timeflow.

Besides commands and flags, the scripts complete planner data: task and
goal ids (with their titles), today/tomorrow/yesterday and diary days for
date arguments, color tags for --color and collection names for backups
and restore.

Examples:
  source <(timeflow completion bash)
  timeflow completion zsh > "${fpath[1]}/_timeflow"
  timeflow completion fish > ~/.config/fish/completions/timeflow.fish
  timeflow completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: shells,
	Args:      cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

var shells = []string{"bash", "zsh", "fish", "powershell"}

// dateWords are the relative dates every date argument accepts.
var dateWords = []string{"today", "tomorrow", "yesterday"}

type completionFunc = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

func init() {
	rootCmd.AddCommand(completionCmd)
}

// generateCompletion writes the completion script for shell to stdout.
func generateCompletion(shell string) {
	if err := writeCompletion(rootCmd, shell, deps.Stdout); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Supported shells: %s\n", strings.Join(shells, ", "))
		deps.Exit(1)
	}
}

func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	var err error
	switch shell {
	case "bash":
		err = root.GenBashCompletionV2(w, true)
	case "zsh":
		err = root.GenZshCompletion(w)
	case "fish":
		err = root.GenFishCompletion(w, true)
	case "powershell":
		err = root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell '%s'", shell)
	}
	if err != nil {
		return fmt.Errorf("failed to generate %s completion: %w", shell, err)
	}
	return nil
}

// withPrefix keeps the candidates starting with toComplete.
func withPrefix(candidates []string, toComplete string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, toComplete) {
			out = append(out, c)
		}
	}
	return out
}

// completeFirstArg adapts a completion func so it only offers values for
// the first positional argument.
func completeFirstArg(f func(toComplete string) []string) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return f(toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// completeDate offers the relative date words and today's key.
func completeDate(toComplete string) []string {
	candidates := append([]string{}, dateWords...)
	if services, err := deps.Services(); err == nil {
		candidates = append(candidates, timeutil.Today(services.Clock()))
		services.Close()
	}
	return withPrefix(candidates, toComplete)
}

// completeDiaryDate offers the relative date words and every day that has
// a diary page, newest first.
func completeDiaryDate(toComplete string) []string {
	candidates := append([]string{}, dateWords...)
	if services, err := deps.Services(); err == nil {
		dates := services.Diary.Dates()
		for i := len(dates) - 1; i >= 0; i-- {
			candidates = append(candidates, dates[i])
		}
		services.Close()
	}
	return withPrefix(candidates, toComplete)
}

func completeColor(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(task.Colors))
	for _, c := range task.Colors {
		names = append(names, string(c))
	}
	return withPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func completeDateFlag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeDate(toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeTaskID offers every task id with "date start title" as its
// description.
func completeTaskID(toComplete string) []string {
	services, err := deps.Services()
	if err != nil {
		return nil
	}
	defer services.Close()

	var out []string
	for _, t := range services.Tasks.All() {
		id := strconv.FormatInt(t.ID, 10)
		if strings.HasPrefix(id, toComplete) {
			out = append(out, fmt.Sprintf("%s\t%s %s %s", id, t.Date, t.StartTime, t.Title))
		}
	}
	return out
}

// completeGoalID offers every goal id with its title as the description.
func completeGoalID(toComplete string) []string {
	services, err := deps.Services()
	if err != nil {
		return nil
	}
	defer services.Close()

	var out []string
	for _, g := range services.Goals.List() {
		id := strconv.FormatInt(g.ID, 10)
		if strings.HasPrefix(id, toComplete) {
			out = append(out, id+"\t"+g.Title)
		}
	}
	return out
}

// completeCollection offers collection names for the first argument and,
// for restore, the stored backup numbers of that collection for the second.
func completeCollection(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch {
	case len(args) == 0:
		return withPrefix(storage.Names, toComplete), cobra.ShellCompDirectiveNoFileComp
	case len(args) == 1 && cmd.Name() == "restore":
		return completeBackupNumber(args[0], toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func completeBackupNumber(name, toComplete string) []string {
	if service.CheckName(name) != nil {
		return nil
	}
	services, err := deps.Services()
	if err != nil {
		return nil
	}
	defer services.Close()

	backups, err := services.Store.Backups(name)
	if err != nil {
		return nil
	}
	var out []string
	for _, b := range backups {
		n := strconv.Itoa(b.Number)
		if strings.HasPrefix(n, toComplete) {
			out = append(out, fmt.Sprintf("%s\t%d bytes", n, b.Size))
		}
	}
	return out
}
