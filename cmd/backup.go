package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/timeflow/internal/cli"
	"github.com/xolan/timeflow/internal/cli/handlers"
	"github.com/xolan/timeflow/internal/storage"
)

// backupsCmd represents the backups command
var backupsCmd = &cobra.Command{
	Use:   "backups <name>",
	Short: "List backups of a collection",
	Long: `List the backups kept for a collection. A backup is taken before every delete and restore.

Collections: ` + strings.Join(storage.Names, ", "),
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withServices(func(d *cli.Deps) {
			handlers.ListBackups(d, args[0])
		})
	},
}

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore <name> [n]",
	Short: "Restore a collection from backup",
	Long: `Replace a collection with one of its backups (1 = most recent, the default).
The current value is backed up first, so a restore can be undone with another restore.

Examples:
  timeflow restore tasks          Undo the last task delete
  timeflow restore goals 2        Restore the second most recent goals backup`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		n := ""
		if len(args) > 1 {
			n = args[1]
		}
		withServices(func(d *cli.Deps) {
			handlers.RestoreBackup(d, args[0], n)
		})
	},
}

func init() {
	rootCmd.AddCommand(backupsCmd)
	rootCmd.AddCommand(restoreCmd)

	backupsCmd.ValidArgsFunction = completeCollection
	restoreCmd.ValidArgsFunction = completeCollection
}
