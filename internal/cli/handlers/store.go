package handlers

import (
	"fmt"
	"strconv"

	"github.com/xolan/timeflow/internal/cli"
	"github.com/xolan/timeflow/internal/storage"
)

// Validate checks every stored collection and exits 1 when one is corrupt.
func Validate(deps *cli.Deps) {
	report := deps.Services.Store.Health()

	_, _ = fmt.Fprintf(deps.Stdout, "Data directory: %s\n", deps.Services.Store.Dir())
	_, _ = fmt.Fprintf(deps.Stdout, "Namespace: %s\n\n", deps.Services.Store.Namespace())
	cli.WriteHealth(deps.Stdout, report)

	if !storage.Healthy(report) {
		_, _ = fmt.Fprintln(deps.Stderr, "\nError: Some collections could not be parsed")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'timeflow backups <name>' and 'timeflow restore <name>' to recover")
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "\nAll collections are healthy")
}

// ListBackups prints the backups of a collection.
func ListBackups(deps *cli.Deps, name string) {
	backups, err := deps.Services.Store.Backups(name)
	if err != nil {
		reportError(deps, err)
		return
	}
	cli.WriteBackups(deps.Stdout, name, backups)
}

// RestoreBackup replaces a collection with one of its backups. numStr
// defaults to the most recent backup.
func RestoreBackup(deps *cli.Deps, name, numStr string) {
	n := 1
	if numStr != "" {
		parsed, err := strconv.Atoi(numStr)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", numStr)
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: Use a number between 1 and %d\n", storage.MaxBackupCount)
			deps.Exit(1)
			return
		}
		n = parsed
	}

	if _, err := deps.Services.Store.Restore(name, n); err != nil {
		reportError(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Restored %s from backup %d\n", name, n)
}
