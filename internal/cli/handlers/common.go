// Package handlers implements the CLI commands on top of the services.
// Each handler prints to deps.Stdout, reports problems on deps.Stderr and
// calls deps.Exit(1) on invalid input.
package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xolan/timeflow/internal/cli"
	"github.com/xolan/timeflow/internal/timeutil"
	"github.com/xolan/timeflow/internal/validate"
)

// parseID parses a task or goal id, printing an error on failure.
func parseID(deps *cli.Deps, s, hint string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid id '%s'. Id must be a positive number\n", s)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
		deps.Exit(1)
		return 0, false
	}
	return id, true
}

// resolveDate turns "today", "tomorrow", "yesterday" or a YYYY-MM-DD key
// into a date key. An empty string resolves to fallback.
func resolveDate(deps *cli.Deps, s, fallback string) (string, bool) {
	now := deps.Services.Clock()
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return fallback, true
	case "today":
		return timeutil.Today(now), true
	case "tomorrow":
		return timeutil.Tomorrow(now), true
	case "yesterday":
		return timeutil.DateKey(timeutil.StartOfDay(now).AddDate(0, 0, -1)), true
	}
	if key := strings.TrimSpace(s); timeutil.IsDateKey(key) {
		return key, true
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid date '%s'\n", s)
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use YYYY-MM-DD, 'today', 'tomorrow' or 'yesterday'")
	deps.Exit(1)
	return "", false
}

// reportError prints err, with a field-specific line for validation
// failures, and exits.
func reportError(deps *cli.Deps, err error) {
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid %s\n", verr.Field)
		_, _ = fmt.Fprintf(deps.Stderr, "  %v\n", verr)
	} else {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
	}
	deps.Exit(1)
}
