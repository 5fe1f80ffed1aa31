package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/xolan/timeflow/internal/cli"
	"github.com/xolan/timeflow/internal/service"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)
	// Services opens the planner data. Commands that never touch it, such
	// as completion, do not call it.
	Services func() (*service.Services, error)
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		Exit:   os.Exit,
		Services: func() (*service.Services, error) {
			return service.NewServices(service.Options{})
		},
	}
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}

// withServices opens the planner, runs fn with handler dependencies and
// writes any pending diary edit afterwards.
func withServices(fn func(d *cli.Deps)) {
	services, err := deps.Services()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open planner data")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check data_dir and the other settings shown by 'timeflow config'")
		deps.Exit(1)
		return
	}
	defer services.Close()

	fn(&cli.Deps{
		Stdout:   deps.Stdout,
		Stderr:   deps.Stderr,
		Stdin:    deps.Stdin,
		Exit:     deps.Exit,
		Services: services,
		Config:   services.Config.Get(),
	})
}
