package cli

import (
	"io"

	"github.com/xolan/timeflow/internal/config"
	"github.com/xolan/timeflow/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services
	Services *service.Services

	Config config.Config
}
