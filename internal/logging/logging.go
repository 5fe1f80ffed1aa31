// Package logging builds the zap logger shared by the store and registries.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where log lines go.
type Options struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string
	// File, when set, receives JSON lines through a rotating writer
	// instead of stderr.
	File string
	// Quiet drops console output entirely when File is empty. The TUI sets
	// it so log lines never land on the alternate screen.
	Quiet bool
}

// Logger wraps zap.SugaredLogger with the few helpers the planner uses.
type Logger struct {
	*zap.SugaredLogger
}

// New creates a logger from opts.
func New(opts Options) (*Logger, error) {
	level := zapcore.WarnLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}

	var core zapcore.Core
	switch {
	case opts.File != "":
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    5, // MB
				MaxBackups: 3,
				MaxAge:     30, // days
			}),
			level,
		)
	case opts.Quiet:
		core = zapcore.NewNopCore()
	default:
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		core = zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(os.Stderr),
			level,
		)
	}

	return &Logger{SugaredLogger: zap.New(core).Sugar()}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// WithComponent tags every line with the emitting component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With("component", component)}
}

// Sync flushes buffered output. Errors from syncing stderr are ignored.
func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}
