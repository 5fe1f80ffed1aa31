package service

import (
	"github.com/xolan/timeflow/internal/config"
	"github.com/xolan/timeflow/internal/diary"
	"github.com/xolan/timeflow/internal/goal"
	"github.com/xolan/timeflow/internal/logging"
	"github.com/xolan/timeflow/internal/selection"
	"github.com/xolan/timeflow/internal/storage"
	"github.com/xolan/timeflow/internal/task"
	"github.com/xolan/timeflow/internal/timer"
	"github.com/xolan/timeflow/internal/timeutil"
)

// Options tunes how services are wired. Zero values use the wall clock and
// real timers.
type Options struct {
	Clock     timeutil.Clock
	Scheduler timer.Scheduler
	// Quiet keeps log lines off stderr. The TUI sets it; a configured
	// log_file still receives output.
	Quiet bool
}

// Services holds all service instances used by the application
type Services struct {
	Config    *ConfigService
	Store     *StoreService
	Tasks     *task.Registry
	Diary     *diary.Registry
	Goals     *goal.Registry
	Selection *selection.Controller
	Logger    *logging.Logger
	Clock     timeutil.Clock
}

// NewServices creates a new Services instance from the config file at the
// default path.
func NewServices(opts Options) (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	logFile, err := cfg.ResolveLogFile()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: logFile, Quiet: opts.Quiet})
	if err != nil {
		return nil, err
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(dataDir, cfg.Namespace, logger)
	if err != nil {
		return nil, err
	}

	return NewServicesWithStore(store, configPath, cfg, logger, opts), nil
}

// NewServicesWithPaths creates a new Services instance over a diskv store in
// dataDir (useful for testing)
func NewServicesWithPaths(dataDir, configPath string, cfg config.Config, opts Options) (*Services, error) {
	logger := logging.Nop()
	store, err := storage.Open(dataDir, cfg.Namespace, logger)
	if err != nil {
		return nil, err
	}
	return NewServicesWithStore(store, configPath, cfg, logger, opts), nil
}

// NewServicesWithStore wires registries and the selection controller over
// an existing store.
func NewServicesWithStore(store *storage.Store, configPath string, cfg config.Config, logger *logging.Logger, opts Options) *Services {
	if logger == nil {
		logger = logging.Nop()
	}
	if opts.Clock == nil {
		opts.Clock = timeutil.SystemClock
	}

	tasks := task.New(store, opts.Clock, logger)
	entries := diary.New(store, opts.Clock, logger)
	goals := goal.New(store, opts.Clock, logger)

	controller := selection.New(tasks, entries, goals, selection.Options{
		Clock:         opts.Clock,
		Scheduler:     opts.Scheduler,
		AutosaveDelay: cfg.AutosaveDelay.Duration,
		StatusTimeout: cfg.StatusTimeout.Duration,
		Locale:        cfg.LocaleValue(),
		Logger:        logger,
	})

	return &Services{
		Config:    NewConfigService(configPath, cfg),
		Store:     NewStoreService(store, controller),
		Tasks:     tasks,
		Diary:     entries,
		Goals:     goals,
		Selection: controller,
		Logger:    logger,
		Clock:     opts.Clock,
	}
}

// Close writes any pending diary edit and flushes the logger.
func (s *Services) Close() {
	s.Selection.Flush()
	s.Logger.Sync()
}
