// Package app provides the application context and dependency
// management for the legisync CLI. It centralizes configuration,
// logging, and the legisync instance behind one lifecycle.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/capitolworks/legisync"
	"github.com/capitolworks/legisync/pkg/errors"
)

// App represents the legisync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Legisync instance (lazy-initialized, singleton)
	mu       sync.Mutex
	legisync legisync.Legisync
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Legisync returns the legisync instance, creating it lazily if needed.
func (a *App) Legisync() (legisync.Legisync, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.legisync != nil {
		return a.legisync, nil
	}

	ls, err := legisync.New(a.buildOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "legisync", "", err)
	}
	a.legisync = ls
	return ls, nil
}

// Close releases the legisync instance and its store.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.legisync == nil {
		return
	}
	if err := a.legisync.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to close store")
	}
	a.legisync = nil
}

// buildOptions constructs legisync options from the app configuration.
func (a *App) buildOptions() []legisync.Option {
	var opts []legisync.Option

	if a.config.DataDir != "" {
		opts = append(opts, legisync.WithDataDir(a.config.DataDir))
	}
	if a.config.DatabasePath != "" {
		opts = append(opts, legisync.WithSQLite(a.config.DatabasePath))
	}
	if a.config.PeopleFile != "" {
		opts = append(opts, legisync.WithPeopleFile(a.config.PeopleFile))
	}
	if a.config.CommitteesFile != "" {
		opts = append(opts, legisync.WithCommitteesFile(a.config.CommitteesFile))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithLegisync sets a custom legisync instance (useful for testing).
func WithLegisync(ls legisync.Legisync) Option {
	return func(a *App) error {
		a.legisync = ls
		return nil
	}
}
