// Package cli wires configuration and logging for the rove commands.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/rove/internal/config"
	"github.com/bnema/rove/internal/logging"
)

// App carries the shared dependencies of every CLI command.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp loads configuration and builds the logger.
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: logging.DefaultConfig().TimeFormat,
	})

	return &App{Config: cfg, Logger: logger}, nil
}

// Context returns a context carrying the app logger.
func (a *App) Context() context.Context {
	return logging.WithContext(context.Background(), a.Logger)
}
