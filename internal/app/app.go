package app

import (
	"io"
	"log/slog"
)

// App encapsulates the tool's dependencies, configuration, and lifecycle for
// a single invocation.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg, outW),
		config: cfg,
	}
}
