package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/ck3graph/internal/ctxlog"
	"github.com/vk/ck3graph/internal/savefile"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. Logs go to logW, the
// run summary to outW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.Options, logW)
	logger.Debug("Logger configured successfully.")
	return &App{outW: outW, logger: logger, config: cfg}
}

// Run extracts the configured save and prints a summary of the result.
func (a *App) Run(ctx context.Context) (*Extraction, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "save", a.config.SavePath)

	data, err := savefile.Open(a.config.SavePath)
	if err != nil {
		return nil, err
	}
	ex, err := Extract(ctx, data, a.config.Options, nil)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	a.logger.Info("Extraction finished.",
		"format", ex.Format.String(),
		"schema_errors", len(ex.SchemaErrors),
		"reference_errors", len(ex.ReferenceErrors),
	)

	if err := WriteSummary(a.outW, a.config.SavePath, ex); err != nil {
		return nil, err
	}
	a.logger.Debug("App.Run method finished.")
	return ex, nil
}
