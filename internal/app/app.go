package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/riscy-lib/rbuild/internal/ctxlog"
	"github.com/riscy-lib/rbuild/internal/project"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	project *project.Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and loaded project
// configuration. A failure to load the project file is a fatal startup
// error and panics; callers recover it at the process boundary.
func NewApp(outW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	proj, err := project.Load(ctx, config.ProjectFile)
	if err != nil {
		panic(fmt.Errorf("failed to load project configuration: %w", err))
	}
	proj.Defines = append(proj.Defines, config.Defines...)
	logger.Debug("Project configuration ready.", "top", proj.Top, "defines", proj.Defines)

	return &App{
		outW:    outW,
		logger:  logger,
		config:  config,
		project: proj,
	}
}

// Project returns the resolved project configuration. This is primarily for testing.
func (a *App) Project() *project.Config {
	return a.project
}
