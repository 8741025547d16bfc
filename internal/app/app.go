package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/bootstack/internal/classpath"
	"github.com/vk/bootstack/internal/component"
	"github.com/vk/bootstack/internal/container"
	"github.com/vk/bootstack/internal/ctxlog"
	"github.com/vk/bootstack/internal/resources"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	container *container.Container
	resources *resources.Context
}

// New is the constructor for the main application. It returns a fully wired
// App with its own isolated logger writing to logW; the resolved resource
// locations are printed to outW when Run succeeds.
func New(outW, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	resolver, err := component.NewResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to create component resolver: %w", err)
	}

	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		container: container.New(cfg.RootPath, resolver, classpath.NewBuilder()),
	}, nil
}

// Run performs component discovery, installs the resource context, and prints
// the resulting ordered resource locations, one per line.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "root", a.config.RootPath)

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	rc, err := a.container.Initialize(ctx)
	if err != nil {
		return fmt.Errorf("component discovery failed: %w", err)
	}
	a.resources = rc

	for _, loc := range rc.Locations() {
		fmt.Fprintln(a.outW, loc)
	}

	status := a.container.Status()
	a.logger.Info("Resource context installed.",
		"loaded", status.Loaded, "disabled", status.Disabled, "skipped", status.Skipped)
	return nil
}

// Resources returns the installed resource context, nil before a successful
// Run. This is primarily for testing and embedding.
func (a *App) Resources() *resources.Context {
	return a.resources
}
