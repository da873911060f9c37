package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/espm-dev/espm/internal/infrastructure/container"
	"github.com/spf13/cobra"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization.
// Handles common setup: config loading, flag and environment overrides,
// dependency injection.
//
// Usage:
//
//	cmd := &cobra.Command{
//	    Use: "list",
//	    RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
//	        plugins, err := ctx.Container.PluginService().ListPlugins(ctx.Context, nil)
//	        ...
//	    }),
//	}
func withContainer(handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		v := settings(cmd)
		logger := slog.Default()

		runCtx := cmd.Context()
		if runCtx == nil {
			runCtx = context.Background()
		}

		c, err := container.New(runCtx, container.Options{
			SystemConfigPath: v.GetString("config"),
			PluginDir:        v.GetString("plugin-dir"),
			CatalogURL:       v.GetString("catalog-url"),
			HTTPTimeout:      v.GetDuration("http-timeout"),
			Logger:           logger,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		return handler(&CommandContext{
			Container: c,
			Logger:    logger,
			Context:   runCtx,
		}, cmd, args)
	}
}
