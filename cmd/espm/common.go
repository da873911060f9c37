package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/espm-dev/espm/internal/application/ports"
	"github.com/spf13/cobra"
)

var validFormats = []string{"table", "json", "yaml"}

// OutputOptions contains the rendering flags shared by listing commands.
type OutputOptions struct {
	Format  string
	NoColor bool
}

// DefaultOutputOptions returns sensible defaults.
func DefaultOutputOptions() OutputOptions {
	return OutputOptions{Format: "table"}
}

// RegisterFlags adds output flags to a cobra command.
func (opts *OutputOptions) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: table, json, yaml")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", opts.NoColor,
		"Disable colored table output (also honors NO_COLOR)")
}

// ValidateFlags validates output options.
func (opts *OutputOptions) ValidateFlags() error {
	if !slices.Contains(validFormats, opts.Format) {
		return fmt.Errorf("invalid format: %s (valid: table, json, yaml)", opts.Format)
	}
	return nil
}

// Formatter creates the formatter writing to the command's output.
func (opts *OutputOptions) Formatter(ctx *CommandContext, cmd *cobra.Command) (ports.OutputFormatter, error) {
	if err := opts.ValidateFlags(); err != nil {
		return nil, err
	}
	return ctx.Container.FormatterFactory().Create(opts.Format, cmd.OutOrStdout(), ports.FormatterOptions{
		Indent: true,
		Color:  !opts.NoColor && os.Getenv("NO_COLOR") == "",
	})
}

// TimeoutOptions bounds commands that talk to the network.
type TimeoutOptions struct {
	Timeout time.Duration
}

// RegisterFlags adds the timeout flag to a cobra command.
func (opts *TimeoutOptions) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Global timeout for the whole command (0 to disable)")
}

// ApplyToContext applies timeout to context.
// Returns new context and cancel function.
func (opts *TimeoutOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	// No timeout - return no-op cancel
	return ctx, func() {}
}
