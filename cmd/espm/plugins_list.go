package main

import (
	"fmt"

	"github.com/espm-dev/espm/internal/application/dto"
	apperrors "github.com/espm-dev/espm/internal/application/errors"
	"github.com/espm-dev/espm/internal/domain/services"
	"github.com/spf13/cobra"
)

type pluginsListOptions struct {
	output    OutputOptions
	filter    string
	installed bool
	available bool
	outdated  bool
}

func newPluginsListCmd() *cobra.Command {
	opts := &pluginsListOptions{output: DefaultOutputOptions()}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed and available plugins",
		Long: `List every plug-in known from the plug-in folder or the plug-in index.

The --filter flag takes an expression evaluated per plug-in with the fields
name, installed, available, installed_version, available_version, outdated,
homepage and authors.`,
		Example: `  espm plugins list
  espm plugins list --installed
  espm plugins list --filter 'available && !installed && authors contains "Zitchas"'
  espm plugins list --format json`,
		Args: cobra.NoArgs,
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
			formatter, err := opts.output.Formatter(ctx, cmd)
			if err != nil {
				return err
			}

			filter := services.NewPluginFilter()
			if opts.installed {
				filter = filter.WithInstalledOnly()
			}
			if opts.available {
				filter = filter.WithAvailableOnly()
			}
			if opts.outdated {
				filter = filter.WithOutdatedOnly()
			}
			if opts.filter != "" {
				program, err := services.CompilePluginFilter(opts.filter)
				if err != nil {
					return apperrors.NewValidationError("filter", err.Error())
				}
				filter = filter.WithFilterExpression(program)
			}

			plugins, err := ctx.Container.PluginService().ListPlugins(ctx.Context, filter)
			if err != nil {
				return fmt.Errorf("failed to list plugins: %w", err)
			}

			return formatter.FormatList(dto.NewPluginViews(plugins))
		}),
	}

	opts.output.RegisterFlags(cmd)
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Filter expression (expr syntax)")
	cmd.Flags().BoolVar(&opts.installed, "installed", false, "Only installed plugins")
	cmd.Flags().BoolVar(&opts.available, "available", false, "Only plugins listed in the index")
	cmd.Flags().BoolVar(&opts.outdated, "outdated", false, "Only installed plugins with a different index version")

	return cmd
}
