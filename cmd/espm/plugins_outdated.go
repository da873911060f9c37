package main

import (
	"fmt"

	"github.com/espm-dev/espm/internal/application/dto"
	"github.com/spf13/cobra"
)

func newPluginsOutdatedCmd() *cobra.Command {
	output := DefaultOutputOptions()

	cmd := &cobra.Command{
		Use:   "outdated",
		Short: "List installed plugins whose index version differs",
		Long: `List installed plug-ins whose installed version string differs from the
version in the plug-in index. Versions are compared as plain strings.

Plug-ins copied into the plug-in folder by hand carry no espm manifest, so
their installed version is "unknown". If the index also lists them they are
always reported here until they are installed with "espm plugins install".`,
		Args:  cobra.NoArgs,
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
			formatter, err := output.Formatter(ctx, cmd)
			if err != nil {
				return err
			}

			plugins, err := ctx.Container.PluginService().Outdated(ctx.Context)
			if err != nil {
				return fmt.Errorf("failed to check for updates: %w", err)
			}
			return formatter.FormatList(dto.NewPluginViews(plugins))
		}),
	}

	output.RegisterFlags(cmd)
	return cmd
}
