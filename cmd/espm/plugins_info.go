package main

import (
	"github.com/espm-dev/espm/internal/application/dto"
	"github.com/spf13/cobra"
)

func newPluginsInfoCmd() *cobra.Command {
	output := DefaultOutputOptions()

	cmd := &cobra.Command{
		Use:     "info <name>",
		Short:   "Show details of a plugin",
		Example: `  espm plugins info "World Forge"`,
		Args:    cobra.ExactArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			formatter, err := output.Formatter(ctx, cmd)
			if err != nil {
				return err
			}

			p, err := ctx.Container.PluginService().GetPlugin(ctx.Context, args[0])
			if err != nil {
				return err
			}
			return formatter.FormatDetail(dto.NewPluginView(p))
		}),
	}

	output.RegisterFlags(cmd)
	return cmd
}
