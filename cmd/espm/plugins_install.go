package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newPluginsInstallCmd() *cobra.Command {
	timeout := TimeoutOptions{Timeout: 10 * time.Minute}
	parallel := 4

	cmd := &cobra.Command{
		Use:   "install <name>...",
		Short: "Install or update plugins from the index",
		Long: `Download plug-ins from the plug-in index into the plug-in folder.
An installed plug-in is downloaded again and replaced, which is how plug-ins
are updated.`,
		Example: `  espm plugins install "World Forge"
  espm plugins install "World Forge" "Ember Waste"`,
		Args: cobra.MinimumNArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			runCtx, cancel := timeout.ApplyToContext(ctx.Context)
			defer cancel()

			plugins, installErr := ctx.Container.PluginService().InstallAll(runCtx, args, parallel)
			for _, p := range plugins {
				installed, _ := p.Versions()
				path, _ := p.Path()
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Installed %s %s to %s\n", p.Name(), *installed, path); err != nil {
					return err
				}
			}
			return installErr
		}),
	}

	timeout.RegisterFlags(cmd)
	cmd.Flags().IntVar(&parallel, "parallel", parallel, "Maximum concurrent downloads")
	return cmd
}
