package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newPluginsIconCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "icon <name>",
		Short: "Save the icon of a plugin",
		Long: `Save a plug-in's icon. The icon is read from the plug-in folder when the
plug-in is installed, otherwise downloaded from the icon URL in the index.
A plug-in without an icon is reported but is not an error.`,
		Example: `  espm plugins icon "World Forge" --output world-forge.png
  espm plugins icon "World Forge" --output - > icon.png`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			data, ok, err := ctx.Container.PluginService().Icon(ctx.Context, args[0])
			if err != nil {
				return err
			}
			if !ok {
				_, err := fmt.Fprintf(cmd.ErrOrStderr(), "No icon found for %s\n", args[0])
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write icon: %w", err)
			}
			ctx.Logger.Debug("icon written", "plugin", args[0], "path", output, "bytes", len(data))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write the icon to (- for stdout)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
