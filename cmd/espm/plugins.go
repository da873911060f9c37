package main

import (
	"github.com/spf13/cobra"
)

// newPluginsCmd builds the plugins command group.
func newPluginsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Manage plugins",
		Long: `Manage Endless Sky plug-ins. List installed and available plug-ins,
install or update them from the plug-in index, and remove them.`,
	}

	cmd.AddCommand(
		newPluginsListCmd(),
		newPluginsInfoCmd(),
		newPluginsInstallCmd(),
		newPluginsRemoveCmd(),
		newPluginsIconCmd(),
		newPluginsOutdatedCmd(),
	)
	return cmd
}
