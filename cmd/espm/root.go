package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "espm",
		Short: "Endless Sky plug-in manager",
		Long: `espm manages plug-ins for the game Endless Sky. It merges the plug-ins
installed in the game's plug-in folder with the community plug-in index,
and installs, updates and removes them.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(settings(cmd).GetBool("verbose"))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.espm/config.yaml)")
	flags.String("plugin-dir", "", "Endless Sky plug-in folder (env ESPM_PLUGIN_DIR)")
	flags.String("catalog-url", "", "plug-in index URL or file (env ESPM_CATALOG_URL)")
	flags.Duration("http-timeout", 0, "timeout for index and icon requests (env ESPM_HTTP_TIMEOUT, default from config)")
	flags.BoolP("verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newPluginsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// settings layers environment variables (ESPM_*) under explicitly set
// flags. Flag names map to variables by upper-casing and replacing dashes,
// so --plugin-dir reads ESPM_PLUGIN_DIR.
func settings(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ESPM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	_ = v.BindPFlags(cmd.Flags())
	return v
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
