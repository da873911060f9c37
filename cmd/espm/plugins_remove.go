package main

import (
	"fmt"

	"github.com/espm-dev/espm/internal/infrastructure/prompt"
	"github.com/spf13/cobra"
)

// Prompter confirms destructive operations.
type Prompter interface {
	IsInteractive() bool
	ConfirmRemoval(name, path string) (bool, error)
}

// newPrompter is replaced in tests.
var newPrompter = func() Prompter {
	return prompt.NewTerminalPrompter()
}

func newPluginsRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <name>...",
		Aliases: []string{"rm", "uninstall"},
		Short:   "Remove installed plugins",
		Example: `  espm plugins remove "World Forge"
  espm plugins remove --yes "World Forge" "Ember Waste"`,
		Args: cobra.MinimumNArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			svc := ctx.Container.PluginService()
			out := cmd.OutOrStdout()

			prompter := newPrompter()
			if !yes && !prompter.IsInteractive() {
				return prompt.NonInteractiveError(args)
			}

			for _, name := range args {
				if !yes {
					p, err := svc.GetPlugin(ctx.Context, name)
					if err != nil {
						return err
					}
					if path, installed := p.Path(); installed {
						ok, err := prompter.ConfirmRemoval(p.Name(), path)
						if err != nil {
							return fmt.Errorf("confirmation failed (use --yes to skip): %w", err)
						}
						if !ok {
							if _, err := fmt.Fprintf(out, "Skipped %s\n", p.Name()); err != nil {
								return err
							}
							continue
						}
					}
				}

				p, err := svc.Remove(ctx.Context, name)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(out, "Removed %s\n", p.Name()); err != nil {
					return err
				}
			}
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
