package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/proteus"
	"github.com/dmitrymomot/proteus/internal/config"
)

// Version is set via ldflags at build time
var Version = "dev"

// NewRootCmd creates the root command for the 'proteus' CLI.
// Dependencies already present on the command context are used as is;
// otherwise they are built from the environment before any subcommand runs.
func NewRootCmd() *cobra.Command {
	var (
		envFiles []string
		app      *proteus.Proteus
	)

	rootCmd := &cobra.Command{
		Use:     "proteus",
		Short:   "Inspect feature flags and manage local overrides",
		Version: Version,
		Long: `Proteus - feature flags with local overrides

Every feature resolves to its local override when one of the declared type
exists, and to the remote provider of its owner otherwise.

Features:
  list [query]                 List catalog features, optionally filtered
  get <key>                    Show one feature with remote and local values

Overrides:
  set <key> <value>            Override a feature locally
  unset <key>                  Remove the override of a feature
  reset                        Remove every override

Console:
  serve [--addr :8089]         Serve the HTTP console

Configuration is read from PROTEUS_* environment variables and .env files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := getDeps(cmd); err == nil {
				return nil
			}

			var cfg proteus.Config
			if err := config.Load(&cfg, envFiles...); err != nil {
				return err
			}
			p, err := proteus.Open(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			app = p

			ctx := WithDependencies(p.Scope(cmd.Context()), &Dependencies{
				Book:        p.Book(),
				Logger:      p.Logger(),
				ConsoleAddr: cfg.ConsoleAddr,
			})
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Load environment from these files (default .env when present)")

	rootCmd.AddCommand(
		newListCmd(),
		newGetCmd(),

		newSetCmd(),
		newUnsetCmd(),
		newResetCmd(),

		newServeCmd(),
	)

	return rootCmd
}

// Execute runs the CLI and exits the process on failure.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
