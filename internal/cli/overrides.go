package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/proteus/pkg/feature"
	"github.com/dmitrymomot/proteus/pkg/featurenote"
)

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Override a feature locally",
		Long:  "Store a local override for a feature. The value is parsed with the feature's declared type: long, double, boolean (true/false) or text.",
		Example: `  proteus set new_checkout true
  proteus set page_size 50`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			f, err := deps.Book.GetFeature(ctx, args[0])
			if err != nil {
				return lookupError(args[0], err)
			}
			if err := deps.Book.SaveMockedConfigString(ctx, f, args[1]); err != nil {
				if errors.Is(err, feature.ErrInvalidValue) {
					return fmt.Errorf("%q is not a valid %s value", args[1], f.Type())
				}
				return fmt.Errorf("failed to save override: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (override)\n", f.Key(), args[1])
			return nil
		},
	}
}

func newUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "unset <key>",
		Aliases: []string{"rm"},
		Short:   "Remove the override of a feature",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			f, err := deps.Book.GetFeature(ctx, args[0])
			if err != nil {
				return lookupError(args[0], err)
			}
			if err := deps.Book.RemoveMockedConfig(ctx, f); err != nil {
				return fmt.Errorf("failed to remove override: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s override removed\n", f.Key())
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove every override",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			if err := deps.Book.ClearMockedConfigs(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear overrides: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "All overrides removed")
			return nil
		},
	}
}

func lookupError(key string, err error) error {
	if errors.Is(err, featurenote.ErrFeatureNotFound) {
		return fmt.Errorf("feature %q is not in the catalog", key)
	}
	return fmt.Errorf("failed to get feature: %w", err)
}
