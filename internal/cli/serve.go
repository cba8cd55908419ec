package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/proteus/pkg/console"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP console",
		Long:  "Serve the JSON console for browsing features and editing overrides until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := getDeps(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = deps.ConsoleAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := console.NewHandler(deps.Book, console.WithLogger(deps.Logger))
			return console.Run(ctx, addr, handler, deps.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from PROTEUS_CONSOLE_ADDR)")
	return cmd
}
