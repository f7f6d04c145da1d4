package cli

import (
	"context"

	"thought-echo/app"
	"thought-echo/config/setup"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local web UI",
		Long:  `Serve the notes list and editor on HOST:PORT until interrupted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return setup.Serve(ctx, opts.cfg, a)
			})
		},
	}
}
