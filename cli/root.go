// Package cli is the thought-echo command line: the local web UI plus
// commands to manage notes straight from a terminal.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"thought-echo/app"
	"thought-echo/config"
	"thought-echo/config/setup"

	"github.com/spf13/cobra"
)

type options struct {
	cfg     *config.Config
	verbose bool
	logger  *slog.Logger
}

// NewRootCmd builds the command tree around cfg. --data-dir overrides
// cfg.DataDir.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{cfg: cfg}

	root := &cobra.Command{
		Use:   "thought-echo",
		Short: "Local notes kept in a single SQLite file",
		Long: `thought-echo keeps short text notes on this machine.
Run "thought-echo serve" for the web UI, or manage notes directly with
list, show, add, edit and rm.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = setup.NewLogger(cfg, cmd.ErrOrStderr(), opts.verbose)
			slog.SetDefault(opts.logger)
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory holding the notes database")

	root.AddCommand(
		newServeCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newAddCmd(opts),
		newEditCmd(opts),
		newRmCmd(opts),
	)

	return root
}

// Execute runs the command line against the process environment.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd(config.Load()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// withApp opens the store for the duration of fn.
func (o *options) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()

	store, err := setup.InitStore(ctx, o.cfg.DataDir, o.logger)
	if err != nil {
		return fmt.Errorf("open notes: %w", err)
	}
	defer setup.Shutdown(store, o.logger)

	return fn(ctx, setup.InitApp(store, o.logger))
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", arg)
	}
	return id, nil
}
