package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spektr-org/launchdash/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Long: `Loads the launch records once and serves the dashboard page, chart
images and JSON API until interrupted. Each browser session keeps its own
site and payload range selection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
	cmd.Flags().String("listen", "", "listen address (overrides listen)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	ds, err := opts.loadDataset()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return server.New(ds, opts.cfg).Start(ctx)
}
