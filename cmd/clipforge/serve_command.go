package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"clipforge/internal/daemon"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the pipeline daemon and HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, store, logger, cleanup, err := ctx.openPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			d, err := daemon.New(cfg, store, pipe, logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := d.Start(runCtx); err != nil {
				return fmt.Errorf("start daemon: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "clipforge serving on %s\n", d.Addr())

			<-runCtx.Done()
			d.Stop()
			return nil
		},
	}
}
