package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"clipforge/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the daemon log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.LogFilePath()
			out := cmd.OutOrStdout()

			if follow {
				err := logs.Follow(cmd.Context(), path, out, lines)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}

			tail, err := logs.TailFile(path, lines)
			if err != nil {
				return err
			}
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 100, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep streaming appended lines")
	return cmd
}
