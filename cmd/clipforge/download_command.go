package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "download <id>",
		Short: "Print the final artifact reference for a rendered video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, _, _, cleanup, err := ctx.openPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			ref, err := pipe.Download(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path: %s\n", ref.Path)
			fmt.Fprintf(out, "URL:  %s\n", ref.URL)
			return nil
		},
	}
}
