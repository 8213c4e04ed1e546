package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "render <id>",
		Short: "Produce the final artifact and clean up intermediates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, _, _, cleanup, err := ctx.openPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			video, err := pipe.Render(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s -> %s\n", video.Name, video.FinalPath)
			return nil
		},
	}
}
