package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTrimCommand(ctx *commandContext) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "trim <id>",
		Short: "Cut a time range out of the original upload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, _, _, cleanup, err := ctx.openPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			video, err := pipe.Trim(cmd.Context(), args[0], start, end)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Trimmed %s -> %s\n", video.Name, video.TrimmedPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start timecode (hh:mm:ss, mm:ss, or seconds)")
	cmd.Flags().StringVar(&end, "end", "", "End timecode")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
