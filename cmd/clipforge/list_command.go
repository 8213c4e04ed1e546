package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"clipforge/internal/pipeline"
	"clipforge/internal/videostore"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List video records",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, _, _, cleanup, err := ctx.openPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			var statuses []videostore.Status
			if statusFlag != "" {
				status, ok := videostore.ParseStatus(statusFlag)
				if !ok {
					return fmt.Errorf("unknown status %q (valid: %s)", statusFlag, strings.Join(statusNames(), ", "))
				}
				statuses = append(statuses, status)
			}

			videos, err := pipe.List(cmd.Context(), statuses...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(videos) == 0 {
				fmt.Fprintln(out, "No videos")
				return nil
			}

			rows := make([][]string, 0, len(videos))
			for _, video := range videos {
				rows = append(rows, []string{
					video.ID,
					video.Name,
					string(pipeline.StageOf(video)),
					string(video.Status),
					strconv.FormatFloat(video.Duration, 'f', 1, 64),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Stage", "Status", "Duration"},
				rows,
				5,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status ("+strings.Join(statusNames(), ", ")+")")
	return cmd
}

func statusNames() []string {
	all := videostore.AllStatuses()
	names := make([]string, 0, len(all))
	for _, status := range all {
		names = append(names, string(status))
	}
	return names
}
