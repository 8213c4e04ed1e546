package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"clipforge/internal/pipeline"
	"clipforge/internal/videostore"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a video record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, _, _, cleanup, err := ctx.openPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			video, err := pipe.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderVideoTable(video))
			return nil
		},
	}
}

func renderVideoTable(video *videostore.Video) string {
	rows := [][]string{
		{"ID", video.ID},
		{"Name", video.Name},
		{"Title", video.Title},
		{"Stage", string(pipeline.StageOf(video))},
		{"Status", string(video.Status)},
		{"Duration", strconv.FormatFloat(video.Duration, 'f', 1, 64) + "s"},
		{"Size", strconv.FormatInt(video.Size, 10)},
		{"Original", video.Path},
	}
	if video.TrimmedPath != "" {
		rows = append(rows, []string{"Trimmed", video.TrimmedPath})
	}
	if video.SubtitledPath != "" {
		rows = append(rows, []string{"Subtitled", video.SubtitledPath})
	}
	if video.FinalPath != "" {
		rows = append(rows, []string{"Final", video.FinalPath})
	}
	return renderTable(
		[]string{"Field", "Value"},
		rows,
	)
}
