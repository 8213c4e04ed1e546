package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"clipforge/internal/timecode"
)

func newSubtitleCommand(ctx *commandContext) *cobra.Command {
	var text, start, end string

	cmd := &cobra.Command{
		Use:   "subtitle <id>",
		Short: "Generate timed subtitles from text and burn them in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipe, _, _, cleanup, err := ctx.openPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			video, cues, err := pipe.AddSubtitles(cmd.Context(), args[0], text, start, end)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Burned %d cues into %s\n", len(cues), video.SubtitledPath)

			rows := make([][]string, 0, len(cues))
			for _, cue := range cues {
				rows = append(rows, []string{
					strconv.Itoa(cue.Index),
					timecode.FormatSeconds(cue.Start),
					timecode.FormatSeconds(cue.End),
					cue.Text,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Start", "End", "Text"},
				rows,
				1,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Subtitle text; sentences are split on terminal punctuation")
	cmd.Flags().StringVar(&start, "start", "", "Window start timecode")
	cmd.Flags().StringVar(&end, "end", "", "Window end timecode")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
