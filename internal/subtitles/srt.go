package subtitles

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"clipforge/internal/timecode"
)

// RenderSRT produces the subtitle-track artifact body for the given cues:
// sequential numbered blocks, "start --> end" timestamp lines, blank-line
// separated.
func RenderSRT(cues []Cue) string {
	var b strings.Builder
	for _, cue := range cues {
		b.WriteString(strconv.Itoa(cue.Index))
		b.WriteByte('\n')
		b.WriteString(timecode.FormatSeconds(cue.Start))
		b.WriteString(" --> ")
		b.WriteString(timecode.FormatSeconds(cue.End))
		b.WriteByte('\n')
		b.WriteString(cue.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// WriteSRT writes the cue file to path and syncs it so the external
// transcoder never observes a partially written track. The file is
// world-readable because the transcoder may run under a different uid.
func WriteSRT(path string, cues []Cue) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create subtitle track: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(RenderSRT(cues)); err != nil {
		return fmt.Errorf("write subtitle track: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync subtitle track: %w", err)
	}
	return file.Close()
}

// GenerateTimedSRT builds evenly distributed cues from text and writes the
// subtitle-track artifact to path. Exactly one file is created; no other
// state is touched.
func GenerateTimedSRT(text, start, end, path string) ([]Cue, error) {
	cues, err := BuildCues(text, start, end)
	if err != nil {
		return nil, err
	}
	if err := WriteSRT(path, cues); err != nil {
		return nil, err
	}
	return cues, nil
}

// CountCues reports the number of cue blocks in an SRT file.
func CountCues(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read srt: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return 0, nil
	}
	count := 0
	for _, block := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count, nil
}
