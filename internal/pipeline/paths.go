package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"clipforge/internal/textutil"
)

// stageFileName builds the output filename for a stage invocation. The
// nanosecond timestamp keeps back-to-back invocations from colliding without
// coordinating on the naming scheme.
func stageFileName(prefix, originalName string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixNano(), textutil.SanitizeFileName(originalName))
}

func (p *Pipeline) originalPathFor(name string) string {
	return filepath.Join(p.cfg.OriginalDir(), stageFileName("original", name))
}

func (p *Pipeline) trimmedPathFor(name string) string {
	return filepath.Join(p.cfg.TrimmedDir(), stageFileName("trimmed", name))
}

func (p *Pipeline) subtitledPathFor(name string) string {
	return filepath.Join(p.cfg.SubtitledDir(), stageFileName("subtitled", name))
}

func (p *Pipeline) finalPathFor(name string) string {
	return filepath.Join(p.cfg.FinalDir(), stageFileName("final", name))
}

func (p *Pipeline) subtitleTrackPathFor(id string) string {
	return filepath.Join(p.cfg.ScratchDir(), fmt.Sprintf("temp-%s.srt", id))
}
