package ffmpeg

import (
	"context"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"clipforge/internal/services"
)

// ProbeResult carries the media metadata extracted from an ffprobe run.
type ProbeResult struct {
	DurationSeconds float64
	SizeBytes       int64
	FormatName      string
	VideoStreams    int
	AudioStreams    int
	raw             []byte
}

// RawJSON returns the probe payload, stamped with the probe time, suitable
// for persisting alongside the video record.
func (r ProbeResult) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// Probe executes ffprobe against the provided path and extracts container
// metadata from its JSON response.
func (inv *Invoker) Probe(ctx context.Context, path string) (ProbeResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return ProbeResult{}, services.Wrap(services.ErrProbeFailed, "probe", "ffprobe", "empty path", nil)
	}

	runCtx := ctx
	if inv.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.timeout)
		defer cancel()
	}

	cmd := commandContext(runCtx, inv.ffprobeBin,
		"-v", "error",
		"-hide_banner",
		"-show_format",
		"-show_streams",
		"-of", "json",
		"--", path,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return ProbeResult{}, services.Wrap(services.ErrProbeFailed, "probe", "ffprobe", strings.TrimSpace(string(output)), err)
	}
	if !gjson.ValidBytes(output) {
		return ProbeResult{}, services.Wrap(services.ErrProbeFailed, "probe", "ffprobe", "malformed JSON payload", nil)
	}

	result := ProbeResult{
		DurationSeconds: gjson.GetBytes(output, "format.duration").Float(),
		SizeBytes:       gjson.GetBytes(output, "format.size").Int(),
		FormatName:      gjson.GetBytes(output, "format.format_name").String(),
	}
	gjson.GetBytes(output, "streams").ForEach(func(_, stream gjson.Result) bool {
		switch stream.Get("codec_type").String() {
		case "video":
			result.VideoStreams++
		case "audio":
			result.AudioStreams++
		}
		return true
	})

	stamped, err := sjson.SetBytes(output, "clipforge.probed_at", time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		stamped = output
	}
	result.raw = stamped

	if result.DurationSeconds <= 0 {
		return ProbeResult{}, services.Wrap(services.ErrProbeFailed, "probe", "ffprobe", "container reports no duration", nil)
	}
	return result, nil
}
