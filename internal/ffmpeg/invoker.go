package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"clipforge/internal/config"
	"clipforge/internal/logging"
	"clipforge/internal/services"
)

var commandContext = exec.CommandContext

// ExitError reports a transcode process that exited non-zero, carrying the
// exit code and the trailing diagnostic lines for logs. It unwraps to
// services.ErrTranscodeFailed so callers can classify without type checks.
type ExitError struct {
	Op         string
	ExitCode   int
	StderrTail string
}

func (e *ExitError) Error() string {
	if e.StderrTail == "" {
		return fmt.Sprintf("%s exited with code %d", e.Op, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Op, e.ExitCode, e.StderrTail)
}

func (e *ExitError) Unwrap() error { return services.ErrTranscodeFailed }

// Invoker wraps the external ffmpeg/ffprobe binaries. All binary paths are
// resolved once at construction; invocations share the configured timeout.
type Invoker struct {
	ffmpegBin  string
	ffprobeBin string
	timeout    time.Duration
	tailLines  int
	logger     *slog.Logger
}

// New constructs an Invoker from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Invoker {
	inv := &Invoker{
		ffmpegBin:  "ffmpeg",
		ffprobeBin: "ffprobe",
		tailLines:  20,
		logger:     logging.NewComponentLogger(logger, "invoker"),
	}
	if cfg != nil {
		if bin := strings.TrimSpace(cfg.FFmpeg.FFmpegBin); bin != "" {
			inv.ffmpegBin = bin
		}
		if bin := strings.TrimSpace(cfg.FFmpeg.FFprobeBin); bin != "" {
			inv.ffprobeBin = bin
		}
		if cfg.FFmpeg.TimeoutSeconds > 0 {
			inv.timeout = time.Duration(cfg.FFmpeg.TimeoutSeconds) * time.Second
		}
		if cfg.FFmpeg.StderrTailLines > 0 {
			inv.tailLines = cfg.FFmpeg.StderrTailLines
		}
	}
	return inv
}

// Trim produces a new artifact covering [start, start+duration) of the input.
func (inv *Invoker) Trim(ctx context.Context, inputPath, outputPath, start string, duration float64) error {
	if duration <= 0 {
		return services.Wrap(services.ErrInvalidRange, "trim", "ffmpeg", "duration must be positive", nil)
	}
	args := []string{
		"-y",
		"-ss", strings.TrimSpace(start),
		"-i", inputPath,
		"-t", formatSeconds(duration),
		outputPath,
	}
	return inv.runTranscode(ctx, "trim", args, outputPath)
}

// BurnSubtitles re-encodes the input with the subtitle track overlaid as
// burned-in text. A stream copy is not possible here: the overlay filter
// requires decoded frames.
func (inv *Invoker) BurnSubtitles(ctx context.Context, inputPath, subtitlePath, outputPath string) error {
	args := []string{
		"-y",
		"-i", inputPath,
		"-vf", "subtitles=" + EscapeFilterPath(subtitlePath),
		"-c:a", "copy",
		outputPath,
	}
	return inv.runTranscode(ctx, "burn subtitles", args, outputPath)
}

// Finalize remuxes the input into the final container, stream-copying video
// and audio and converting any subtitle track to a selectable soft format.
func (inv *Invoker) Finalize(ctx context.Context, inputPath, outputPath string) error {
	args := []string{
		"-y",
		"-i", inputPath,
		"-c:v", "copy",
		"-c:a", "copy",
		"-c:s", "mov_text",
		outputPath,
	}
	return inv.runTranscode(ctx, "finalize", args, outputPath)
}

// runTranscode spawns exactly one ffmpeg process, streams its diagnostics to
// the log, and resolves only after the process fully exits. A failed run
// removes whatever partial output the process left behind.
func (inv *Invoker) runTranscode(ctx context.Context, op string, args []string, outputPath string) error {
	runCtx := ctx
	if inv.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.timeout)
		defer cancel()
	}

	cmd := commandContext(runCtx, inv.ffmpegBin, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return services.Wrap(services.ErrTranscodeFailed, op, "ffmpeg", "stderr pipe", err)
	}

	logger := logging.WithContext(ctx, inv.logger)
	logger.Info("launching ffmpeg",
		logging.String(logging.FieldEventType, "transcode_start"),
		logging.String("operation", op),
		logging.String("command", inv.ffmpegBin+" "+strings.Join(args, " ")),
	)

	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrTranscodeFailed, op, "ffmpeg", "start process", err)
	}

	tail := newTailBuffer(inv.tailLines)
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tail.add(line)
		logger.Debug("ffmpeg", logging.String("operation", op), logging.String("line", line))
	}
	scanErr := scanner.Err()

	waitErr := cmd.Wait()
	if waitErr == nil && scanErr != nil {
		waitErr = scanErr
	}
	if waitErr == nil {
		logger.Info("ffmpeg finished",
			logging.String(logging.FieldEventType, "transcode_complete"),
			logging.String("operation", op),
			logging.String("output", outputPath),
		)
		return nil
	}

	// Never leave a partial artifact behind for a caller to mistake for a
	// committed output.
	if outputPath != "" {
		_ = os.Remove(outputPath)
	}

	if ctxErr := runCtx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return services.Wrap(services.ErrTranscodeFailed, op, "ffmpeg",
			fmt.Sprintf("timed out after %s", inv.timeout), ctxErr)
	}

	exitCode := -1
	var execExit *exec.ExitError
	if errors.As(waitErr, &execExit) {
		exitCode = execExit.ExitCode()
	}
	exitErr := &ExitError{Op: op, ExitCode: exitCode, StderrTail: tail.String()}
	logger.Error("ffmpeg failed",
		logging.String(logging.FieldEventType, "transcode_failure"),
		logging.String("operation", op),
		logging.Int("exit_code", exitCode),
		logging.String("stderr_tail", tail.String()),
	)
	return fmt.Errorf("%s: %w", op, exitErr)
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}

type tailBuffer struct {
	limit int
	lines []string
}

func newTailBuffer(limit int) *tailBuffer {
	if limit <= 0 {
		limit = 1
	}
	return &tailBuffer{limit: limit}
}

func (t *tailBuffer) add(line string) {
	t.lines = append(t.lines, line)
	if len(t.lines) > t.limit {
		t.lines = t.lines[len(t.lines)-t.limit:]
	}
}

func (t *tailBuffer) String() string {
	return strings.Join(t.lines, "\n")
}
