package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipforge/internal/config"
	"clipforge/internal/ffmpeg"
	"clipforge/internal/logging"
	"clipforge/internal/pipeline"
	"clipforge/internal/services"
	"clipforge/internal/testsupport"
	"clipforge/internal/videostore"
)

const probePayload = `{"format":{"duration":"30.000000","size":"2048","format_name":"mov,mp4,m4a"},"streams":[{"codec_type":"video"},{"codec_type":"audio"}]}`

type testEnv struct {
	pipe     *pipeline.Pipeline
	store    *videostore.Store
	cfg      *config.Config
	callsLog string
}

func writeStub(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", path, err)
	}
}

// newTestEnv wires a pipeline over stub ffmpeg/ffprobe scripts. The ffmpeg
// stub records its argument list and creates the output file named by the
// last argument; the ffprobe stub answers a fixed 30s probe.
func newTestEnv(t *testing.T, ffmpegFails bool) *testEnv {
	t.Helper()
	base := t.TempDir()
	binDir := filepath.Join(base, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}

	callsLog := filepath.Join(binDir, "calls.txt")
	ffmpegBin := filepath.Join(binDir, "ffmpeg")
	ffprobeBin := filepath.Join(binDir, "ffprobe")

	if ffmpegFails {
		writeStub(t, ffmpegBin, fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$*\" >> %q\necho 'conversion failed' >&2\nexit 1\n", callsLog))
	} else {
		writeStub(t, ffmpegBin, fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$*\" >> %q\nfor a in \"$@\"; do last=\"$a\"; done\nprintf 'transcoded' > \"$last\"\nexit 0\n", callsLog))
	}
	writeStub(t, ffprobeBin, fmt.Sprintf("#!/bin/sh\ncat <<'EOF'\n%s\nEOF\n", probePayload))

	cfg := config.Default()
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.BaseURL = "http://media.test:7581"
	cfg.FFmpeg.FFmpegBin = ffmpegBin
	cfg.FFmpeg.FFprobeBin = ffprobeBin

	store, err := videostore.Open(&cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	logger := logging.NewNop()
	invoker := ffmpeg.New(&cfg, logger)
	return &testEnv{
		pipe:     pipeline.New(&cfg, store, invoker, logger),
		store:    store,
		cfg:      &cfg,
		callsLog: callsLog,
	}
}

func (e *testEnv) uploadClip(t *testing.T) *videostore.Video {
	t.Helper()
	staging := filepath.Join(t.TempDir(), "clip.mp4")
	testsupport.WriteClip(t, staging, 2048)
	video, err := e.pipe.Upload(context.Background(), staging, "clip.mp4")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	return video
}

func (e *testEnv) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.callsLog)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatalf("read calls log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func requireExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func requireGone(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected %s to be gone, stat err = %v", path, err)
	}
}

func TestUploadCreatesRecordFromProbe(t *testing.T) {
	env := newTestEnv(t, false)
	video := env.uploadClip(t)

	if video.Status != videostore.StatusUploaded {
		t.Fatalf("status = %q, want %q", video.Status, videostore.StatusUploaded)
	}
	if video.Duration != 30 {
		t.Fatalf("duration = %v, want 30", video.Duration)
	}
	requireExists(t, video.Path)
	if !strings.HasPrefix(filepath.Base(video.Path), "original-") {
		t.Fatalf("original artifact name = %q, want original- prefix", filepath.Base(video.Path))
	}
	if !strings.Contains(video.MediaInfoJSON, "probed_at") {
		t.Fatal("expected probe payload to be stamped and persisted")
	}
}

func TestUploadMissingSourceFailsNotFound(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.pipe.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.mp4"), "nope.mp4")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFullPipelineScenario(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	video := env.uploadClip(t)

	// Trim 5s..20s out of the original.
	trimmed, err := env.pipe.Trim(ctx, video.ID, "00:00:05", "00:00:20")
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}
	if trimmed.TrimmedPath == "" {
		t.Fatal("expected trimmed path to be set")
	}
	requireExists(t, trimmed.TrimmedPath)
	if pipeline.StageOf(trimmed) != pipeline.StageTrimmed {
		t.Fatalf("stage = %q, want trimmed", pipeline.StageOf(trimmed))
	}

	calls := env.calls(t)
	trimCall := calls[len(calls)-1]
	if !strings.Contains(trimCall, "-ss 00:00:05") || !strings.Contains(trimCall, "-t 15.000") {
		t.Fatalf("trim call = %q, want -ss 00:00:05 and -t 15.000", trimCall)
	}
	if !strings.Contains(trimCall, video.Path) {
		t.Fatalf("trim call = %q, want original source %q", trimCall, video.Path)
	}

	// Burn two sentences across the first 15 seconds.
	subtitled, cues, err := env.pipe.AddSubtitles(ctx, video.ID, "Hello. World.", "00:00:00", "00:00:15")
	if err != nil {
		t.Fatalf("AddSubtitles: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("cue count = %d, want 2", len(cues))
	}
	if cues[1].End != 15 {
		t.Fatalf("last cue end = %v, want 15", cues[1].End)
	}
	if subtitled.SubtitledPath == "" {
		t.Fatal("expected subtitled path to be set")
	}
	requireExists(t, subtitled.SubtitledPath)

	calls = env.calls(t)
	burnCall := calls[len(calls)-1]
	if !strings.Contains(burnCall, trimmed.TrimmedPath) {
		t.Fatalf("burn call = %q, want trimmed input %q", burnCall, trimmed.TrimmedPath)
	}

	// The temporary subtitle track never survives the transition.
	tracks, err := filepath.Glob(filepath.Join(env.cfg.ScratchDir(), "*.srt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 0 {
		t.Fatalf("expected scratch dir to be empty, found %v", tracks)
	}

	// Render: intermediates are cleared and their files deleted.
	rendered, err := env.pipe.Render(ctx, video.ID)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if rendered.Status != videostore.StatusRendered {
		t.Fatalf("status = %q, want rendered", rendered.Status)
	}
	if rendered.FinalPath == "" {
		t.Fatal("expected final path to be set")
	}
	requireExists(t, rendered.FinalPath)
	if rendered.TrimmedPath != "" || rendered.SubtitledPath != "" {
		t.Fatalf("expected intermediates cleared, got %q / %q", rendered.TrimmedPath, rendered.SubtitledPath)
	}
	requireGone(t, trimmed.TrimmedPath)
	requireGone(t, subtitled.SubtitledPath)

	calls = env.calls(t)
	renderCall := calls[len(calls)-1]
	if !strings.Contains(renderCall, subtitled.SubtitledPath) {
		t.Fatalf("render call = %q, want subtitled input %q", renderCall, subtitled.SubtitledPath)
	}

	ref, err := env.pipe.Download(ctx, video.ID)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if ref.Path != rendered.FinalPath {
		t.Fatalf("download path = %q, want %q", ref.Path, rendered.FinalPath)
	}
	wantURL := "http://media.test:7581/files/final/" + filepath.Base(rendered.FinalPath)
	if ref.URL != wantURL {
		t.Fatalf("download url = %q, want %q", ref.URL, wantURL)
	}
}

func TestTrimNegativeRangeFailsWithoutCommit(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	video := env.uploadClip(t)

	_, err := env.pipe.Trim(ctx, video.ID, "00:00:20", "00:00:05")
	if !errors.Is(err, services.ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}

	reloaded, err := env.pipe.Get(ctx, video.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if reloaded.TrimmedPath != "" {
		t.Fatalf("trimmed path = %q, want empty", reloaded.TrimmedPath)
	}
}

func TestTrimOverwriteReapsPreviousArtifact(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	video := env.uploadClip(t)

	first, err := env.pipe.Trim(ctx, video.ID, "00:00:00", "00:00:10")
	if err != nil {
		t.Fatalf("first Trim: %v", err)
	}
	firstPath := first.TrimmedPath

	second, err := env.pipe.Trim(ctx, video.ID, "00:00:05", "00:00:20")
	if err != nil {
		t.Fatalf("second Trim: %v", err)
	}
	if second.TrimmedPath == firstPath {
		t.Fatal("expected a distinct output for the second trim")
	}
	requireExists(t, second.TrimmedPath)
	requireGone(t, firstPath)
}

func TestAddSubtitlesEmptyTextFails(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	video := env.uploadClip(t)

	_, _, err := env.pipe.AddSubtitles(ctx, video.ID, "   ", "00:00:00", "00:00:10")
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	tracks, globErr := filepath.Glob(filepath.Join(env.cfg.ScratchDir(), "*.srt"))
	if globErr != nil {
		t.Fatal(globErr)
	}
	if len(tracks) != 0 {
		t.Fatalf("expected no subtitle track written, found %v", tracks)
	}

	reloaded, err := env.pipe.Get(ctx, video.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if reloaded.SubtitledPath != "" {
		t.Fatalf("subtitled path = %q, want empty", reloaded.SubtitledPath)
	}
}

func TestTranscodeFailureLeavesRecordUnchanged(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	// Seed the record directly; upload would fail with the failing stub for
	// ffmpeg, but ffprobe is a separate healthy binary here.
	video := env.uploadClip(t)

	_, err := env.pipe.Trim(ctx, video.ID, "00:00:00", "00:00:10")
	if !errors.Is(err, services.ErrTranscodeFailed) {
		t.Fatalf("err = %v, want ErrTranscodeFailed", err)
	}

	reloaded, getErr := env.pipe.Get(ctx, video.ID)
	if getErr != nil {
		t.Fatalf("Get: %v", getErr)
	}
	if reloaded.TrimmedPath != "" {
		t.Fatalf("trimmed path = %q, want empty after failure", reloaded.TrimmedPath)
	}

	entries, globErr := filepath.Glob(filepath.Join(env.cfg.TrimmedDir(), "*"))
	if globErr != nil {
		t.Fatal(globErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no partial trimmed artifacts, found %v", entries)
	}
}

func TestDownloadBeforeRenderNotReady(t *testing.T) {
	env := newTestEnv(t, false)
	video := env.uploadClip(t)

	_, err := env.pipe.Download(context.Background(), video.ID)
	if !errors.Is(err, services.ErrNotReady) {
		t.Fatalf("err = %v, want ErrNotReady", err)
	}
	if services.HTTPStatus(err) != 404 {
		t.Fatalf("status = %d, want 404", services.HTTPStatus(err))
	}
}

func TestTransitionsOnMissingVideoFailNotFound(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	if _, err := env.pipe.Trim(ctx, "no-such-id", "00:00:00", "00:00:05"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("trim err = %v, want ErrNotFound", err)
	}
	if _, _, err := env.pipe.AddSubtitles(ctx, "no-such-id", "Hi.", "0", "5"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("subtitles err = %v, want ErrNotFound", err)
	}
	if _, err := env.pipe.Render(ctx, "no-such-id"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("render err = %v, want ErrNotFound", err)
	}
	if _, err := env.pipe.Download(ctx, "no-such-id"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("download err = %v, want ErrNotFound", err)
	}
}

func TestRenderMissingSourceFailsNotFound(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	video := env.uploadClip(t)

	if err := os.Remove(video.Path); err != nil {
		t.Fatal(err)
	}

	_, err := env.pipe.Render(ctx, video.ID)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
