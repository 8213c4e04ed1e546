package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LibraryDir = filepath.Join(base, "library")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.APIBind = "127.0.0.1:0"
	cfgVal.Paths.BaseURL = "http://127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBaseURL overrides the download base URL on the test config.
func WithBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.BaseURL = url
	}
}

// WithAPIToken enables bearer authentication on the test config.
func WithAPIToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.APIToken = token
	}
}

// stubProbeJSON is the fixed ffprobe answer used by stubbed binaries: a 30s
// clip with one video and one audio stream.
const stubProbeJSON = `{"format":{"duration":"30.000000","size":"2048","format_name":"mov,mp4,m4a"},"streams":[{"codec_type":"video"},{"codec_type":"audio"}]}`

// WithStubbedBinaries writes stub executables for the provided names,
// prepends their directory to PATH, and points the config's binary fields at
// them. If names is empty, ffmpeg and ffprobe are stubbed. The ffmpeg stub
// exits zero after creating the file named by its last argument; the ffprobe
// stub answers a fixed probe payload.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		transcode := []byte("#!/bin/sh\nfor a in \"$@\"; do last=\"$a\"; done\n[ -n \"$last\" ] && printf 'stub' > \"$last\"\nexit 0\n")
		probe := []byte("#!/bin/sh\ncat <<'EOF'\n" + stubProbeJSON + "\nEOF\n")
		for _, name := range names {
			script := transcode
			if name == "ffprobe" {
				script = probe
			}
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
			switch name {
			case "ffmpeg":
				b.cfg.FFmpeg.FFmpegBin = target
			case "ffprobe":
				b.cfg.FFmpeg.FFprobeBin = target
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LibraryDir)
}
