package config

const (
	defaultLibraryDir      = "~/.local/share/clipforge/library"
	defaultLogDir          = "~/.local/share/clipforge/logs"
	defaultAPIBind         = "127.0.0.1:7581"
	defaultBaseURL         = "http://127.0.0.1:7581"
	defaultFFmpegBin       = "ffmpeg"
	defaultFFprobeBin      = "ffprobe"
	defaultTimeoutSeconds  = 1800
	defaultStderrTailLines = 20
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultNtfyTimeout     = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
			APIBind:    defaultAPIBind,
			BaseURL:    defaultBaseURL,
		},
		FFmpeg: FFmpeg{
			FFmpegBin:       defaultFFmpegBin,
			FFprobeBin:      defaultFFprobeBin,
			TimeoutSeconds:  defaultTimeoutSeconds,
			StderrTailLines: defaultStderrTailLines,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNtfyTimeout,
		},
	}
}
