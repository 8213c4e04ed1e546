package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	LibraryDir string `toml:"library_dir"`
	LogDir     string `toml:"log_dir"`
	APIBind    string `toml:"api_bind"`
	BaseURL    string `toml:"base_url"`
	APIToken   string `toml:"api_token"`
}

// FFmpeg contains configuration for the external transcoding tool.
type FFmpeg struct {
	FFmpegBin       string `toml:"ffmpeg_bin"`
	FFprobeBin      string `toml:"ffprobe_bin"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	StderrTailLines int    `toml:"stderr_tail_lines"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Notifications configures optional push notifications for pipeline events.
type Notifications struct {
	NtfyTopic             string `toml:"ntfy_topic"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// Config is the top-level clipforge configuration.
type Config struct {
	Paths         Paths         `toml:"paths"`
	FFmpeg        FFmpeg        `toml:"ffmpeg"`
	Logging       Logging       `toml:"logging"`
	Notifications Notifications `toml:"notifications"`
}

// Sample returns the embedded sample configuration file contents.
func Sample() string {
	return sampleConfig
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// DefaultConfigPath returns the conventional config file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/clipforge/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. When no file exists the
// repository defaults are used.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err = os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, fmt.Errorf("config file %q not found", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(defaultPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultPath, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return defaultPath, true, nil
}

// EnsureDirectories creates every directory the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Paths.LibraryDir,
		c.Paths.LogDir,
		c.OriginalDir(),
		c.TrimmedDir(),
		c.SubtitledDir(),
		c.FinalDir(),
		c.ScratchDir(),
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// OriginalDir is where uploaded source artifacts live.
func (c *Config) OriginalDir() string {
	return filepath.Join(c.Paths.LibraryDir, "original")
}

// TrimmedDir is where trim-stage outputs live.
func (c *Config) TrimmedDir() string {
	return filepath.Join(c.Paths.LibraryDir, "trimmed")
}

// SubtitledDir is where subtitle-stage outputs live.
func (c *Config) SubtitledDir() string {
	return filepath.Join(c.Paths.LibraryDir, "subtitled")
}

// FinalDir is where fully rendered outputs live.
func (c *Config) FinalDir() string {
	return filepath.Join(c.Paths.LibraryDir, "final")
}

// ScratchDir holds short-lived artifacts such as generated subtitle tracks.
func (c *Config) ScratchDir() string {
	return filepath.Join(c.Paths.LibraryDir, "scratch")
}

// DatabasePath returns the SQLite database location for video records.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.LibraryDir, "clipforge.db")
}

// LogFilePath returns the application log file location.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "clipforge.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
