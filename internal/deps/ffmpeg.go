package deps

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"clipforge/internal/config"
)

// Requirements lists the external binaries every transcode path needs,
// resolved from configuration so doctor output matches what the invoker
// will actually execute.
func Requirements(cfg *config.Config) []Requirement {
	ffmpegBin := "ffmpeg"
	ffprobeBin := "ffprobe"
	if cfg != nil {
		if bin := strings.TrimSpace(cfg.FFmpeg.FFmpegBin); bin != "" {
			ffmpegBin = bin
		}
		if bin := strings.TrimSpace(cfg.FFmpeg.FFprobeBin); bin != "" {
			ffprobeBin = bin
		}
	}
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpegBin, Description: "Transcodes trim, subtitle burn, and final render stages"},
		{Name: "FFprobe", Command: ffprobeBin, Description: "Extracts media metadata at upload"},
	}
}

// CheckFFmpeg resolves the configured ffmpeg binary the way the invoker
// will: an explicit path is honored as-is, a bare name is resolved from PATH.
func CheckFFmpeg(configured string) Status {
	result := Status{
		Name:        "FFmpeg",
		Description: "Used for every transcode operation",
	}

	binary := strings.TrimSpace(configured)
	if binary == "" {
		binary = "ffmpeg"
	}

	if strings.ContainsRune(binary, os.PathSeparator) {
		info, err := os.Stat(binary)
		if err == nil && isExecutable(info) {
			result.Command = binary
			result.Available = true
			return result
		}
		result.Command = binary
		result.Detail = fmt.Sprintf("binary %q not found or not executable", binary)
		return result
	}

	if resolved, err := exec.LookPath(binary); err == nil {
		result.Command = resolved
		result.Available = true
		return result
	}

	result.Command = binary
	result.Detail = fmt.Sprintf("binary %q not found", binary)
	return result
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
