package textutil

import (
	"path/filepath"
	"strings"
)

// SanitizeFileName reduces an uploaded filename to a safe basename for use in
// library artifact names. Any path components are stripped, and characters
// that are hostile to shells or ffmpeg filter strings become underscores.
// Names that reduce to nothing come back as "artifact".
func SanitizeFileName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "artifact"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, base)
}
