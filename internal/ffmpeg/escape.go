package ffmpeg

import "strings"

// EscapeFilterPath escapes a filesystem path for embedding in an ffmpeg
// filter argument: backslashes are doubled and colons backslash-escaped so
// the path cannot corrupt filter syntax. This is purely syntactic; the
// filesystem path used for I/O is never escaped.
func EscapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, "\\", "\\\\")
	path = strings.ReplaceAll(path, ":", "\\:")
	return path
}
