// Package ffmpeg wraps the external ffmpeg and ffprobe binaries behind the
// four transcode operations the pipeline needs: probe, trim, subtitle burn,
// and final remux. Argument construction stays inside this package; callers
// see resolved paths in and success or a classified error out.
package ffmpeg
