// Package subtitles generates the timed subtitle-track artifact consumed by
// the burn-subtitles transcode operation. Free text is split into sentence
// cues and distributed evenly across a caller-supplied time window.
package subtitles
