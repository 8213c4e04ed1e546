// Package pipeline implements the video processing state machine: upload,
// trim, subtitle burn, final render, and download. Every transition is a
// locked read-modify-invoke-write sequence; the record's reference to a new
// artifact is committed before anything it supersedes is deleted, so a crash
// mid-transition never strands the record pointing at a missing file.
package pipeline
