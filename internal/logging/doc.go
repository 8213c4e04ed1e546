// Package logging wires log/slog with the console and JSON handlers used by
// the CLI and daemon, plus the standardized attribute keys shared across the
// pipeline.
package logging
