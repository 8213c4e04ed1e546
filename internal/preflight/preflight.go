package preflight

import (
	"context"

	"clipforge/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for the given config: every stage
// directory must be writable and the library filesystem must have headroom.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Library directory", cfg.Paths.LibraryDir),
		CheckDirectoryAccess("Original directory", cfg.OriginalDir()),
		CheckDirectoryAccess("Trimmed directory", cfg.TrimmedDir()),
		CheckDirectoryAccess("Subtitled directory", cfg.SubtitledDir()),
		CheckDirectoryAccess("Final directory", cfg.FinalDir()),
		CheckDirectoryAccess("Scratch directory", cfg.ScratchDir()),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckFreeSpace("Library free space", cfg.Paths.LibraryDir, minFreeBytes),
	}
	_ = ctx
	return results
}

// Passed reports whether every result in the set passed.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
