package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"clipforge/internal/logging"
)

// ArtifactReaper deletes superseded stage outputs. A missing file is logged
// and skipped; cleanup never fails the transition that triggered it. The
// caller must only pass paths whose successor is already durably committed.
type ArtifactReaper struct {
	logger *slog.Logger
}

// NewArtifactReaper constructs a reaper that logs deletions to logger.
func NewArtifactReaper(logger *slog.Logger) *ArtifactReaper {
	return &ArtifactReaper{logger: logging.NewComponentLogger(logger, "artifacts")}
}

// Reap removes every non-empty path in the list from disk.
func (r *ArtifactReaper) Reap(ctx context.Context, paths ...string) {
	logger := logging.WithContext(ctx, r.logger)
	for _, path := range paths {
		if path == "" {
			continue
		}
		err := os.Remove(path)
		switch {
		case err == nil:
			logger.Info("removed superseded artifact", logging.String("path", path))
		case errors.Is(err, fs.ErrNotExist):
			logger.Debug("superseded artifact already gone", logging.String("path", path))
		default:
			logger.Warn("failed to remove superseded artifact",
				logging.String("path", path), logging.Error(err))
		}
	}
}
