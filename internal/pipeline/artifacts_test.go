package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/logging"
)

func TestReapRemovesFilesAndToleratesMissing(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "trimmed-1-clip.mp4")
	if err := os.WriteFile(existing, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "already-gone.mp4")

	reaper := NewArtifactReaper(logging.NewNop())
	reaper.Reap(context.Background(), existing, missing, "")

	if _, err := os.Stat(existing); !os.IsNotExist(err) {
		t.Fatalf("expected %s removed, stat err = %v", existing, err)
	}
}

func TestStageFileNameUnique(t *testing.T) {
	a := stageFileName("trimmed", "clip.mp4")
	b := stageFileName("trimmed", "clip.mp4")
	if a == b {
		t.Fatalf("expected unique names, got %q twice", a)
	}
}
