package testsupport

import (
	"context"
	"testing"

	"clipforge/internal/config"
	"clipforge/internal/videostore"
)

// MustOpenStore opens a videostore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *videostore.Store {
	t.Helper()

	store, err := videostore.Open(cfg)
	if err != nil {
		t.Fatalf("videostore.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// NewVideo creates a video record for tests using the provided store.
func NewVideo(t testing.TB, store *videostore.Store, name, path string) *videostore.Video {
	t.Helper()

	video, err := store.NewVideo(context.Background(), name, path, 30, 1024, "")
	if err != nil {
		t.Fatalf("store.NewVideo: %v", err)
	}
	return video
}
