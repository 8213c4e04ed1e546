package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteClipProducesRequestedSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "clip.mp4")
	WriteClip(t, path, 2048)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 2048 {
		t.Fatalf("size = %d, want 2048", len(data))
	}
	if !bytes.Equal(data[4:8], []byte("ftyp")) {
		t.Fatalf("expected ftyp box marker, got %q", data[4:8])
	}
}

func TestWriteClipTinySize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	WriteClip(t, path, 4)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 4 {
		t.Fatalf("size = %d, want 4", info.Size())
	}
}
