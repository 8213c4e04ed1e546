package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// mp4Header is a minimal "ftyp" box so fixture clips look like MP4 files to
// anything that sniffs the first bytes. The pipeline treats media as opaque,
// but fixtures should still resemble what users actually upload.
var mp4Header = []byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
	'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
	'i', 's', 'o', 'm', 'm', 'p', '4', '1',
}

// WriteClip creates a fake MP4 clip of the requested size at path, creating
// parent directories as needed. Sizes smaller than the header still produce a
// valid file of exactly the requested length.
func WriteClip(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = int64(len(mp4Header))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	header := mp4Header
	if size < int64(len(header)) {
		header = header[:size]
	}
	if _, err := f.Write(header); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	filler := make([]byte, 32*1024)
	for i := range filler {
		filler[i] = 0x42
	}
	remaining := size - int64(len(header))
	for remaining > 0 {
		n := int64(len(filler))
		if remaining < n {
			n = remaining
		}
		if _, err := f.Write(filler[:n]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= n
	}
}
