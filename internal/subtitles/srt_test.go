package subtitles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderSRTFormat(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: 0, End: 7, Text: "Hello."},
		{Index: 2, Start: 7, End: 15, Text: "World."},
	}
	got := RenderSRT(cues)
	want := "1\n00:00:00,000 --> 00:00:07,000\nHello.\n\n" +
		"2\n00:00:07,000 --> 00:00:15,000\nWorld.\n\n"
	if got != want {
		t.Fatalf("RenderSRT mismatch:\n%q\nwant\n%q", got, want)
	}
}

func TestGenerateTimedSRTWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.srt")
	cues, err := GenerateTimedSRT("Hello. World.", "00:00:00", "00:00:15", path)
	if err != nil {
		t.Fatalf("GenerateTimedSRT: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat track: %v", err)
	}
	if info.Mode().Perm()&0o004 == 0 {
		t.Fatalf("track should be world readable, mode %v", info.Mode())
	}

	count, err := CountCues(path)
	if err != nil {
		t.Fatalf("CountCues: %v", err)
	}
	if count != 2 {
		t.Fatalf("CountCues = %d, want 2", count)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read track: %v", err)
	}
	if !strings.Contains(string(data), "00:00:07,000 --> 00:00:15,000") {
		t.Fatalf("last cue should end at the window end:\n%s", data)
	}
}

func TestGenerateTimedSRTWritesNothingOnInvalidInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.srt")
	if _, err := GenerateTimedSRT("", "00:00:00", "00:00:15", path); err == nil {
		t.Fatal("expected error for empty text")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("no file should exist after failed generation, stat err=%v", err)
	}
}

func TestCountCuesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.srt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	count, err := CountCues(path)
	if err != nil || count != 0 {
		t.Fatalf("CountCues = %d, %v; want 0, nil", count, err)
	}
}
