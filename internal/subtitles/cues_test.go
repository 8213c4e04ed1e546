package subtitles

import (
	"errors"
	"strings"
	"testing"

	"clipforge/internal/services"
)

func TestSplitSentences(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"Hello. World.", []string{"Hello.", "World."}},
		{"One? Two! Three.", []string{"One?", "Two!", "Three."}},
		{"No terminal punctuation", []string{"No terminal punctuation"}},
		// Splitting is purely punctuation-driven; abbreviations are not
		// special-cased, so "Dr." ends a sentence.
		{"Dr. Smith arrived", []string{"Dr.", "Smith arrived"}},
		{"  Spaced.   Out.  ", []string{"Spaced.", "Out."}},
		{"", nil},
		{"   ", nil},
	}
	for _, tc := range cases {
		got := SplitSentences(tc.input)
		if len(got) != len(tc.want) {
			t.Fatalf("SplitSentences(%q) = %#v, want %#v", tc.input, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("SplitSentences(%q)[%d] = %q, want %q", tc.input, i, got[i], tc.want[i])
			}
		}
	}
}

func TestBuildCuesDistributesEvenly(t *testing.T) {
	cues, err := BuildCues("One. Two. Three.", "00:00:00", "00:00:10")
	if err != nil {
		t.Fatalf("BuildCues: %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}
	// floor(10/3) = 3 second interval; last cue absorbs the remainder.
	expected := []struct{ start, end float64 }{
		{0, 3},
		{3, 6},
		{6, 10},
	}
	for i, want := range expected {
		if cues[i].Start != want.start || cues[i].End != want.end {
			t.Fatalf("cue %d = [%v, %v], want [%v, %v]", i, cues[i].Start, cues[i].End, want.start, want.end)
		}
		if cues[i].Index != i+1 {
			t.Fatalf("cue %d index = %d", i, cues[i].Index)
		}
	}
}

func TestBuildCuesLastCueEndsAtWindowEnd(t *testing.T) {
	cues, err := BuildCues("Hello. World.", "00:00:05", "00:00:20")
	if err != nil {
		t.Fatalf("BuildCues: %v", err)
	}
	last := cues[len(cues)-1]
	if last.End != 20 {
		t.Fatalf("last cue end = %v, want 20", last.End)
	}
}

func TestBuildCuesRejectsEmptyText(t *testing.T) {
	_, err := BuildCues("", "00:00:00", "00:00:10")
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBuildCuesRejectsNonPositiveWindow(t *testing.T) {
	for _, window := range [][2]string{
		{"00:00:10", "00:00:10"},
		{"00:00:20", "00:00:05"},
	} {
		_, err := BuildCues("Hello.", window[0], window[1])
		if !errors.Is(err, services.ErrInvalidInput) {
			t.Fatalf("window %v: expected ErrInvalidInput, got %v", window, err)
		}
	}
}

func TestBuildCuesRejectsBadTimecodes(t *testing.T) {
	_, err := BuildCues("Hello.", "bogus", "00:00:10")
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad start, got %v", err)
	}
}

func TestCueCountMatchesSentenceCount(t *testing.T) {
	text := "First sentence. Second one? Third! Fourth."
	cues, err := BuildCues(text, "00:00:00", "00:01:00")
	if err != nil {
		t.Fatalf("BuildCues: %v", err)
	}
	if len(cues) != len(SplitSentences(text)) {
		t.Fatalf("cue count %d != sentence count %d", len(cues), len(SplitSentences(text)))
	}
	for _, cue := range cues {
		if strings.TrimSpace(cue.Text) == "" {
			t.Fatalf("empty cue text in %#v", cue)
		}
	}
}
