package subtitles

import (
	"strings"
	"unicode"

	"clipforge/internal/services"
	"clipforge/internal/timecode"
)

// Cue is one numbered subtitle entry with absolute timestamps in seconds.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// SplitSentences breaks free text into sentence fragments on terminal
// punctuation followed by whitespace. Fragments are trimmed and empty ones
// discarded; trailing punctuation without whitespace still ends a sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)
		if r != '.' && r != '?' && r != '!' {
			continue
		}
		if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
			if sentence := strings.TrimSpace(current.String()); sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
		}
	}
	if tail := strings.TrimSpace(current.String()); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// BuildCues splits text into sentence cues and distributes them evenly across
// the [start, end] window. The interval is the floor of the per-sentence
// share, so the final cue absorbs the rounding remainder: its end is always
// forced to the requested end timecode.
func BuildCues(text, start, end string) ([]Cue, error) {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "subtitles", "build cues", "no sentences in subtitle text", nil)
	}

	startSec, err := timecode.ParseTime(start)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidInput, "subtitles", "parse start", err.Error(), err)
	}
	endSec, err := timecode.ParseTime(end)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidInput, "subtitles", "parse end", err.Error(), err)
	}
	total := endSec - startSec
	if total <= 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "subtitles", "build cues", "time window must be positive", nil)
	}

	interval := float64(int(total) / len(sentences))
	cues := make([]Cue, 0, len(sentences))
	for i, sentence := range sentences {
		cue := Cue{
			Index: i + 1,
			Start: startSec + float64(i)*interval,
			End:   startSec + float64(i+1)*interval,
			Text:  sentence,
		}
		if i == len(sentences)-1 {
			cue.End = endSec
		}
		cues = append(cues, cue)
	}
	return cues, nil
}
