package videostore

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status reflects a video's terminal pipeline state. Intermediate stages are
// inferred from which path fields are populated, not from a separate enum.
type Status string

const (
	StatusUploaded Status = "uploaded"
	StatusRendered Status = "rendered"
)

var allStatuses = []Status{
	StatusUploaded,
	StatusRendered,
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, status := range allStatuses {
		if status == normalized {
			return status, true
		}
	}
	return "", false
}

// Video is the persisted record for one uploaded media artifact and its
// pipeline outputs.
type Video struct {
	ID            string
	Name          string
	Title         string
	Path          string
	Duration      float64
	Size          int64
	TrimmedPath   string
	SubtitledPath string
	FinalPath     string
	Status        Status
	MediaInfoJSON string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CurrentSource resolves the input artifact for the next stage by the fixed
// precedence order: subtitled > trimmed > original.
func (v *Video) CurrentSource() string {
	switch {
	case v.SubtitledPath != "":
		return v.SubtitledPath
	case v.TrimmedPath != "":
		return v.TrimmedPath
	default:
		return v.Path
	}
}

// DeriveTitle builds a presentable title from an uploaded filename.
func DeriveTitle(name string) string {
	if name == "" {
		return "Untitled Video"
	}
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Untitled Video"
	}
	return cases.Title(language.Und).String(title)
}
