package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidFormat indicates a timecode string that cannot be parsed.
var ErrInvalidFormat = errors.New("invalid timecode format")

// ParseTime converts "ss", "mm:ss", or "hh:mm:ss" into seconds. Empty
// components default to zero, so ":30" parses the same as "30".
func ParseTime(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidFormat)
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q has too many components", ErrInvalidFormat, value)
	}

	// Reverse so index 0 is always seconds, 1 minutes, 2 hours.
	multipliers := []float64{1, 60, 3600}
	var total float64
	for i := 0; i < len(parts); i++ {
		component := strings.TrimSpace(parts[len(parts)-1-i])
		if component == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(component, 64)
		if err != nil || parsed < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, value)
		}
		total += parsed * multipliers[i]
	}
	return total, nil
}

// DurationBetween returns ParseTime(end) - ParseTime(start). The result may
// be zero or negative; callers validate positivity where it matters.
func DurationBetween(start, end string) (float64, error) {
	startSec, err := ParseTime(start)
	if err != nil {
		return 0, fmt.Errorf("start: %w", err)
	}
	endSec, err := ParseTime(end)
	if err != nil {
		return 0, fmt.Errorf("end: %w", err)
	}
	return endSec - startSec, nil
}

// FormatTimecode renders a seconds value (given as a numeric string or a
// timecode) as the canonical subtitle-track timestamp "hh:mm:ss,mmm".
func FormatTimecode(value string) (string, error) {
	seconds, err := ParseTime(value)
	if err != nil {
		return "", err
	}
	return FormatSeconds(seconds), nil
}

// FormatSeconds renders a seconds value as "hh:mm:ss,mmm" with all fields
// zero padded. Negative input clamps to zero.
func FormatSeconds(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	whole := int(seconds)
	millis := int(math.Round((seconds - float64(whole)) * 1000))
	if millis >= 1000 {
		whole++
		millis -= 1000
	}
	hours := whole / 3600
	minutes := (whole % 3600) / 60
	secs := whole % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
