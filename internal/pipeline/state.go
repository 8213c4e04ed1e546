package pipeline

import "clipforge/internal/videostore"

// Stage is the derived pipeline position of a video record. It is never
// persisted; it is computed from the record's path fields by the fixed
// precedence rule so invariant checks stay in one place.
type Stage string

const (
	StageOriginal  Stage = "original"
	StageTrimmed   Stage = "trimmed"
	StageSubtitled Stage = "subtitled"
	StageRendered  Stage = "rendered"
)

// StageOf derives the current stage of a video record.
func StageOf(video *videostore.Video) Stage {
	switch {
	case video == nil:
		return StageOriginal
	case video.Status == videostore.StatusRendered || video.FinalPath != "":
		return StageRendered
	case video.SubtitledPath != "":
		return StageSubtitled
	case video.TrimmedPath != "":
		return StageTrimmed
	default:
		return StageOriginal
	}
}
