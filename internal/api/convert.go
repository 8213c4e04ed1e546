package api

import (
	"encoding/json"

	"clipforge/internal/pipeline"
	"clipforge/internal/subtitles"
	"clipforge/internal/videostore"
)

// FromVideo converts a video record to its API representation.
func FromVideo(video *videostore.Video) Video {
	if video == nil {
		return Video{}
	}

	dto := Video{
		ID:            video.ID,
		Name:          video.Name,
		Title:         video.Title,
		Path:          video.Path,
		Duration:      video.Duration,
		Size:          video.Size,
		TrimmedPath:   video.TrimmedPath,
		SubtitledPath: video.SubtitledPath,
		FinalPath:     video.FinalPath,
		Status:        string(video.Status),
		Stage:         string(pipeline.StageOf(video)),
	}
	if !video.CreatedAt.IsZero() {
		dto.CreatedAt = video.CreatedAt.UTC().Format(dateTimeFormat)
	}
	if !video.UpdatedAt.IsZero() {
		dto.UpdatedAt = video.UpdatedAt.UTC().Format(dateTimeFormat)
	}
	if raw := video.MediaInfoJSON; raw != "" {
		dto.MediaInfo = json.RawMessage(raw)
	}
	return dto
}

// FromVideos converts a slice of video records into API DTOs.
func FromVideos(videos []*videostore.Video) []Video {
	if len(videos) == 0 {
		return nil
	}
	out := make([]Video, 0, len(videos))
	for _, video := range videos {
		out = append(out, FromVideo(video))
	}
	return out
}

// FromCues converts generated subtitle cues into API DTOs.
func FromCues(cues []subtitles.Cue) []Cue {
	if len(cues) == 0 {
		return nil
	}
	out := make([]Cue, 0, len(cues))
	for _, cue := range cues {
		out = append(out, Cue{
			Index: cue.Index,
			Start: cue.Start,
			End:   cue.End,
			Text:  cue.Text,
		})
	}
	return out
}

// MergeVideoStats produces a string-keyed representation of status counts.
func MergeVideoStats(stats map[videostore.Status]int) map[string]int {
	out := make(map[string]int, len(stats))
	for status, count := range stats {
		out[string(status)] = count
	}
	return out
}
