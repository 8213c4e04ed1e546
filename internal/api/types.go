package api

import "encoding/json"

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Video describes a video record in a transport-friendly format.
type Video struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Title         string          `json:"title,omitempty"`
	Path          string          `json:"path"`
	Duration      float64         `json:"duration"`
	Size          int64           `json:"size"`
	TrimmedPath   string          `json:"trimmedPath,omitempty"`
	SubtitledPath string          `json:"subtitledPath,omitempty"`
	FinalPath     string          `json:"finalPath,omitempty"`
	Status        string          `json:"status"`
	Stage         string          `json:"stage"`
	MediaInfo     json.RawMessage `json:"mediaInfo,omitempty"`
	CreatedAt     string          `json:"createdAt,omitempty"`
	UpdatedAt     string          `json:"updatedAt,omitempty"`
}

// TrimRequest carries the parameters for the trim transition.
type TrimRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SubtitlesRequest carries the parameters for the subtitle transition.
type SubtitlesRequest struct {
	Text      string `json:"text"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Cue describes one generated subtitle cue.
type Cue struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// VideoResponse wraps a single video record.
type VideoResponse struct {
	Success bool  `json:"success"`
	Video   Video `json:"video"`
}

// VideoListResponse wraps a collection of video records.
type VideoListResponse struct {
	Success bool    `json:"success"`
	Videos  []Video `json:"videos"`
}

// SubtitlesResponse wraps the subtitle transition result.
type SubtitlesResponse struct {
	Success bool  `json:"success"`
	Video   Video `json:"video"`
	Cues    []Cue `json:"cues"`
}

// DownloadResponse carries the final artifact reference.
type DownloadResponse struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"downloadUrl"`
	Video       Video  `json:"video"`
}

// LogsResponse carries a tail of the daemon log file.
type LogsResponse struct {
	Success bool     `json:"success"`
	Lines   []string `json:"lines"`
}

// ErrorResponse is the stable failure shape: a status code and a terse
// message. Subprocess diagnostics never appear here.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// DependencyStatus captures availability of an external dependency.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool               `json:"running"`
	PID          int                `json:"pid"`
	DatabasePath string             `json:"databasePath"`
	LockFilePath string             `json:"lockFilePath"`
	VideoStats   map[string]int     `json:"videoStats"`
	Dependencies []DependencyStatus `json:"dependencies"`
}
