package videostore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const videoColumns = "id, name, title, path, duration, size, trimmed_path, subtitled_path, final_path, status, media_info_json, created_at, updated_at"

func scanVideo(scanner interface{ Scan(dest ...any) error }) (*Video, error) {
	var (
		id            string
		name          string
		title         sql.NullString
		path          string
		duration      sql.NullFloat64
		size          sql.NullInt64
		trimmedPath   sql.NullString
		subtitledPath sql.NullString
		finalPath     sql.NullString
		statusStr     string
		mediaInfo     sql.NullString
		createdRaw    sql.NullString
		updatedRaw    sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&name,
		&title,
		&path,
		&duration,
		&size,
		&trimmedPath,
		&subtitledPath,
		&finalPath,
		&statusStr,
		&mediaInfo,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	video := &Video{
		ID:            id,
		Name:          name,
		Title:         title.String,
		Path:          path,
		Duration:      duration.Float64,
		Size:          size.Int64,
		TrimmedPath:   trimmedPath.String,
		SubtitledPath: subtitledPath.String,
		FinalPath:     finalPath.String,
		Status:        Status(statusStr),
		MediaInfoJSON: mediaInfo.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		video.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		video.UpdatedAt = updated
	}
	return video, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time value %q", value)
}
