package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrNotReady        = errors.New("not ready")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidRange    = errors.New("invalid range")
	ErrProbeFailed     = errors.New("probe failed")
	ErrTranscodeFailed = errors.New("transcode failed")
	ErrConflict        = errors.New("conflict")
	ErrTransient       = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later status classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// HTTPStatus maps a pipeline error to the stable status code surfaced to
// external callers. Diagnostic detail stays in logs; only the code and a
// terse message cross the API boundary.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotReady):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Details extracts the user-facing portion of a wrapped error: the message
// without the sentinel prefix. Used when persisting failure messages.
func Details(err error) string {
	if err == nil {
		return ""
	}
	message := err.Error()
	for _, marker := range []error{
		ErrNotFound, ErrNotReady, ErrInvalidInput, ErrInvalidRange,
		ErrProbeFailed, ErrTranscodeFailed, ErrConflict, ErrTransient,
	} {
		prefix := marker.Error() + ": "
		if strings.HasPrefix(message, prefix) {
			return strings.TrimPrefix(message, prefix)
		}
	}
	return message
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
