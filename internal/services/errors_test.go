package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapTagsSentinel(t *testing.T) {
	base := errors.New("exit status 1")
	err := Wrap(ErrTranscodeFailed, "trim", "ffmpeg", "process failed", base)
	if !errors.Is(err, ErrTranscodeFailed) {
		t.Fatalf("expected wrapped error to match ErrTranscodeFailed, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to retain cause, got %v", err)
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "render", "", "something broke", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{Wrap(ErrNotFound, "trim", "", "video missing", nil), http.StatusNotFound},
		{Wrap(ErrNotReady, "download", "", "not rendered", nil), http.StatusNotFound},
		{Wrap(ErrInvalidInput, "subtitles", "", "no sentences", nil), http.StatusBadRequest},
		{Wrap(ErrInvalidRange, "trim", "", "negative duration", nil), http.StatusBadRequest},
		{Wrap(ErrConflict, "render", "", "already rendered", nil), http.StatusConflict},
		{Wrap(ErrTranscodeFailed, "render", "ffmpeg", "exit 1", nil), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestDetailsStripsMarker(t *testing.T) {
	err := Wrap(ErrInvalidRange, "trim", "validate", "end before start", nil)
	got := Details(err)
	want := "trim: validate: end before start"
	if got != want {
		t.Fatalf("Details = %q, want %q", got, want)
	}
	if Details(fmt.Errorf("bare failure")) != "bare failure" {
		t.Fatalf("Details should pass through unmarked errors")
	}
}
