package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"clipforge/internal/api"
	"clipforge/internal/config"
	"clipforge/internal/logging"
	"clipforge/internal/logs"
	"clipforge/internal/services"
	"clipforge/internal/videostore"
)

// maxUploadBytes caps the multipart body size for the upload endpoint.
const maxUploadBytes = 4 << 30 // 4 GiB

type apiServer struct {
	bind   string
	logger *slog.Logger
	daemon *Daemon

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	if cfg == nil || d == nil {
		return nil, nil
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, nil
	}

	srv := &apiServer{
		bind:   bind,
		logger: logging.NewComponentLogger(logger, "api-server"),
		daemon: d,
	}

	token := cfg.Paths.APIToken
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", authMiddleware(token, srv.handleStatus))
	mux.HandleFunc("/api/logs", authMiddleware(token, srv.handleLogs))
	mux.HandleFunc("/api/videos", authMiddleware(token, srv.handleVideos))
	mux.HandleFunc("/api/videos/", authMiddleware(token, srv.handleVideo))
	mux.Handle("/files/final/", http.StripPrefix("/files/final/",
		http.FileServer(http.Dir(cfg.FinalDir()))))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status(r.Context())
	depStatuses := make([]api.DependencyStatus, len(status.Dependencies))
	for i, dep := range status.Dependencies {
		depStatuses[i] = api.DependencyStatus{
			Name:        dep.Name,
			Command:     dep.Command,
			Description: dep.Description,
			Optional:    dep.Optional,
			Available:   dep.Available,
			Detail:      dep.Detail,
		}
	}
	s.writeJSON(w, http.StatusOK, api.DaemonStatus{
		Running:      status.Running,
		PID:          status.PID,
		DatabasePath: status.DatabasePath,
		LockFilePath: status.LockFilePath,
		VideoStats:   api.MergeVideoStats(status.VideoStats),
		Dependencies: depStatuses,
	})
}

// handleLogs covers /api/logs: GET returns the tail of the daemon log.
func (s *apiServer) handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	limit := 100
	if raw := r.URL.Query().Get("lines"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "lines must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > 1000 {
		limit = 1000
	}
	lines, err := logs.TailFile(s.daemon.cfg.LogFilePath(), limit)
	if err != nil {
		s.logger.Error("tail log file", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSON(w, http.StatusOK, api.LogsResponse{Success: true, Lines: lines})
}

// handleVideos covers /api/videos: GET lists records.
func (s *apiServer) handleVideos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var statuses []videostore.Status
	for _, value := range r.URL.Query()["status"] {
		if status, ok := videostore.ParseStatus(value); ok {
			statuses = append(statuses, status)
		}
	}
	videos, err := s.daemon.pipe.List(r.Context(), statuses...)
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.VideoListResponse{Success: true, Videos: api.FromVideos(videos)})
}

// handleVideo covers /api/videos/<id> and the action paths beneath it.
func (s *apiServer) handleVideo(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/videos/")
	id, action, _ := strings.Cut(rest, "/")
	ctx := services.WithRequestID(r.Context(), uuid.NewString())
	r = r.WithContext(ctx)

	if id == "upload" && action == "" {
		s.handleUpload(w, r)
		return
	}
	if id == "" || strings.Contains(action, "/") {
		s.writeError(w, http.StatusNotFound, "video not found")
		return
	}

	switch action {
	case "":
		s.handleVideoShow(w, r, id)
	case "trim":
		s.handleTrim(w, r, id)
	case "subtitles":
		s.handleSubtitles(w, r, id)
	case "render":
		s.handleRender(w, r, id)
	case "download":
		s.handleDownload(w, r, id)
	default:
		s.writeError(w, http.StatusNotFound, "unknown action")
	}
}

func (s *apiServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("video")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "multipart field 'video' is required")
		return
	}
	defer file.Close()

	// Stage the upload in scratch so the pipeline's intake sees a complete
	// file on durable storage.
	staging, err := os.CreateTemp(s.daemon.cfg.ScratchDir(), "upload-*")
	if err != nil {
		s.logger.Error("create staging file", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	stagingPath := staging.Name()
	defer func() { _ = os.Remove(stagingPath) }()

	if _, err := io.Copy(staging, file); err != nil {
		_ = staging.Close()
		s.logger.Error("stage upload", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := staging.Close(); err != nil {
		s.logger.Error("close staged upload", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	video, err := s.daemon.pipe.Upload(r.Context(), stagingPath, header.Filename)
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, api.VideoResponse{Success: true, Video: api.FromVideo(video)})
}

func (s *apiServer) handleVideoShow(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	video, err := s.daemon.pipe.Get(r.Context(), id)
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.VideoResponse{Success: true, Video: api.FromVideo(video)})
}

func (s *apiServer) handleTrim(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.TrimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	video, err := s.daemon.pipe.Trim(r.Context(), id, req.Start, req.End)
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.VideoResponse{Success: true, Video: api.FromVideo(video)})
}

func (s *apiServer) handleSubtitles(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.SubtitlesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	video, cues, err := s.daemon.pipe.AddSubtitles(r.Context(), id, req.Text, req.StartTime, req.EndTime)
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.SubtitlesResponse{
		Success: true,
		Video:   api.FromVideo(video),
		Cues:    api.FromCues(cues),
	})
}

func (s *apiServer) handleRender(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	video, err := s.daemon.pipe.Render(r.Context(), id)
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.VideoResponse{Success: true, Video: api.FromVideo(video)})
}

func (s *apiServer) handleDownload(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ref, err := s.daemon.pipe.Download(r.Context(), id)
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.DownloadResponse{
		Success:     true,
		DownloadURL: ref.URL,
		Video:       api.FromVideo(ref.Video),
	})
}

// writePipelineError maps a pipeline failure to the stable (status, message)
// pair. Full diagnostic detail stays in the log; internal failures are not
// echoed to the caller.
func (s *apiServer) writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	status := services.HTTPStatus(err)
	message := services.Details(err)
	if status >= http.StatusInternalServerError {
		message = "internal error"
	}
	logging.WithContext(r.Context(), s.logger).Error("request failed",
		logging.String("path", r.URL.Path),
		logging.Int("status", status),
		logging.Error(err),
	)
	s.writeError(w, status, message)
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Success: false, StatusCode: status, Message: message})
}
