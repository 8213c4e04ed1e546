package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"clipforge/internal/config"
	"clipforge/internal/ffmpeg"
	"clipforge/internal/fileutil"
	"clipforge/internal/logging"
	"clipforge/internal/notifications"
	"clipforge/internal/services"
	"clipforge/internal/subtitles"
	"clipforge/internal/textutil"
	"clipforge/internal/timecode"
	"clipforge/internal/videostore"
)

// Pipeline orchestrates stage transitions for video records. Each transition
// loads the record, validates preconditions, delegates the transcode to the
// invoker, commits the new artifact reference, and only then reaps whatever
// that commit superseded. Transitions on the same identifier are serialized.
type Pipeline struct {
	cfg      *config.Config
	store    *videostore.Store
	invoker  *ffmpeg.Invoker
	reaper   *ArtifactReaper
	logger   *slog.Logger
	locks    *idLocks
	notifier notifications.Service
}

// New constructs a pipeline over the given store and invoker.
func New(cfg *config.Config, store *videostore.Store, invoker *ffmpeg.Invoker, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		store:    store,
		invoker:  invoker,
		reaper:   NewArtifactReaper(logger),
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		locks:    newIDLocks(),
		notifier: notifications.NewService(cfg),
	}
}

// DownloadRef is the reference handed out by the download transition. Byte
// delivery is the file server's concern, not the pipeline's.
type DownloadRef struct {
	Video *videostore.Video
	Path  string
	URL   string
}

// Upload ingests a file that already sits on durable storage: the source is
// copied into the library, probed for media metadata, and a record is created
// in the uploaded state. The staged source file is left untouched.
func (p *Pipeline) Upload(ctx context.Context, sourcePath, originalName string) (*videostore.Video, error) {
	const stage = "upload"

	sourcePath = strings.TrimSpace(sourcePath)
	if sourcePath == "" {
		return nil, services.Wrap(services.ErrInvalidInput, stage, "intake", "source path is required", nil)
	}
	name := strings.TrimSpace(originalName)
	if name == "" {
		name = filepath.Base(sourcePath)
	}
	name = textutil.SanitizeFileName(name)

	info, err := os.Stat(sourcePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, services.Wrap(services.ErrNotFound, stage, "intake", "uploaded file missing: "+sourcePath, nil)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, stage, "intake", "stat uploaded file", err)
	}
	if info.IsDir() {
		return nil, services.Wrap(services.ErrInvalidInput, stage, "intake", "source path is a directory", nil)
	}

	ctx = services.WithStage(ctx, stage)
	logger := logging.WithContext(ctx, p.logger)

	dest := p.originalPathFor(name)
	if err := fileutil.CopyFileVerified(sourcePath, dest); err != nil {
		return nil, services.Wrap(services.ErrTransient, stage, "intake", "copy into library", err)
	}

	probe, err := p.invoker.Probe(ctx, dest)
	if err != nil {
		_ = os.Remove(dest)
		return nil, err
	}

	video, err := p.store.NewVideo(ctx, name, dest, probe.DurationSeconds, info.Size(), string(probe.RawJSON()))
	if err != nil {
		_ = os.Remove(dest)
		return nil, services.Wrap(services.ErrTransient, stage, "store", "create video record", err)
	}

	logger.Info("video uploaded",
		logging.String(logging.FieldVideoID, video.ID),
		logging.String("name", video.Name),
		logging.Float64("duration", video.Duration),
		logging.Int64("size", video.Size),
	)
	p.notify(ctx, notifications.EventUploadCompleted, notifications.Payload{"title": video.Title})
	return video, nil
}

// Trim cuts [start, end) out of the original upload and records the result as
// the trimmed artifact. The source is always the original path so a repeated
// trim re-cuts the pristine upload, not an earlier cut.
func (p *Pipeline) Trim(ctx context.Context, id, start, end string) (*videostore.Video, error) {
	const stage = "trim"
	release := p.locks.acquire(id)
	defer release()

	ctx = services.WithStage(services.WithVideoID(ctx, id), stage)

	video, err := p.mustLoad(ctx, stage, id)
	if err != nil {
		return nil, err
	}

	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if start == "" || end == "" {
		return nil, services.Wrap(services.ErrInvalidInput, stage, "validate", "start and end are both required", nil)
	}
	duration, err := timecode.DurationBetween(start, end)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidInput, stage, "validate", err.Error(), err)
	}
	if duration <= 0 {
		return nil, services.Wrap(services.ErrInvalidRange, stage, "validate", "end must be after start", nil)
	}

	source := video.Path
	if err := p.requireFile(stage, source); err != nil {
		return nil, err
	}

	output := p.trimmedPathFor(video.Name)
	if err := p.invoker.Trim(ctx, source, output, start, duration); err != nil {
		return nil, err
	}

	superseded := video.TrimmedPath
	video.TrimmedPath = output
	if err := p.store.Update(ctx, video); err != nil {
		_ = os.Remove(output)
		return nil, services.Wrap(services.ErrTransient, stage, "store", "commit trimmed path", err)
	}
	p.reaper.Reap(ctx, superseded)

	logging.WithContext(ctx, p.logger).Info("trim committed",
		logging.String("output", output),
		logging.Float64("duration", duration),
	)
	return video, nil
}

// AddSubtitles generates a timed subtitle track from text and burns it into
// the current cut. The input is the trimmed artifact when one exists,
// otherwise the original. The temporary track file is removed whether the
// burn succeeds or not.
func (p *Pipeline) AddSubtitles(ctx context.Context, id, text, startTime, endTime string) (*videostore.Video, []subtitles.Cue, error) {
	const stage = "subtitles"
	release := p.locks.acquire(id)
	defer release()

	ctx = services.WithStage(services.WithVideoID(ctx, id), stage)

	video, err := p.mustLoad(ctx, stage, id)
	if err != nil {
		return nil, nil, err
	}

	source := video.Path
	if video.TrimmedPath != "" {
		source = video.TrimmedPath
	}
	if err := p.requireFile(stage, source); err != nil {
		return nil, nil, err
	}

	trackPath := p.subtitleTrackPathFor(video.ID)
	cues, err := subtitles.GenerateTimedSRT(text, startTime, endTime, trackPath)
	if err != nil {
		_ = os.Remove(trackPath)
		return nil, nil, err
	}
	defer func() { _ = os.Remove(trackPath) }()

	output := p.subtitledPathFor(video.Name)
	if err := p.invoker.BurnSubtitles(ctx, source, trackPath, output); err != nil {
		return nil, nil, err
	}

	superseded := video.SubtitledPath
	video.SubtitledPath = output
	if err := p.store.Update(ctx, video); err != nil {
		_ = os.Remove(output)
		return nil, nil, services.Wrap(services.ErrTransient, stage, "store", "commit subtitled path", err)
	}
	p.reaper.Reap(ctx, superseded)

	logging.WithContext(ctx, p.logger).Info("subtitles committed",
		logging.String("output", output),
		logging.Int("cues", len(cues)),
	)
	return video, cues, nil
}

// Render remuxes the current cut into the final artifact. On success the
// intermediate trimmed and subtitled artifacts are cleared and deleted; this
// and path-field overwrites are the only places artifacts are reaped.
func (p *Pipeline) Render(ctx context.Context, id string) (*videostore.Video, error) {
	const stage = "render"
	release := p.locks.acquire(id)
	defer release()

	ctx = services.WithStage(services.WithVideoID(ctx, id), stage)

	video, err := p.mustLoad(ctx, stage, id)
	if err != nil {
		return nil, err
	}

	source := video.CurrentSource()
	if err := p.requireFile(stage, source); err != nil {
		return nil, err
	}

	output := p.finalPathFor(video.Name)
	if err := p.invoker.Finalize(ctx, source, output); err != nil {
		return nil, err
	}

	superseded := []string{video.TrimmedPath, video.SubtitledPath, video.FinalPath}
	video.TrimmedPath = ""
	video.SubtitledPath = ""
	video.FinalPath = output
	video.Status = videostore.StatusRendered
	if err := p.store.Update(ctx, video); err != nil {
		_ = os.Remove(output)
		return nil, services.Wrap(services.ErrTransient, stage, "store", "commit final path", err)
	}
	p.reaper.Reap(ctx, superseded...)

	logging.WithContext(ctx, p.logger).Info("render committed",
		logging.String("output", output),
		logging.String("status", string(video.Status)),
	)
	p.notify(ctx, notifications.EventRenderCompleted, notifications.Payload{
		"title":     video.Title,
		"finalFile": filepath.Base(output),
	})
	return video, nil
}

// Download resolves the final artifact reference for a rendered video. It is
// a pure read; no record or file state changes.
func (p *Pipeline) Download(ctx context.Context, id string) (*DownloadRef, error) {
	const stage = "download"
	ctx = services.WithStage(services.WithVideoID(ctx, id), stage)

	video, err := p.mustLoad(ctx, stage, id)
	if err != nil {
		return nil, err
	}
	if video.FinalPath == "" {
		return nil, services.Wrap(services.ErrNotReady, stage, "resolve", "video has not been rendered", nil)
	}
	if err := p.requireFile(stage, video.FinalPath); err != nil {
		return nil, err
	}

	ref := &DownloadRef{
		Video: video,
		Path:  video.FinalPath,
		URL:   p.downloadURL(video.FinalPath),
	}
	return ref, nil
}

// Get loads a single record, failing with NotFound when it does not exist.
func (p *Pipeline) Get(ctx context.Context, id string) (*videostore.Video, error) {
	return p.mustLoad(ctx, "lookup", id)
}

// List returns records, optionally filtered by status.
func (p *Pipeline) List(ctx context.Context, statuses ...videostore.Status) ([]*videostore.Video, error) {
	return p.store.List(ctx, statuses...)
}

// Stats returns record counts keyed by status.
func (p *Pipeline) Stats(ctx context.Context) (map[videostore.Status]int, error) {
	return p.store.Stats(ctx)
}

func (p *Pipeline) mustLoad(ctx context.Context, stage, id string) (*videostore.Video, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, services.Wrap(services.ErrInvalidInput, stage, "load", "video id is required", nil)
	}
	video, err := p.store.GetByID(ctx, id)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, stage, "load", "read video record", err)
	}
	if video == nil {
		return nil, services.Wrap(services.ErrNotFound, stage, "load", "video "+id, nil)
	}
	return video, nil
}

func (p *Pipeline) requireFile(stage, path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrNotFound, stage, "resolve", "artifact missing: "+path, nil)
	}
	if err != nil {
		return services.Wrap(services.ErrTransient, stage, "resolve", "stat artifact", err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrNotFound, stage, "resolve", "artifact is a directory: "+path, nil)
	}
	return nil
}

// notify is fire-and-forget: a failed notification never fails a transition.
func (p *Pipeline) notify(ctx context.Context, event notifications.Event, payload notifications.Payload) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.Publish(ctx, event, payload); err != nil {
		logging.WithContext(ctx, p.logger).Warn("notification failed",
			logging.String("event", string(event)),
			logging.Error(err),
		)
	}
}

func (p *Pipeline) downloadURL(finalPath string) string {
	base := strings.TrimRight(p.cfg.Paths.BaseURL, "/")
	if base == "" {
		return finalPath
	}
	return base + "/files/final/" + filepath.Base(finalPath)
}
