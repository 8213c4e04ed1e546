package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/gofrs/flock"

	"clipforge/internal/config"
	"clipforge/internal/deps"
	"clipforge/internal/logging"
	"clipforge/internal/pipeline"
	"clipforge/internal/preflight"
	"clipforge/internal/videostore"
)

// Daemon hosts the HTTP API over the pipeline and enforces single-instance
// execution via a lock file.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *videostore.Store
	pipe   *pipeline.Pipeline

	lockPath string
	lock     *flock.Flock

	api *apiServer

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	DatabasePath string
	LockFilePath string
	VideoStats   map[videostore.Status]int
	Dependencies []deps.Status
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *videostore.Store, pipe *pipeline.Pipeline, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || pipe == nil || logger == nil {
		return nil, errors.New("daemon requires config, store, pipeline, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "clipforge.lock")
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		pipe:     pipe,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}

	api, err := newAPIServer(cfg, d, logger)
	if err != nil {
		return nil, err
	}
	d.api = api
	return d, nil
}

// Start acquires the daemon lock, runs preflight checks, and begins serving
// the HTTP API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another clipforge instance is already running")
	}

	results := preflight.RunAll(ctx, d.cfg)
	for _, result := range results {
		if result.Passed {
			continue
		}
		_ = d.lock.Unlock()
		return fmt.Errorf("preflight check %q failed: %s", result.Name, result.Detail)
	}
	for _, dep := range preflight.CheckSystemDeps(ctx, d.cfg) {
		if dep.Available || dep.Optional {
			continue
		}
		_ = d.lock.Unlock()
		return fmt.Errorf("missing required dependency %s: %s", dep.Name, dep.Detail)
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if d.api != nil {
		if err := d.api.start(d.ctx); err != nil {
			_ = d.lock.Unlock()
			d.cancel()
			d.ctx = nil
			d.cancel = nil
			return err
		}
	}

	d.running.Store(true)
	d.logger.Info("clipforge daemon started",
		logging.String("lock", d.lockPath),
		logging.String("bind", d.cfg.Paths.APIBind),
	)
	return nil
}

// Stop shuts down the API server and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.api != nil {
		d.api.stop()
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("clipforge daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Addr returns the API listener address, or empty when not serving.
func (d *Daemon) Addr() string {
	if d.api == nil {
		return ""
	}
	return d.api.addr()
}

// UploadFile runs the upload transition for a file already on disk.
func (d *Daemon) UploadFile(ctx context.Context, sourcePath, originalName string) (*videostore.Video, error) {
	trimmed := strings.TrimSpace(sourcePath)
	if trimmed == "" {
		return nil, errors.New("source path is required")
	}
	absPath, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("resolve source path: %w", err)
	}
	return d.pipe.Upload(ctx, absPath, originalName)
}

// Status returns the current daemon status snapshot.
func (d *Daemon) Status(ctx context.Context) Status {
	stats, err := d.pipe.Stats(ctx)
	if err != nil {
		d.logger.Warn("failed to read video stats", logging.Error(err))
	}
	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		DatabasePath: d.cfg.DatabasePath(),
		LockFilePath: d.lockPath,
		VideoStats:   stats,
		Dependencies: preflight.CheckSystemDeps(ctx, d.cfg),
	}
}
