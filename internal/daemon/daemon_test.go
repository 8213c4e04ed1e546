package daemon_test

import (
	"context"
	"testing"

	"clipforge/internal/daemon"
	"clipforge/internal/ffmpeg"
	"clipforge/internal/logging"
	"clipforge/internal/pipeline"
	"clipforge/internal/testsupport"
)

func newTestDaemon(t *testing.T, opts ...testsupport.ConfigOption) *daemon.Daemon {
	t.Helper()
	opts = append([]testsupport.ConfigOption{testsupport.WithStubbedBinaries()}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	store := testsupport.MustOpenStore(t, cfg)
	logger := logging.NewNop()
	pipe := pipeline.New(cfg, store, ffmpeg.New(cfg, logger), logger)

	d, err := daemon.New(cfg, store, pipe, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	return d
}

func TestDaemonStartStop(t *testing.T) {
	d := newTestDaemon(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()

	if d.Addr() == "" {
		t.Fatal("expected API listener address")
	}

	status := d.Status(ctx)
	if !status.Running {
		t.Fatal("expected running status")
	}
	if status.LockFilePath == "" || status.DatabasePath == "" {
		t.Fatalf("incomplete status: %+v", status)
	}

	d.Stop()
	if d.Status(ctx).Running {
		t.Fatal("expected stopped status")
	}
}

func TestDaemonSecondStartFails(t *testing.T) {
	d := newTestDaemon(t)
	ctx := context.Background()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()

	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second Start to fail")
	}
}

func TestDaemonNewRequiresDependencies(t *testing.T) {
	if _, err := daemon.New(nil, nil, nil, nil); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}
