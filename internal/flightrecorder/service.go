// Package flightrecorder captures runtime execution traces around slow or
// timed-out requests so the last moments before the stall can be inspected
// with go tool trace.
package flightrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"sync/atomic"
	"time"

	"github.com/myrjola/questapp/internal/errors"
)

const (
	// defaultMinAge is how far back the in-memory trace window reaches.
	defaultMinAge = 5 * time.Minute

	// defaultMaxBytes caps the in-memory trace buffer.
	defaultMaxBytes = 64 * 1024 * 1024

	// captureCooldown throttles dumps so a storm of timeouts cannot fill the
	// disk with near-identical trace files.
	captureCooldown = 30 * time.Minute
)

// Service wraps a runtime trace flight recorder with throttled file dumps.
type Service struct {
	logger          *slog.Logger
	flightRecorder  *trace.FlightRecorder
	tracesDirectory string
	lastCapture     atomic.Int64
}

// Config configures the flight recorder service. Zero MinAge and MaxBytes
// fall back to the defaults.
type Config struct {
	Logger          *slog.Logger
	MinAge          time.Duration
	MaxBytes        uint64
	TracesDirectory string
}

// New creates a flight recorder service writing dumps under the configured
// directory, creating it when missing.
func New(cfg Config) (*Service, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.TracesDirectory == "" {
		return nil, errors.New("traces directory is required")
	}

	if stat, err := os.Stat(cfg.TracesDirectory); err != nil {
		if err = os.MkdirAll(cfg.TracesDirectory, 0o700); err != nil {
			return nil, errors.Wrap(err, "create traces directory")
		}
	} else if !stat.IsDir() {
		return nil, errors.Wrap(nil, "traces path is not a directory",
			slog.String("path", cfg.TracesDirectory))
	}

	minAge := cfg.MinAge
	if minAge == 0 {
		minAge = defaultMinAge
	}
	maxBytes := cfg.MaxBytes
	if maxBytes == 0 {
		maxBytes = defaultMaxBytes
	}

	recorder := trace.NewFlightRecorder(trace.FlightRecorderConfig{
		MinAge:   minAge,
		MaxBytes: maxBytes,
	})
	if recorder == nil {
		return nil, errors.New("create flight recorder")
	}

	return &Service{
		logger:          cfg.Logger,
		flightRecorder:  recorder,
		tracesDirectory: cfg.TracesDirectory,
		lastCapture:     atomic.Int64{},
	}, nil
}

// Start begins recording.
func (s *Service) Start(ctx context.Context) error {
	if err := s.flightRecorder.Start(); err != nil {
		return errors.Wrap(err, "start flight recorder")
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder started",
		slog.String("traces_directory", s.tracesDirectory))
	return nil
}

// Stop ends recording.
func (s *Service) Stop(ctx context.Context) {
	s.flightRecorder.Stop()
	s.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder stopped")
}

// CaptureTimeoutTrace dumps the current trace window to a file. Calls inside
// the cooldown window are dropped silently apart from a debug log.
func (s *Service) CaptureTimeoutTrace(ctx context.Context) {
	now := time.Now().Unix()
	lastCapture := s.lastCapture.Load()
	if lastCapture > 0 && time.Duration(now-lastCapture)*time.Second < captureCooldown {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "trace capture skipped during cooldown",
			slog.Time("last_capture", time.Unix(lastCapture, 0)))
		return
	}
	if !s.lastCapture.CompareAndSwap(lastCapture, now) {
		// Lost the race to a concurrent capture.
		return
	}

	timestamp := time.Unix(now, 0).UTC().Format("20060102-150405")
	path := filepath.Join(s.tracesDirectory, fmt.Sprintf("timeout-%s.trace", timestamp))

	file, err := os.Create(path)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "create trace file",
			slog.String("file", path), slog.Any("error", err))
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "close trace file",
				slog.String("file", path), slog.Any("error", closeErr))
		}
	}()

	written, err := s.flightRecorder.WriteTo(file)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "write trace file",
			slog.String("file", path), slog.Any("error", err))
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, "captured timeout trace",
		slog.String("file", path), slog.Int64("bytes", written))
}
