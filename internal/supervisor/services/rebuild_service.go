// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/artifact"
	"github.com/tomtom215/marquee/internal/features"
	"github.com/tomtom215/marquee/internal/quality"
)

// ErrRebuildInProgress is returned by RunOnce when a cycle is already running.
var ErrRebuildInProgress = errors.New("rebuild already in progress")

// Builder produces a new artifact pair. In a staged setup it writes into
// RebuildServiceConfig.StagingDir.
type Builder interface {
	Run(ctx context.Context) (*features.BuildReport, error)
}

// Checker evaluates the artifact pair the builder just wrote.
type Checker interface {
	Run(ctx context.Context) (*quality.Report, error)
}

// Invalidator drops whatever artifacts a reader has loaded.
type Invalidator interface {
	Invalidate()
}

// RebuildServiceConfig holds the rebuild schedule.
type RebuildServiceConfig struct {
	// RunOnStart triggers a cycle as soon as the service starts.
	RunOnStart bool

	// Interval between scheduled cycles. Default: 24h
	Interval time.Duration

	// Timeout bounds one cycle. Default: 30m
	Timeout time.Duration

	// StagingDir and ArtifactDir enable promotion: a build that passes its
	// check is moved from StagingDir into ArtifactDir. When either is empty
	// the builder is assumed to write straight into the served directory.
	StagingDir  string
	ArtifactDir string
}

func (c RebuildServiceConfig) staged() bool {
	return c.StagingDir != "" && c.ArtifactDir != ""
}

// RebuildService periodically rebuilds the similarity artifacts, checks
// them, and promotes them and tells the index to reload only when the check
// passes. A rejected build stays in the staging directory.
type RebuildService struct {
	builder Builder
	checker Checker
	index   Invalidator
	config  RebuildServiceConfig
	logger  zerolog.Logger
	name    string

	mu      sync.Mutex
	running bool
}

// NewRebuildService creates the service. checker and index may be nil: with
// no checker every build is accepted, with no index nothing is invalidated.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRebuildService(builder Builder, checker Checker, index Invalidator, cfg RebuildServiceConfig, logger zerolog.Logger) *RebuildService {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Minute
	}
	return &RebuildService{
		builder: builder,
		checker: checker,
		index:   index,
		config:  cfg,
		logger:  logger.With().Str("service", "rebuild").Logger(),
		name:    "rebuild-service",
	}
}

// Serve implements suture.Service. Cycle failures are logged and retried
// on the next tick; they never restart the service.
func (s *RebuildService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("run_on_start", s.config.RunOnStart).
		Dur("interval", s.config.Interval).
		Msg("Rebuild service starting")

	if s.config.RunOnStart {
		if err := s.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn().Err(err).Msg("Initial rebuild failed, will retry on schedule")
		}
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Rebuild service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Warn().Err(err).Msg("Scheduled rebuild failed")
			}
		}
	}
}

// RunOnce runs one build, check, promote and invalidate cycle. The served
// directory and the index are left untouched when any step fails.
func (s *RebuildService) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrRebuildInProgress
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	cycleCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	build, err := s.builder.Run(cycleCtx)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	if s.checker != nil {
		report, err := s.checker.Run(cycleCtx)
		if err != nil {
			if s.config.staged() {
				s.logger.Warn().
					Str("build_id", build.BuildID).
					Str("staging_dir", s.config.StagingDir).
					Msg("Rejected build left in staging, served artifacts unchanged")
			}
			return fmt.Errorf("quality check of build %s: %w", build.BuildID, err)
		}
		s.logger.Info().
			Str("build_id", build.BuildID).
			Float64("avg_top_k", report.AvgTopK).
			Msg("Rebuilt artifacts passed quality check")
	}

	if s.config.staged() {
		if err := artifact.Promote(s.config.StagingDir, s.config.ArtifactDir); err != nil {
			return fmt.Errorf("promote build %s: %w", build.BuildID, err)
		}
	}

	if s.index != nil {
		s.index.Invalidate()
	}
	s.logger.Info().
		Str("build_id", build.BuildID).
		Int("movies", build.Indexed).
		Dur("build_duration", build.Duration).
		Msg("Rebuild cycle complete")
	return nil
}

// String names the service in supervisor events.
func (s *RebuildService) String() string {
	return s.name
}
