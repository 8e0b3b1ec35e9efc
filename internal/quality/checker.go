// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package quality

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/artifact"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Recorder stores reports. *History implements it.
type Recorder interface {
	Record(ctx context.Context, report *Report) error
}

// Checker re-reads the artifacts from disk and evaluates them.
type Checker struct {
	dir     string
	topK    int
	history Recorder
	logger  zerolog.Logger
}

// NewChecker creates a checker for the artifacts in dir. history may be nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewChecker(dir string, topK int, history Recorder, logger zerolog.Logger) *Checker {
	return &Checker{
		dir:     dir,
		topK:    topK,
		history: history,
		logger:  logger.With().Str("component", "quality").Logger(),
	}
}

// Run evaluates the stored artifacts. A missing, undecodable or mismatched
// pair is an error, as is any structural problem. Failing to record the
// report is logged but does not fail the check.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	runID := uuid.New().String()
	logger := c.logger.With().Str("run_id", runID).Logger()

	set, err := artifact.Read(c.dir)
	if err != nil {
		metrics.RecordQualityRun("error", 0, time.Now())
		if errors.Is(err, artifact.ErrCorrupt) || errors.Is(err, artifact.ErrBuildMismatch) {
			err = &ValidationError{Reason: "artifacts unreadable", Row: -1, Col: -1, Err: err}
		} else {
			err = fmt.Errorf("read artifacts: %w", err)
		}
		logger.Error().Err(err).Str("dir", c.dir).Msg("Quality check could not read artifacts")
		return nil, err
	}

	report, err := Evaluate(set, c.topK)
	if err != nil {
		metrics.RecordQualityRun("invalid", 0, time.Now())
		logger.Error().Err(err).Str("build_id", set.BuildID).Msg("Similarity artifacts failed validation")
		return nil, err
	}
	report.RunID = runID
	metrics.RecordQualityRun("passed", report.AvgTopK, report.EvaluatedAt)

	logger.Info().
		Str("build_id", report.BuildID).
		Int("movies", report.Movies).
		Int("top_k", report.TopK).
		Float64("avg_top_k", report.AvgTopK).
		Dur("duration", report.Duration).
		Msg("Quality check passed")

	if c.history != nil {
		if err := c.history.Record(ctx, report); err != nil {
			logger.Warn().Err(err).Msg("Failed to record quality report")
		}
	}
	return report, nil
}
