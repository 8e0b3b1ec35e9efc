// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package features

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/artifact"
	"github.com/tomtom215/marquee/internal/dataset"
	"github.com/tomtom215/marquee/internal/metrics"
)

// RequiredColumns are the dataset columns the builder cannot work without.
// overview is read when present.
var RequiredColumns = []string{
	"id", "title", "genres", "keywords", "production_companies", "production_countries",
}

var listColumns = []string{"genres", "keywords", "production_companies", "production_countries"}

// Config controls a feature build.
type Config struct {
	DatasetPath string
	ArtifactDir string
	MaxFeatures int
	// Workers bounds the goroutines used for the similarity matrix.
	Workers int
}

// BuildReport summarizes a completed build.
type BuildReport struct {
	BuildID     string        `json:"build_id"`
	Rows        int           `json:"rows"`
	Indexed     int           `json:"indexed"`
	Skipped     int           `json:"skipped"`
	Vocabulary  int           `json:"vocabulary"`
	Duration    time.Duration `json:"duration_ns"`
	BuiltAt     time.Time     `json:"built_at"`
	ArtifactDir string        `json:"artifact_dir"`
}

// Document is one indexed movie and its cleaned text.
type Document struct {
	ID    int64
	Title string
	Text  string
}

// Builder turns the movie dataset into similarity artifacts.
type Builder struct {
	cfg    Config
	logger zerolog.Logger
}

// NewBuilder creates a builder.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBuilder(cfg Config, logger zerolog.Logger) *Builder {
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = DefaultMaxFeatures
	}
	return &Builder{
		cfg:    cfg,
		logger: logger.With().Str("component", "feature-builder").Logger(),
	}
}

// Run reads the dataset, vectorizes every movie, computes the cosine matrix
// and writes the artifact pair.
func (b *Builder) Run(ctx context.Context) (report *BuildReport, err error) {
	start := time.Now()
	defer func() {
		if report != nil {
			metrics.RecordBuild(nil, report.Indexed, report.Skipped, report.Vocabulary)
			return
		}
		metrics.RecordBuild(err, 0, 0, 0)
	}()

	b.logger.Info().Str("dataset", b.cfg.DatasetPath).Str("artifact_dir", b.cfg.ArtifactDir).Msg("Feature build started")

	stage := time.Now()
	docs, rows, skipped, err := ReadDocuments(b.cfg.DatasetPath, b.logger)
	if err != nil {
		return nil, err
	}
	metrics.RecordBuildStage("read", time.Since(stage))
	if skipped > 0 {
		b.logger.Warn().Int("skipped", skipped).Int("rows", rows).Msg("Dataset rows skipped during build")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stage = time.Now()
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	model, vecs := Vectorizer{MaxFeatures: b.cfg.MaxFeatures}.FitTransform(texts)
	metrics.RecordBuildStage("vectorize", time.Since(stage))
	b.logger.Debug().Int("vocabulary", model.Size()).Int("documents", len(vecs)).Msg("TF-IDF fitted")

	stage = time.Now()
	matrix, err := CosineMatrix(ctx, vecs, model.Size(), b.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("similarity matrix: %w", err)
	}
	metrics.RecordBuildStage("similarity", time.Since(stage))

	stage = time.Now()
	ids := make([]int64, len(docs))
	titles := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
		titles[i] = d.Title
	}
	set := artifact.NewSet(ids, titles, len(docs), matrix)
	if err := artifact.Write(b.cfg.ArtifactDir, set); err != nil {
		return nil, fmt.Errorf("write artifacts: %w", err)
	}
	metrics.RecordBuildStage("write", time.Since(stage))

	elapsed := time.Since(start)
	metrics.RecordBuildStage("total", elapsed)

	report = &BuildReport{
		BuildID:     set.BuildID,
		Rows:        rows,
		Indexed:     len(docs),
		Skipped:     skipped,
		Vocabulary:  model.Size(),
		Duration:    elapsed,
		BuiltAt:     set.BuiltAt,
		ArtifactDir: b.cfg.ArtifactDir,
	}
	b.logger.Info().
		Str("build_id", report.BuildID).
		Int("indexed", report.Indexed).
		Int("skipped", report.Skipped).
		Int("vocabulary", report.Vocabulary).
		Dur("duration", elapsed).
		Msg("Feature build complete")
	return report, nil
}

// ReadDocuments loads the dataset at path and returns one document per
// usable row. rows counts every data record seen; skipped counts the ones
// dropped (unreadable, missing id or title, malformed list, duplicate id).
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ReadDocuments(path string, logger zerolog.Logger) (docs []Document, rows, skipped int, err error) {
	r, err := dataset.Open(path, RequiredColumns...)
	if err != nil {
		return nil, 0, 0, err
	}
	defer r.Close()

	seen := make(map[int64]struct{}, 4096)
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		rows++
		if err != nil {
			skipped++
			logger.Debug().Err(err).Msg("Skipping unreadable dataset record")
			continue
		}

		doc, err := DocumentFromRow(row)
		if err != nil {
			skipped++
			logger.Debug().Err(err).Int("line", row.Line()).Msg("Skipping malformed dataset row")
			continue
		}
		if _, dup := seen[doc.ID]; dup {
			skipped++
			logger.Debug().Int64("id", doc.ID).Msg("Skipping duplicate dataset id")
			continue
		}
		seen[doc.ID] = struct{}{}
		docs = append(docs, doc)
	}
	return docs, rows, skipped, nil
}

// DocumentFromRow assembles and cleans the descriptive text of one row.
// A missing list cell contributes nothing; a cell that is not a valid list
// rejects the row.
func DocumentFromRow(row dataset.Row) (Document, error) {
	rawID, ok := row.Get("id")
	if !ok {
		return Document{}, errors.New("missing id")
	}
	parsed, err := dataset.ParseInt(rawID)
	if err != nil {
		return Document{}, fmt.Errorf("id: %w", err)
	}
	id := int64(parsed)
	title, ok := row.Get("title")
	if !ok {
		return Document{}, fmt.Errorf("id %d: missing title", id)
	}

	joined := make(map[string]string, len(listColumns))
	for _, col := range listColumns {
		raw, _ := row.Get(col)
		names, err := JoinNames(raw)
		if err != nil {
			return Document{}, fmt.Errorf("id %d: %s: %w", id, col, err)
		}
		joined[col] = names
	}
	overview, _ := row.Get("overview")

	info := Information(
		joined["genres"],
		joined["keywords"],
		overview,
		joined["production_companies"],
		joined["production_countries"],
	)
	return Document{ID: id, Title: strings.TrimSpace(title), Text: CleanText(info)}, nil
}
