// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/dataset"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// LoadReport summarizes the last successful catalog load.
type LoadReport struct {
	Path       string        `json:"path"`
	Loaded     int           `json:"loaded"`
	Skipped    int           `json:"skipped"`
	Duplicates int           `json:"duplicates"`
	Duration   time.Duration `json:"duration"`
	LoadedAt   time.Time     `json:"loaded_at"`
}

// snapshot is an immutable, fully built catalog.
type snapshot struct {
	movies []models.Movie
	byID   map[int]int
	titles *cache.TitleTrie
	report LoadReport
}

// Store owns the in-memory catalog.
//
// The dataset is read lazily on first access. Concurrent first callers share
// one load and all observe the same snapshot. A successful load is kept for
// the lifetime of the Store; a failed load (missing or unreadable dataset) is
// not remembered, so the next call tries again.
type Store struct {
	path   string
	logger zerolog.Logger

	snap  atomic.Pointer[snapshot]
	group singleflight.Group
}

// NewStore creates a Store reading the dataset at path (or path.zip).
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Load returns every catalog movie in dataset order, loading on first use.
// The returned slice is shared and must not be modified; use All for a copy.
func (s *Store) Load(ctx context.Context) []models.Movie {
	if snap := s.snapshot(ctx); snap != nil {
		return snap.movies
	}
	return []models.Movie{}
}

// All returns a copy of the catalog slice that callers may reorder.
func (s *Store) All(ctx context.Context) []models.Movie {
	return slices.Clone(s.Load(ctx))
}

// Len returns the number of movies in the catalog.
func (s *Store) Len(ctx context.Context) int {
	return len(s.Load(ctx))
}

// GetByID returns the catalog movie with the given id.
func (s *Store) GetByID(ctx context.Context, id int) (models.Movie, bool) {
	snap := s.snapshot(ctx)
	if snap == nil {
		return models.Movie{}, false
	}
	i, ok := snap.byID[id]
	if !ok {
		return models.Movie{}, false
	}
	return snap.movies[i], true
}

// PrefixSearch returns catalog movies whose lowercased title starts with the
// lowercased query, in dataset order. It never fails; the error return
// satisfies the ranking provider contract.
func (s *Store) PrefixSearch(ctx context.Context, query string) ([]models.Movie, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.Movie{}, nil
	}
	snap := s.snapshot(ctx)
	if snap == nil {
		return []models.Movie{}, nil
	}
	positions := snap.titles.Prefix(q)
	out := make([]models.Movie, len(positions))
	for i, pos := range positions {
		out[i] = snap.movies[pos]
	}
	return out, nil
}

// Report returns statistics of the current snapshot.
func (s *Store) Report() (LoadReport, bool) {
	snap := s.snap.Load()
	if snap == nil {
		return LoadReport{}, false
	}
	return snap.report, true
}

func (s *Store) snapshot(ctx context.Context) *snapshot {
	if snap := s.snap.Load(); snap != nil {
		return snap
	}

	// The shared load must not be cut short by whichever caller got there first.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do("load", func() (interface{}, error) {
		if snap := s.snap.Load(); snap != nil {
			return snap, nil
		}
		snap, err := s.read(loadCtx)
		if err != nil {
			return nil, err
		}
		s.snap.Store(snap)
		return snap, nil
	})
	if err != nil {
		return nil
	}
	return v.(*snapshot)
}

func (s *Store) read(ctx context.Context) (*snapshot, error) {
	start := time.Now()
	logger := logging.Enrich(ctx, s.logger)

	r, err := dataset.Open(s.path, RequiredColumns...)
	if err != nil {
		result := "error"
		if errors.Is(err, dataset.ErrNotFound) {
			result = "missing"
		}
		metrics.RecordCatalogLoad(result, time.Since(start), 0, 0, 0)
		logger.Error().Err(err).Str("path", s.path).Msg("Catalog dataset unavailable")
		return nil, err
	}
	defer r.Close()

	snap := &snapshot{
		byID:   make(map[int]int, 4096),
		titles: cache.NewTitleTrie(),
	}
	var skipped, duplicates int

	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			logger.Debug().Err(err).Msg("Skipping unreadable catalog record")
			continue
		}

		movie, err := ParseRow(row)
		if err != nil {
			skipped++
			logger.Debug().Err(err).Msg("Skipping malformed catalog row")
			continue
		}
		if _, dup := snap.byID[movie.ID]; dup {
			duplicates++
			logger.Debug().Int("id", movie.ID).Str("title", movie.Title).Msg("Skipping duplicate catalog id")
			continue
		}

		snap.byID[movie.ID] = len(snap.movies)
		snap.titles.Insert(movie.Title, len(snap.movies))
		snap.movies = append(snap.movies, movie)
	}

	if snap.movies == nil {
		snap.movies = []models.Movie{}
	}

	elapsed := time.Since(start)
	snap.report = LoadReport{
		Path:       s.path,
		Loaded:     len(snap.movies),
		Skipped:    skipped,
		Duplicates: duplicates,
		Duration:   elapsed,
		LoadedAt:   time.Now(),
	}
	metrics.RecordCatalogLoad("success", elapsed, len(snap.movies), skipped, duplicates)

	if skipped > 0 || duplicates > 0 {
		logger.Warn().
			Int("skipped", skipped).
			Int("duplicates", duplicates).
			Msg("Catalog rows dropped during load")
	}
	logger.Info().
		Int("movies", len(snap.movies)).
		Dur("duration", elapsed).
		Msg("Catalog loaded")

	return snap, nil
}

// Preload forces the catalog to load and reports an error when it could not.
func (s *Store) Preload(ctx context.Context) error {
	if s.snapshot(ctx) == nil {
		return fmt.Errorf("catalog %s could not be loaded", s.path)
	}
	return nil
}
