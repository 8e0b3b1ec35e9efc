// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package similarity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/marquee/internal/artifact"
	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

const loadKey = "artifacts"

// DefaultK and DefaultMaxK apply when Config leaves them unset.
const (
	DefaultK    = 10
	DefaultMaxK = 100
)

// Outcome labels recorded for each Recommend call.
const (
	OutcomeServed      = "served"
	OutcomeUnresolved  = "unresolved"
	OutcomeUnavailable = "unavailable"
	OutcomeBlankQuery  = "blank_query"
)

// Catalog resolves artifact movie ids to full records.
type Catalog interface {
	GetByID(ctx context.Context, id int) (models.Movie, bool)
}

// Config tunes the index.
type Config struct {
	Dir string

	// DefaultK is used when a caller passes k <= 0.
	DefaultK int
	MaxK     int

	// CacheSize bounds the memoized neighbour lists.
	CacheSize int

	// BreakerFailures consecutive load failures open the breaker for
	// BreakerTimeout; after that one trial load is allowed through.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.DefaultK <= 0 {
		c.DefaultK = DefaultK
	}
	if c.MaxK <= 0 {
		c.MaxK = DefaultMaxK
	}
	if c.DefaultK > c.MaxK {
		c.DefaultK = c.MaxK
	}
	if c.CacheSize <= 0 {
		c.CacheSize = 1024
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = 3
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = 30 * time.Second
	}
	return c
}

// snapshot is one loaded artifact set plus its title lookup.
type snapshot struct {
	set    *artifact.Set
	titles *cache.TitleTrie
}

type neighbourKey struct {
	build string
	query string
	k     int
}

// Status describes what the index currently serves.
type Status struct {
	Loaded  bool      `json:"loaded"`
	BuildID string    `json:"build_id,omitempty"`
	BuiltAt time.Time `json:"built_at,omitempty"`
	Movies  int       `json:"movies"`
	Breaker string    `json:"breaker"`

	// Neighbour cache counters. Hits and misses accumulate across
	// Invalidate; Cached is the current entry count.
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	Cached      int   `json:"cached"`
}

// Index answers "movies similar to this title" from the artifacts in Dir.
// Artifacts are loaded lazily on first use and kept until Invalidate.
type Index struct {
	cfg     Config
	catalog Catalog
	logger  zerolog.Logger

	current    atomic.Pointer[snapshot]
	generation atomic.Uint64
	group      singleflight.Group
	breaker    atomic.Pointer[gobreaker.CircuitBreaker[*snapshot]]
	neighbours *cache.LRU[neighbourKey, []int]
}

// NewIndex creates an index over the artifacts in cfg.Dir. movies may be nil,
// in which case every result is a placeholder record.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewIndex(cfg Config, movies Catalog, logger zerolog.Logger) *Index {
	cfg = cfg.withDefaults()
	idx := &Index{
		cfg:        cfg,
		catalog:    movies,
		logger:     logger.With().Str("component", "similarity").Logger(),
		neighbours: cache.NewLRU[neighbourKey, []int](cfg.CacheSize, 0),
	}
	idx.breaker.Store(idx.newBreaker())
	return idx
}

func (idx *Index) newBreaker() *gobreaker.CircuitBreaker[*snapshot] {
	metrics.SetArtifactBreakerState(0)
	return gobreaker.NewCircuitBreaker[*snapshot](gobreaker.Settings{
		Name:        "similarity-artifacts",
		MaxRequests: 1,
		Timeout:     idx.cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= idx.cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			idx.logger.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Artifact breaker state transition")
			metrics.SetArtifactBreakerState(stateToInt(to))
		},
	})
}

// Recommend returns up to k movies most similar to the title matched by
// query. k <= 0 selects the configured default; k is capped at MaxK.
// Unresolvable queries and unavailable artifacts yield an empty result.
func (idx *Index) Recommend(ctx context.Context, query string, k int) []models.Movie {
	start := time.Now()
	logger := logging.Enrich(ctx, idx.logger)

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		metrics.RecordRecommend(OutcomeBlankQuery, time.Since(start))
		return []models.Movie{}
	}
	k = idx.clampK(k)

	snap, err := idx.load(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("dir", idx.cfg.Dir).Msg("Similarity artifacts unavailable")
		metrics.RecordRecommend(OutcomeUnavailable, time.Since(start))
		return []models.Movie{}
	}

	rows, ok := idx.neighbourRows(snap, q, k)
	if !ok {
		logger.Debug().Str("query", q).Msg("No title matches recommendation query")
		metrics.RecordRecommend(OutcomeUnresolved, time.Since(start))
		return []models.Movie{}
	}

	out := make([]models.Movie, 0, len(rows))
	for _, r := range rows {
		out = append(out, idx.hydrate(ctx, snap.set, r))
	}
	metrics.RecordRecommend(OutcomeServed, time.Since(start))
	return out
}

// Neighbours returns the artifact rows most similar to row i, best first,
// excluding i itself.
func Neighbours(set *artifact.Set, i, k int) []cache.Scored {
	row := set.Row(i)
	return cache.TopK(set.N, k, func(j int) (float64, bool) {
		if j == i {
			return 0, false
		}
		return float64(row[j]), true
	})
}

func (idx *Index) neighbourRows(snap *snapshot, q string, k int) ([]int, bool) {
	key := neighbourKey{build: snap.set.BuildID, query: q, k: k}
	if rows, ok := idx.neighbours.Get(key); ok {
		metrics.RecordRecommendCache(true)
		return rows, true
	}
	metrics.RecordRecommendCache(false)

	pos, ok := snap.titles.First(q)
	if !ok {
		return nil, false
	}
	scored := Neighbours(snap.set, pos, k)
	rows := make([]int, len(scored))
	for i, s := range scored {
		rows[i] = s.Index
	}
	idx.neighbours.Add(key, rows)
	return rows, true
}

func (idx *Index) hydrate(ctx context.Context, set *artifact.Set, row int) models.Movie {
	id := int(set.IDs[row])
	if idx.catalog != nil {
		if m, ok := idx.catalog.GetByID(ctx, id); ok {
			return m
		}
	}
	metrics.RecommendPlaceholders.Inc()
	return catalog.Placeholder(id, set.Titles[row])
}

func (idx *Index) clampK(k int) int {
	if k <= 0 {
		k = idx.cfg.DefaultK
	}
	return min(k, idx.cfg.MaxK)
}

// MaxK is the largest neighbourhood Recommend returns.
func (idx *Index) MaxK() int {
	return idx.cfg.MaxK
}

// Preload loads the artifacts now and reports why it could not.
func (idx *Index) Preload(ctx context.Context) error {
	_, err := idx.load(ctx)
	return err
}

// Invalidate drops the loaded artifacts and memoized neighbours so the next
// call reads the directory again. It also closes the load breaker.
func (idx *Index) Invalidate() {
	idx.generation.Add(1)
	idx.current.Store(nil)
	idx.group.Forget(loadKey)
	idx.neighbours.Clear()
	idx.breaker.Store(idx.newBreaker())
	idx.logger.Info().Msg("Similarity index invalidated")
}

// Status reports the currently loaded build, if any.
func (idx *Index) Status() Status {
	st := Status{Breaker: idx.breaker.Load().State().String()}
	st.CacheHits, st.CacheMisses, st.Cached = idx.neighbours.Stats()
	if snap := idx.current.Load(); snap != nil {
		st.Loaded = true
		st.BuildID = snap.set.BuildID
		st.BuiltAt = snap.set.BuiltAt
		st.Movies = snap.set.Len()
	}
	return st
}

func (idx *Index) load(ctx context.Context) (*snapshot, error) {
	if snap := idx.current.Load(); snap != nil {
		return snap, nil
	}

	v, err, _ := idx.group.Do(loadKey, func() (any, error) {
		if snap := idx.current.Load(); snap != nil {
			return snap, nil
		}
		gen := idx.generation.Load()
		snap, err := idx.breaker.Load().Execute(func() (*snapshot, error) {
			return idx.read(ctx)
		})
		if err != nil {
			return nil, err
		}
		if idx.generation.Load() == gen {
			idx.current.Store(snap)
		}
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*snapshot), nil
}

func (idx *Index) read(ctx context.Context) (*snapshot, error) {
	start := time.Now()
	logger := logging.Enrich(ctx, idx.logger)

	set, err := artifact.Read(idx.cfg.Dir)
	if err != nil {
		metrics.RecordArtifactLoad(loadResult(err), time.Since(start), 0)
		return nil, err
	}
	if err := set.Validate(); err != nil {
		metrics.RecordArtifactLoad("invalid", time.Since(start), 0)
		return nil, fmt.Errorf("%w: %w", artifact.ErrCorrupt, err)
	}

	titles := cache.NewTitleTrie()
	for i, t := range set.Titles {
		titles.Insert(t, i)
	}

	elapsed := time.Since(start)
	metrics.RecordArtifactLoad("success", elapsed, set.Len())
	logger.Info().
		Str("build_id", set.BuildID).
		Time("built_at", set.BuiltAt).
		Int("movies", set.Len()).
		Dur("duration", elapsed).
		Msg("Similarity artifacts loaded")

	return &snapshot{set: set, titles: titles}, nil
}

func loadResult(err error) string {
	switch {
	case errors.Is(err, artifact.ErrNotFound):
		return "missing"
	case errors.Is(err, artifact.ErrBuildMismatch):
		return "mismatch"
	case errors.Is(err, artifact.ErrCorrupt):
		return "corrupt"
	default:
		return "error"
	}
}

func stateToInt(state gobreaker.State) int {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
