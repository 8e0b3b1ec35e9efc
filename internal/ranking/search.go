// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package ranking

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// DefaultCatalogLimit caps catalog-tier matches before merging.
const DefaultCatalogLimit = 50

// PrefixSearcher finds records whose lowercased title starts with a query.
type PrefixSearcher interface {
	PrefixSearch(ctx context.Context, query string) ([]models.Movie, error)
}

// Recommender returns movies similar to a title.
type Recommender interface {
	Recommend(ctx context.Context, title string, k int) []models.Movie
}

// Searcher runs the two-tier title search: local records first, then
// catalog records, deduplicated by id.
type Searcher struct {
	local        PrefixSearcher
	catalog      PrefixSearcher
	catalogLimit int
	logger       zerolog.Logger
}

// NewSearcher creates a Searcher. local may be nil when no local store is
// configured. A non-positive catalogLimit uses DefaultCatalogLimit.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSearcher(local, catalog PrefixSearcher, catalogLimit int, logger zerolog.Logger) *Searcher {
	if catalogLimit <= 0 {
		catalogLimit = DefaultCatalogLimit
	}
	return &Searcher{
		local:        local,
		catalog:      catalog,
		catalogLimit: catalogLimit,
		logger:       logger.With().Str("component", "search").Logger(),
	}
}

// Search returns title prefix matches for query.
//
// Each tier is ordered exact matches first, then shorter titles, keeping
// provider order among equals. The catalog tier is capped before the merge.
// A failing provider contributes nothing. A blank query returns nothing.
func (s *Searcher) Search(ctx context.Context, query string) []models.Movie {
	start := time.Now()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		metrics.RecordSearch("blank_query", time.Since(start))
		return []models.Movie{}
	}

	local := rankMatches(s.fetch(ctx, "local", s.local, q), q)
	catalog := rankMatches(s.fetch(ctx, "catalog", s.catalog, q), q)
	if len(catalog) > s.catalogLimit {
		catalog = catalog[:s.catalogLimit]
	}

	merged := mergeByID(local, catalog)

	result := "hit"
	if len(merged) == 0 {
		result = "empty"
	}
	metrics.RecordSearch(result, time.Since(start))
	return merged
}

// SearchWithRecommendations runs Search and, independently, asks rec for
// up to k titles similar to query.
func (s *Searcher) SearchWithRecommendations(ctx context.Context, query string, rec Recommender, k int) (movies, recommendations []models.Movie) {
	movies = s.Search(ctx, query)
	recommendations = []models.Movie{}
	if rec != nil && strings.TrimSpace(query) != "" {
		recommendations = rec.Recommend(ctx, query, k)
	}
	return movies, recommendations
}

func (s *Searcher) fetch(ctx context.Context, name string, p PrefixSearcher, q string) []models.Movie {
	if p == nil {
		return nil
	}
	matches, err := p.PrefixSearch(ctx, q)
	if err != nil {
		metrics.RecordSearchProviderError(name)
		s.logger.Warn().Err(err).Str("provider", name).Str("query", q).Msg("Prefix provider failed, continuing without it")
		return nil
	}
	return matches
}

// rankMatches keeps titles that really start with q and orders them by
// (title != q, title length), stable.
func rankMatches(matches []models.Movie, q string) []models.Movie {
	type keyed struct {
		m       models.Movie
		inexact bool
		length  int
	}

	ranked := make([]keyed, 0, len(matches))
	for _, m := range matches {
		title := strings.ToLower(strings.TrimSpace(m.Title))
		if !strings.HasPrefix(title, q) {
			continue
		}
		ranked = append(ranked, keyed{m: m, inexact: title != q, length: utf8.RuneCountInString(strings.TrimSpace(m.Title))})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].inexact != ranked[j].inexact {
			return !ranked[i].inexact
		}
		return ranked[i].length < ranked[j].length
	})

	out := make([]models.Movie, len(ranked))
	for i, k := range ranked {
		out[i] = k.m
	}
	return out
}

func mergeByID(tiers ...[]models.Movie) []models.Movie {
	seen := make(map[int]struct{})
	out := []models.Movie{}
	for _, tier := range tiers {
		for _, m := range tier {
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}
