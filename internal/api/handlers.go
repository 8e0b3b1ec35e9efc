// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/ranking"
	"github.com/tomtom215/marquee/internal/similarity"
)

// DefaultPageLimit is the page size used when a listing omits limit.
const DefaultPageLimit = 20

// Feed orders and paginates the catalog.
type Feed interface {
	ByCategory(ctx context.Context, cat ranking.Category, limit, offset int) (ranking.Page, error)
	All(ctx context.Context, limit, offset int) ranking.Page
}

// Finder runs title searches combined with recommendations.
type Finder interface {
	SearchWithRecommendations(ctx context.Context, query string, rec ranking.Recommender, k int) (movies, recommendations []models.Movie)
}

// MovieGetter resolves a single movie id.
type MovieGetter interface {
	Get(ctx context.Context, id int) (models.Movie, bool)
}

// RecommendIndex serves similar-title recommendations and reports what it
// has loaded.
type RecommendIndex interface {
	ranking.Recommender
	Status() similarity.Status
	MaxK() int
}

// CatalogSizer reports the number of catalog records.
type CatalogSizer interface {
	Len(ctx context.Context) int
}

// Dependencies are the core components served over HTTP.
type Dependencies struct {
	Feed    Feed
	Finder  Finder
	Movies  MovieGetter
	Index   RecommendIndex
	Catalog CatalogSizer

	// Likes supplies the caller's liked ids. Nil means nobody likes anything.
	Likes LikesResolver
}

// Handler serves the read API over the catalog and similarity index.
type Handler struct {
	feed    Feed
	finder  Finder
	movies  MovieGetter
	index   RecommendIndex
	catalog CatalogSizer
	likes   LikesResolver
	logger  zerolog.Logger
}

// NewHandler creates a handler.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(deps Dependencies, logger zerolog.Logger) *Handler {
	likes := deps.Likes
	if likes == nil {
		likes = NoLikes
	}
	return &Handler{
		feed:    deps.Feed,
		finder:  deps.Finder,
		movies:  deps.Movies,
		index:   deps.Index,
		catalog: deps.Catalog,
		likes:   likes,
		logger:  logger.With().Str("component", "api").Logger(),
	}
}

// liked resolves the caller's liked ids, treating resolver failures as an
// empty set.
func (h *Handler) liked(r *http.Request) models.LikedSet {
	set, err := h.likes.Liked(r)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Liked ids unavailable, serving without like state")
		return nil
	}
	return set
}
