// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package ranking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// Category names a catalog ordering.
type Category string

const (
	// Popular orders by popularity, highest first.
	Popular Category = "popular"

	// TopRated orders by vote average, highest first.
	TopRated Category = "top_rated"

	// Upcoming orders by release date string, latest first. Empty dates sort last.
	Upcoming Category = "upcoming"
)

// Categories lists every supported category.
var Categories = []Category{Popular, TopRated, Upcoming}

// ErrUnknownCategory is returned for category names outside Categories.
var ErrUnknownCategory = errors.New("unknown category")

// ParseCategory converts a request value into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// CatalogSource supplies a reorderable copy of the catalog.
type CatalogSource interface {
	All(ctx context.Context) []models.Movie
}

// Page is one slice of an ordered listing.
type Page struct {
	Results []models.Movie
	Total   int
}

// Engine orders and paginates the catalog.
type Engine struct {
	catalog CatalogSource
}

// NewEngine creates an Engine reading from catalog.
func NewEngine(catalog CatalogSource) *Engine {
	return &Engine{catalog: catalog}
}

// ByCategory returns the slice [offset, offset+limit) of the catalog sorted
// by cat, descending and stable. Total is the full catalog size. Bounds are
// clamped: an offset past the end yields an empty page, and a non-positive
// limit yields no results.
func (e *Engine) ByCategory(ctx context.Context, cat Category, limit, offset int) (Page, error) {
	less, err := lessFor(cat)
	if err != nil {
		return Page{}, err
	}
	metrics.RecordCategoryRequest(string(cat))

	movies := e.catalog.All(ctx)
	sort.SliceStable(movies, func(i, j int) bool { return less(movies[i], movies[j]) })
	return paginate(movies, limit, offset), nil
}

// All returns the default feed: the whole catalog ordered by popularity.
func (e *Engine) All(ctx context.Context, limit, offset int) Page {
	page, _ := e.ByCategory(ctx, Popular, limit, offset)
	return page
}

// lessFor returns a "sorts before" function that puts greater keys first.
func lessFor(cat Category) (func(a, b models.Movie) bool, error) {
	switch cat {
	case Popular:
		return func(a, b models.Movie) bool { return a.Popularity > b.Popularity }, nil
	case TopRated:
		return func(a, b models.Movie) bool { return a.VoteAverage > b.VoteAverage }, nil
	case Upcoming:
		return func(a, b models.Movie) bool { return a.ReleaseDate > b.ReleaseDate }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
}

func paginate(movies []models.Movie, limit, offset int) Page {
	total := len(movies)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || offset >= total {
		return Page{Results: []models.Movie{}, Total: total}
	}
	end := total
	if limit < total-offset {
		end = offset + limit
	}
	return Page{Results: movies[offset:end], Total: total}
}
