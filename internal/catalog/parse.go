// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/tomtom215/marquee/internal/dataset"
	"github.com/tomtom215/marquee/internal/models"
)

// Columns the catalog reads from the dataset.
const (
	ColID          = "id"
	ColTitle       = "title"
	ColOverview    = "overview"
	ColGenres      = "genres"
	ColReleaseDate = "release_date"
	ColVoteAverage = "vote_average"
	ColPopularity  = "popularity"
	ColRuntime     = "runtime"
)

// RequiredColumns must be present in the dataset header for a load to start.
var RequiredColumns = []string{ColID, ColTitle, ColGenres, ColVoteAverage, ColPopularity}

// MaxGenres is the number of genre names kept per movie.
const MaxGenres = 3

const (
	posterBase   = "https://placehold.co/500x750/1a1a2e/FFF?text="
	backdropBase = "https://placehold.co/1920x1080/1a1a2e/FFF?text="
)

// ErrInvalidRow wraps every row-level parse failure.
var ErrInvalidRow = errors.New("invalid catalog row")

// RowError describes why a single row was rejected.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: column %q: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() []error {
	return []error{ErrInvalidRow, e.Err}
}

// ParseRow converts one dataset row into a catalog Movie.
//
// Required fields are id, title, genres, vote_average and popularity; a
// missing or malformed required field rejects the whole row. Optional fields
// fall back to defaults: overview to the placeholder text, release_date to
// "" and runtime to 0.
func ParseRow(row dataset.Row) (models.Movie, error) {
	fail := func(col string, err error) (models.Movie, error) {
		return models.Movie{}, &RowError{Line: row.Line(), Column: col, Err: err}
	}

	rawID, ok := row.Get(ColID)
	if !ok {
		return fail(ColID, errors.New("missing"))
	}
	id, err := dataset.ParseInt(rawID)
	if err != nil {
		return fail(ColID, err)
	}

	title, ok := row.Get(ColTitle)
	if !ok {
		return fail(ColTitle, errors.New("missing"))
	}

	rawGenres, ok := row.Get(ColGenres)
	if !ok {
		return fail(ColGenres, errors.New("missing"))
	}
	genres, err := dataset.ParseNameList(rawGenres)
	if err != nil {
		return fail(ColGenres, err)
	}
	if len(genres) > MaxGenres {
		genres = genres[:MaxGenres]
	}

	voteAverage, err := requiredFloat(row, ColVoteAverage)
	if err != nil {
		return fail(ColVoteAverage, err)
	}
	popularity, err := requiredFloat(row, ColPopularity)
	if err != nil {
		return fail(ColPopularity, err)
	}

	runtime := 0
	if raw, ok := row.Get(ColRuntime); ok {
		runtime, err = dataset.ParseInt(raw)
		if err != nil {
			return fail(ColRuntime, err)
		}
		if runtime < 0 {
			return fail(ColRuntime, fmt.Errorf("negative runtime %d", runtime))
		}
	}

	overview, ok := row.Get(ColOverview)
	if !ok {
		overview = models.PlaceholderOverview
	}
	releaseDate, _ := row.Get(ColReleaseDate)

	return models.Movie{
		ID:           id,
		Title:        title,
		Overview:     overview,
		PosterPath:   PosterURL(title),
		BackdropPath: BackdropURL(title),
		ReleaseDate:  releaseDate,
		VoteAverage:  voteAverage,
		Popularity:   popularity,
		Genres:       genres,
		Runtime:      runtime,
		LikeCount:    0,
		Source:       models.SourceCatalog,
	}, nil
}

// PosterURL returns the deterministic placeholder poster for title.
func PosterURL(title string) string {
	return posterBase + url.QueryEscape(title)
}

// BackdropURL returns the deterministic placeholder backdrop for title.
func BackdropURL(title string) string {
	return backdropBase + url.QueryEscape(title)
}

// Placeholder returns the record used when a movie id is known to the
// similarity artifact but absent from the catalog.
func Placeholder(id int, title string) models.Movie {
	return models.Movie{
		ID:           id,
		Title:        title,
		Overview:     models.PlaceholderOverview,
		PosterPath:   posterBase + "No+Image",
		BackdropPath: backdropBase + "No+Image",
		Genres:       []string{},
		Source:       models.SourceCatalog,
	}
}

func requiredFloat(row dataset.Row, col string) (float64, error) {
	raw, ok := row.Get(col)
	if !ok {
		return 0, errors.New("missing")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", raw)
	}
	return v, nil
}
