// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

// Source identifies where a movie record came from.
type Source string

const (
	// SourceCatalog marks records parsed from the flat catalog dataset.
	SourceCatalog Source = "catalog"

	// SourceUserAdded marks records held in the local store, either added
	// directly or materialized from the catalog.
	SourceUserAdded Source = "user_added"
)

// PlaceholderOverview is used when a record has no overview text.
const PlaceholderOverview = "No overview available."

// Movie is a single catalog or locally stored movie record.
//
// A Movie is treated as immutable once it is part of a catalog snapshot;
// callers that need to change a record (for example LikeCount) do so through
// the local store, which owns its own copies.
type Movie struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Overview     string   `json:"overview"`
	PosterPath   string   `json:"poster_path"`
	BackdropPath string   `json:"backdrop_path"`
	ReleaseDate  string   `json:"release_date"`
	VoteAverage  float64  `json:"vote_average"`
	Popularity   float64  `json:"popularity"`
	Genres       []string `json:"genres"`
	Runtime      int      `json:"runtime"`
	LikeCount    int      `json:"like_count"`
	Source       Source   `json:"source"`
}

// Clone returns a copy of m that shares no slices with it.
func (m Movie) Clone() Movie {
	c := m
	if m.Genres != nil {
		c.Genres = append([]string(nil), m.Genres...)
	}
	return c
}

// LikedSet is the caller-supplied set of movie ids a user has liked.
type LikedSet map[int]struct{}

// NewLikedSet builds a LikedSet from a list of ids.
func NewLikedSet(ids ...int) LikedSet {
	s := make(LikedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set. A nil set contains nothing.
func (s LikedSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// AnnotatedMovie is a Movie decorated with the caller's like state.
type AnnotatedMovie struct {
	Movie
	IsLiked bool `json:"is_liked"`
}

// Annotate marks every movie in movies with whether it is in liked.
// The result preserves input order; an empty input yields an empty, non-nil slice.
func Annotate(movies []Movie, liked LikedSet) []AnnotatedMovie {
	out := make([]AnnotatedMovie, len(movies))
	for i, m := range movies {
		out[i] = AnnotatedMovie{Movie: m, IsLiked: liked.Contains(m.ID)}
	}
	return out
}
