// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

// MoviesRequest is the query of GET /api/v1/movies. An empty category
// selects the default popularity feed.
type MoviesRequest struct {
	Category string `json:"category" validate:"omitempty,oneof=popular top_rated upcoming"`
	Limit    int    `json:"limit" validate:"min=1,max=100"`
	Offset   int    `json:"offset" validate:"min=0"`
}

// SearchRequest is the query of the search endpoints.
type SearchRequest struct {
	Query string `json:"query" validate:"max=200"`
}

// RecommendRequest is the query of GET /api/v1/recommendations. K of 0
// selects the server default.
type RecommendRequest struct {
	Title string `json:"title" validate:"required,title,max=200"`
	K     int    `json:"k" validate:"min=0,max=100"`
}
