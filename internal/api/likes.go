// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/tomtom215/marquee/internal/models"
)

// LikesResolver supplies the set of movie ids the caller has liked. Like
// state is owned outside this service; the API only merges it into results.
type LikesResolver interface {
	Liked(r *http.Request) (models.LikedSet, error)
}

// LikesFunc adapts a function to LikesResolver.
type LikesFunc func(r *http.Request) (models.LikedSet, error)

// Liked calls f(r).
func (f LikesFunc) Liked(r *http.Request) (models.LikedSet, error) {
	return f(r)
}

// NoLikes resolves every caller to an empty set.
var NoLikes LikesResolver = LikesFunc(func(*http.Request) (models.LikedSet, error) {
	return nil, nil
})
