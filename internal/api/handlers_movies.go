// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/ranking"
	"github.com/tomtom215/marquee/internal/validation"
)

// feedCategory labels the default popularity feed in listing responses.
const feedCategory = "all"

// Movies lists the catalog by category, or the default feed when no
// category is given.
//
// @Summary List movies
// @Description Lists the catalog by category. Without a category the feed is ordered by popularity.
// @Tags Movies
// @Produce json
// @Param category query string false "Listing category" Enums(popular, top_rated, upcoming)
// @Param limit query int false "Page size" minimum(1) maximum(100) default(20)
// @Param offset query int false "Page offset" minimum(0) default(0)
// @Success 200 {object} models.APIResponse{data=models.MoviePage} "Movie page"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 429 {object} models.APIResponse "Rate limit exceeded"
// @Router /movies [get]
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, ok := getIntParam(r, "limit", DefaultPageLimit)
	if !ok {
		respondAPIError(w, http.StatusBadRequest, invalidParam("limit"))
		return
	}
	offset, ok := getIntParam(r, "offset", 0)
	if !ok {
		respondAPIError(w, http.StatusBadRequest, invalidParam("offset"))
		return
	}
	req := validation.MoviesRequest{
		Category: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category"))),
		Limit:    limit,
		Offset:   offset,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	var page ranking.Page
	label := feedCategory
	if req.Category == "" {
		page = h.feed.All(r.Context(), req.Limit, req.Offset)
	} else {
		cat, err := ranking.ParseCategory(req.Category)
		if err != nil {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown category", nil)
			return
		}
		page, err = h.feed.ByCategory(r.Context(), cat, req.Limit, req.Offset)
		if err != nil {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown category", err)
			return
		}
		label = string(cat)
	}

	respondSuccess(w, models.MoviePage{
		Category: label,
		Total:    page.Total,
		Limit:    req.Limit,
		Offset:   req.Offset,
		Results:  models.Annotate(page.Results, h.liked(r)),
	}, start)
}

// Movie returns one movie by id.
//
// @Summary Get movie
// @Description Returns a catalog or locally stored movie by id.
// @Tags Movies
// @Produce json
// @Param id path int true "Movie id"
// @Success 200 {object} models.APIResponse{data=models.AnnotatedMovie} "Movie"
// @Failure 400 {object} models.APIResponse "Invalid id"
// @Failure 404 {object} models.APIResponse "Movie not found"
// @Router /movies/{id} [get]
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 0 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "id must be a non-negative integer", nil)
		return
	}

	movie, found := h.movies.Get(r.Context(), id)
	if !found {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found", nil)
		return
	}

	annotated := models.Annotate([]models.Movie{movie}, h.liked(r))
	respondSuccess(w, annotated[0], start)
}

// Search runs a title search (GET ?q=) and attaches recommendations for
// the same query.
//
// @Summary Search movies
// @Description Case-insensitive title search. Local records come first, then catalog matches. Recommendations for the query are attached.
// @Tags Movies
// @Produce json
// @Param q query string false "Title query" maxlength(200)
// @Success 200 {object} models.APIResponse{data=models.SearchResult} "Search results"
// @Failure 400 {object} models.APIResponse "Invalid query"
// @Router /movies/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, validation.SearchRequest{Query: r.URL.Query().Get("q")})
}

// SearchPost is Search with the query in a JSON body: {"query": "..."}.
//
// @Summary Search movies (JSON body)
// @Description Same as GET /movies/search with the query in the request body.
// @Tags Movies
// @Accept json
// @Produce json
// @Param request body validation.SearchRequest true "Search query"
// @Success 200 {object} models.APIResponse{data=models.SearchResult} "Search results"
// @Failure 400 {object} models.APIResponse "Invalid body or query"
// @Failure 413 {object} models.APIResponse "Request body too large"
// @Router /movies/search [post]
func (h *Handler) SearchPost(w http.ResponseWriter, r *http.Request) {
	var req validation.SearchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "VALIDATION_ERROR", "Request body too large", nil)
			return
		}
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", nil)
		return
	}
	h.search(w, r, req)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, req validation.SearchRequest) {
	start := time.Now()

	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	var rec ranking.Recommender
	if h.index != nil {
		rec = h.index
	}
	movies, recommendations := h.finder.SearchWithRecommendations(r.Context(), req.Query, rec, 0)

	liked := h.liked(r)
	respondSuccess(w, models.SearchResult{
		Query:           strings.TrimSpace(req.Query),
		Movies:          models.Annotate(movies, liked),
		Recommendations: models.Annotate(recommendations, liked),
	}, start)
}
