// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

// Recommendations returns movies similar to the title query. An
// unresolvable title or unavailable artifacts give an empty list, not an
// error.
//
// @Summary Similar movies
// @Description Returns up to k movies most similar to the title, best first. k=0 uses the configured default and k may not exceed the configured maximum.
// @Tags Recommendations
// @Produce json
// @Param title query string true "Movie title" maxlength(200)
// @Param k query int false "Number of recommendations" minimum(0) maximum(100)
// @Success 200 {object} models.APIResponse{data=models.RecommendationResult} "Recommendations"
// @Failure 400 {object} models.APIResponse "Invalid title or k"
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	k, ok := getIntParam(r, "k", 0)
	if !ok {
		respondAPIError(w, http.StatusBadRequest, invalidParam("k"))
		return
	}
	req := validation.RecommendRequest{
		Title: strings.TrimSpace(r.URL.Query().Get("title")),
		K:     k,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	if h.index != nil && req.K > h.index.MaxK() {
		maxK := strconv.Itoa(h.index.MaxK())
		respondAPIError(w, http.StatusBadRequest, fieldError(validation.FieldError{
			Field: "k", Tag: "max", Param: maxK, Message: "k must be at most " + maxK,
		}))
		return
	}

	movies := []models.Movie{}
	if h.index != nil {
		movies = h.index.Recommend(r.Context(), req.Title, req.K)
	}

	respondSuccess(w, models.RecommendationResult{
		Title:   req.Title,
		K:       req.K,
		Results: models.Annotate(movies, h.liked(r)),
	}, start)
}
