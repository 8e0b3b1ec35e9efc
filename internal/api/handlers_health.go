// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/models"
)

// Health status values.
const (
	StatusReady       = "ready"
	StatusDegraded    = "degraded"
	StatusUnavailable = "unavailable"
)

// HealthLive reports that the process is serving requests.
//
// @Summary Liveness check
// @Description Returns 200 while the process is serving requests, regardless of catalog or index state.
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse "Process is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady reports catalog and similarity index state. An empty catalog
// is unavailable (503); a catalog without loaded artifacts is degraded,
// since listings and search still work.
//
// @Summary Readiness check
// @Description Reports catalog size, similarity index build and neighbour cache counters. Returns 503 when the catalog is empty.
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Ready or degraded"
// @Failure 503 {object} models.APIResponse{data=models.HealthStatus} "Catalog unavailable"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	health := models.HealthStatus{Status: StatusReady}
	if h.catalog != nil {
		health.CatalogSize = h.catalog.Len(r.Context())
	}
	if h.index != nil {
		st := h.index.Status()
		health.IndexLoaded = st.Loaded
		health.IndexBuildID = st.BuildID
		health.IndexSize = st.Movies
		health.CacheHits = st.CacheHits
		health.CacheMisses = st.CacheMisses
	}

	status := http.StatusOK
	switch {
	case health.CatalogSize == 0:
		health.Status = StatusUnavailable
		status = http.StatusServiceUnavailable
	case !health.IndexLoaded:
		health.Status = StatusDegraded
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
