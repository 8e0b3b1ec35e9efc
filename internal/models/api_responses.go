// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"time"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"total": 4803, "results": [...]},
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "query_time_ms": 3
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response timing and cache information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - NOT_FOUND: Resource doesn't exist
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - INTERNAL_ERROR: Unexpected failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// MoviePage is the payload of the category listing endpoint.
type MoviePage struct {
	Category string           `json:"category"`
	Total    int              `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
	Results  []AnnotatedMovie `json:"results"`
}

// SearchResult is the payload of the search endpoint.
type SearchResult struct {
	Query           string           `json:"query"`
	Movies          []AnnotatedMovie `json:"movies"`
	Recommendations []AnnotatedMovie `json:"recommendations"`
}

// RecommendationResult is the payload of the recommendations endpoint.
type RecommendationResult struct {
	Title   string           `json:"title"`
	K       int              `json:"k"`
	Results []AnnotatedMovie `json:"results"`
}

// HealthStatus is the payload of the readiness endpoint.
type HealthStatus struct {
	Status       string `json:"status"`
	CatalogSize  int    `json:"catalog_size"`
	IndexLoaded  bool   `json:"index_loaded"`
	IndexBuildID string `json:"index_build_id,omitempty"`
	IndexSize    int    `json:"index_size"`
	CacheHits    int64  `json:"neighbour_cache_hits"`
	CacheMisses  int64  `json:"neighbour_cache_misses"`
}
