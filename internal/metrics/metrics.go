// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog Metrics
	CatalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_catalog_load_duration_seconds",
			Help:    "Duration of catalog dataset loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_catalog_loads_total",
			Help: "Total number of catalog load attempts",
		},
		[]string{"result"}, // "success", "missing", "error"
	)

	CatalogRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_catalog_rows_total",
			Help: "Catalog rows processed, by outcome",
		},
		[]string{"outcome"}, // "loaded", "skipped", "duplicate"
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_catalog_movies",
			Help: "Number of movies in the current catalog snapshot",
		},
	)

	// Ranking Metrics
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_search_requests_total",
			Help: "Total number of title searches",
		},
		[]string{"result"}, // "hit", "empty", "blank_query"
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_search_duration_seconds",
			Help:    "Duration of title searches in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	SearchProviderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_search_provider_errors_total",
			Help: "Prefix search provider failures treated as no matches",
		},
		[]string{"provider"},
	)

	CategoryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_category_requests_total",
			Help: "Total number of category listings",
		},
		[]string{"category"},
	)

	// Similarity Index Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_recommend_requests_total",
			Help: "Total number of recommendation requests, by outcome",
		},
		[]string{"outcome"}, // "served", "unresolved", "unavailable", "blank_query"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_recommend_cache_hits_total",
			Help: "Neighbour lists served from the in-memory cache",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_recommend_cache_misses_total",
			Help: "Neighbour lists computed from the similarity matrix",
		},
	)

	RecommendPlaceholders = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_recommend_placeholders_total",
			Help: "Neighbours returned as placeholders because the catalog lacked the id",
		},
	)

	// Artifact Metrics
	ArtifactLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_artifact_loads_total",
			Help: "Similarity artifact load attempts, by result",
		},
		[]string{"result"}, // "success", "missing", "corrupt", "mismatch", "rejected"
	)

	ArtifactLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_artifact_load_duration_seconds",
			Help:    "Duration of similarity artifact loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ArtifactMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_artifact_movies",
			Help: "Number of rows in the loaded similarity artifact",
		},
	)

	ArtifactBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_artifact_breaker_state",
			Help: "Artifact loader circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// Feature Builder Metrics
	BuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_build_duration_seconds",
			Help:    "Duration of feature build stages in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"stage"}, // "read", "vectorize", "similarity", "write", "total"
	)

	BuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_builds_total",
			Help: "Total number of feature builds, by result",
		},
		[]string{"result"},
	)

	BuildRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_build_rows",
			Help: "Rows in the most recent feature build, by outcome",
		},
		[]string{"outcome"}, // "indexed", "skipped"
	)

	BuildVocabulary = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_build_vocabulary_terms",
			Help: "Vocabulary size of the most recent TF-IDF model",
		},
	)

	// Quality Metrics
	QualityAvgTopK = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_quality_avg_top_k_similarity",
			Help: "Average top-k non-self similarity of the last evaluated artifact",
		},
	)

	QualityRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_quality_runs_total",
			Help: "Total number of quality checks, by result",
		},
		[]string{"result"}, // "passed", "invalid", "error"
	)

	QualityLastRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_quality_last_run_timestamp_seconds",
			Help: "Unix time of the last completed quality check",
		},
	)

	// Local Store Metrics
	LocalStoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_localstore_operations_total",
			Help: "Local record store operations",
		},
		[]string{"operation", "result"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordCatalogLoad records one catalog load attempt.
func RecordCatalogLoad(result string, duration time.Duration, loaded, skipped, duplicates int) {
	CatalogLoadsTotal.WithLabelValues(result).Inc()
	CatalogLoadDuration.Observe(duration.Seconds())
	if result != "success" {
		return
	}
	CatalogRows.WithLabelValues("loaded").Add(float64(loaded))
	CatalogRows.WithLabelValues("skipped").Add(float64(skipped))
	CatalogRows.WithLabelValues("duplicate").Add(float64(duplicates))
	CatalogSize.Set(float64(loaded))
}

// RecordSearch records a title search and its outcome.
func RecordSearch(result string, duration time.Duration) {
	SearchRequests.WithLabelValues(result).Inc()
	SearchDuration.Observe(duration.Seconds())
}

// RecordSearchProviderError records a prefix provider failure.
func RecordSearchProviderError(provider string) {
	SearchProviderErrors.WithLabelValues(provider).Inc()
}

// RecordCategoryRequest records a category listing.
func RecordCategoryRequest(category string) {
	CategoryRequests.WithLabelValues(category).Inc()
}

// RecordRecommend records a recommendation request and its outcome.
func RecordRecommend(outcome string, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordRecommendCache records a neighbour cache lookup.
func RecordRecommendCache(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
		return
	}
	RecommendCacheMisses.Inc()
}

// RecordArtifactLoad records a similarity artifact load attempt.
func RecordArtifactLoad(result string, duration time.Duration, movies int) {
	ArtifactLoads.WithLabelValues(result).Inc()
	ArtifactLoadDuration.Observe(duration.Seconds())
	if result == "success" {
		ArtifactMovies.Set(float64(movies))
	}
}

// SetArtifactBreakerState publishes the artifact breaker state as a number.
func SetArtifactBreakerState(state int) {
	ArtifactBreakerState.Set(float64(state))
}

// RecordBuildStage records the duration of one feature build stage.
func RecordBuildStage(stage string, duration time.Duration) {
	BuildDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordBuild records a completed feature build.
func RecordBuild(err error, indexed, skipped, vocabulary int) {
	if err != nil {
		BuildsTotal.WithLabelValues("error").Inc()
		return
	}
	BuildsTotal.WithLabelValues("success").Inc()
	BuildRows.WithLabelValues("indexed").Set(float64(indexed))
	BuildRows.WithLabelValues("skipped").Set(float64(skipped))
	BuildVocabulary.Set(float64(vocabulary))
}

// RecordQualityRun records a quality check; score is only published on "passed".
func RecordQualityRun(result string, score float64, at time.Time) {
	QualityRuns.WithLabelValues(result).Inc()
	QualityLastRun.Set(float64(at.Unix()))
	if result == "passed" {
		QualityAvgTopK.Set(score)
	}
}

// RecordLocalStoreOp records a local store operation.
func RecordLocalStoreOp(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	LocalStoreOperations.WithLabelValues(operation, result).Inc()
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
