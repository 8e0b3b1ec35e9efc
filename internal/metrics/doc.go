// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus instrumentation for Marquee.

Collectors are registered on the default registry through promauto and
exposed at /metrics by the API router:

	curl http://localhost:8080/metrics

# Available Metrics

Catalog:
  - marquee_catalog_loads_total{result}: load attempts (success, missing, error)
  - marquee_catalog_rows_total{outcome}: rows loaded, skipped or dropped as duplicates
  - marquee_catalog_movies: size of the current snapshot

Ranking:
  - marquee_search_requests_total{result}, marquee_search_duration_seconds
  - marquee_search_provider_errors_total{provider}
  - marquee_category_requests_total{category}

Similarity index:
  - marquee_recommend_requests_total{outcome}, marquee_recommend_duration_seconds
  - marquee_recommend_cache_hits_total, marquee_recommend_cache_misses_total
  - marquee_recommend_placeholders_total
  - marquee_artifact_loads_total{result}, marquee_artifact_breaker_state

Offline pipeline:
  - marquee_build_duration_seconds{stage}, marquee_builds_total{result}
  - marquee_build_rows{outcome}, marquee_build_vocabulary_terms
  - marquee_quality_avg_top_k_similarity, marquee_quality_runs_total{result}

HTTP:
  - marquee_api_requests_total{method,endpoint,status_code}
  - marquee_api_request_duration_seconds{method,endpoint}
  - marquee_api_active_requests

Use the Record* helpers rather than touching collectors directly so label
values stay consistent.
*/
package metrics
