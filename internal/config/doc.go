// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config loads Marquee configuration.

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, else config.yaml, config.yml,
    /etc/marquee/config.yaml or /etc/marquee/config.yml
 3. Environment variables

# Environment Variables

Data:
  - DATASET_PATH: movie CSV (default: data/tmdb_5000_movies.csv)
  - ARTIFACT_DIR: similarity artifact directory (default: data/models)
  - LOCALSTORE_PATH, LOCALSTORE_IN_MEMORY, LOCALSTORE_SYNC_WRITES

Model:
  - TFIDF_MAX_FEATURES (default: 5000), BUILD_WORKERS (default: GOMAXPROCS)
  - RECOMMEND_DEFAULT_K (10), RECOMMEND_MAX_K (50), RECOMMEND_CACHE_SIZE (1024)
  - ARTIFACT_BREAKER_FAILURES (3), ARTIFACT_BREAKER_TIMEOUT (30s)
  - SEARCH_CATALOG_LIMIT (50)
  - QUALITY_TOP_K (10), QUALITY_HISTORY_PATH (data/quality.duckdb)
  - REBUILD_ENABLED (false), REBUILD_INTERVAL (24h), REBUILD_RUN_ON_START

HTTP:
  - HTTP_HOST (0.0.0.0), HTTP_PORT (8000), HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - CORS_ORIGINS: comma-separated (default: *)
  - RATE_LIMIT_REQS (100), RATE_LIMIT_WINDOW (1m), DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL (info), LOG_FORMAT (json|console), LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config
