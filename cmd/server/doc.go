// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee serves a movie catalog read from a TMDB-style CSV dataset: category
listings, title search with local records first, and content-based
recommendations from precomputed TF-IDF cosine similarity artifacts.

# Application Architecture

	RootSupervisor ("marquee")
	├── PipelineSupervisor ("pipeline-layer")
	│   └── RebuildService (REBUILD_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Startup order:

 1. Configuration (koanf: defaults, config.yaml, environment)
 2. Logging (zerolog)
 3. Catalog preload from DATASET_PATH (a missing dataset is logged, not fatal)
 4. Local store (BadgerDB) for user-added and materialized records
 5. Similarity index preload from ARTIFACT_DIR (missing artifacts are logged)
 6. Quality history (DuckDB) when rebuilds are enabled
 7. HTTP API and supervisor tree

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for HTTP_SHUTDOWN_TIMEOUT, then the local store and quality
history are closed.

# Example Usage

	export DATASET_PATH=data/tmdb_5000_movies.csv
	export ARTIFACT_DIR=data/models
	export REBUILD_ENABLED=true
	./marquee
*/
package main
