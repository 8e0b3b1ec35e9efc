// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package quality validates similarity artifacts and scores them.
//
// Evaluate rejects a structurally unusable set with *ValidationError
// (errors.Is(err, ErrInvalidArtifact) holds). For a usable set it reports
// the average, over all rows, of the mean of each row's top-k similarities
// to other movies. Checker.Run reads the artifacts back from disk before
// evaluating, and History keeps past reports in DuckDB.
package quality
