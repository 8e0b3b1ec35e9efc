// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package similarity serves content-based recommendations from the artifacts
written by the feature builder.

The artifact pair is read lazily on the first request. Concurrent first
callers share one read through a singleflight group, and the result is
published with an atomic pointer so readers never observe a partial load.
Failed loads are not memoized; repeated failures open a circuit breaker so
a missing artifact directory is not re-read on every request.

A query resolves to the first title equal to it (case-insensitive), else the
first title starting with it. The k highest-scoring other rows of that
title's matrix row are returned, hydrated from the catalog or replaced by a
placeholder record when the catalog does not know the id.

Invalidate drops the loaded build so the next request picks up new
artifacts. The rebuild service calls it after a passing quality check.
*/
package similarity
