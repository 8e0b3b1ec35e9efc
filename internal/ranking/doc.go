// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package ranking orders catalog records for listings and title search.

Engine.ByCategory sorts the whole catalog by one key (popularity, vote
average or release date string) and pages through it. Searcher.Search runs
the two-tier prefix search over a local provider and the catalog provider
and merges them, local records first.

Both are deterministic for a fixed catalog and fixed inputs.
*/
package ranking
