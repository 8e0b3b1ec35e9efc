// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package cache provides the in-memory data structures behind catalog lookups
and recommendation serving.

# Components

  - LRU: generic thread-safe least-recently-used cache with optional TTL,
    used to memoize resolved neighbour lists
  - TitleTrie: case-insensitive prefix tree over titles that returns row
    positions in ascending order, used for exact-then-prefix title resolution
    and prefix search
  - TopK: bounded heap selection of the k best scored rows with stable
    tie-breaking on row order

# Usage Example

	trie := cache.NewTitleTrie()
	for i, title := range titles {
	    trie.Insert(title, i)
	}
	row, ok := trie.First("avatar")

	top := cache.TopK(n, 10, func(j int) (float64, bool) {
	    return sim[row*n+j], j != row
	})

All types are safe for concurrent use; TopK is a pure function.
*/
package cache
