// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

// Scored is a row position paired with its score.
type Scored struct {
	Index int
	Score float64
}

// better reports whether a ranks ahead of b: higher score first, then lower index.
func better(a, b Scored) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Index < b.Index
}

// TopK selects the k best entries among indices [0, n), skipping any index
// for which score returns ok=false. Results are ordered best first; ties on
// score keep ascending index order, matching a stable descending sort.
//
// It keeps a bounded min-heap whose root is the worst retained entry, giving
// O(n log k) time and O(k) space.
func TopK(n, k int, score func(i int) (float64, bool)) []Scored {
	if k <= 0 || n <= 0 {
		return []Scored{}
	}

	h := make([]Scored, 0, min(k, n))
	for i := 0; i < n; i++ {
		s, ok := score(i)
		if !ok {
			continue
		}
		cand := Scored{Index: i, Score: s}
		if len(h) < k {
			h = append(h, cand)
			siftUp(h, len(h)-1)
			continue
		}
		if better(cand, h[0]) {
			h[0] = cand
			siftDown(h, 0)
		}
	}

	// Pop worst-first into the tail so the slice ends up best-first.
	out := make([]Scored, len(h))
	for i := len(h) - 1; i >= 0; i-- {
		out[i] = h[0]
		last := len(h) - 1
		h[0] = h[last]
		h = h[:last]
		if len(h) > 0 {
			siftDown(h, 0)
		}
	}
	return out
}

// siftUp moves element i up while it is worse than its parent.
func siftUp(h []Scored, i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !better(h[parent], h[i]) {
			break
		}
		h[i], h[parent] = h[parent], h[i]
		i = parent
	}
}

// siftDown moves element i down while a child is worse than it.
func siftDown(h []Scored, i int) {
	n := len(h)
	for {
		worst := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && better(h[worst], h[left]) {
			worst = left
		}
		if right < n && better(h[worst], h[right]) {
			worst = right
		}
		if worst == i {
			return
		}
		h[i], h[worst] = h[worst], h[i]
		i = worst
	}
}
