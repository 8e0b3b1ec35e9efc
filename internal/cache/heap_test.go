// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"math/rand"
	"sort"
	"testing"
)

func indices(s []Scored) []int {
	out := make([]int, len(s))
	for i, e := range s {
		out[i] = e.Index
	}
	return out
}

func TestTopK(t *testing.T) {
	scores := []float64{0.1, 0.9, 0.5, 0.9, 0.3}
	all := func(i int) (float64, bool) { return scores[i], true }

	tests := []struct {
		name  string
		k     int
		score func(int) (float64, bool)
		want  []int
	}{
		{"top two ties by index", 2, all, []int{1, 3}},
		{"top three", 3, all, []int{1, 3, 2}},
		{"k larger than n", 10, all, []int{1, 3, 2, 4, 0}},
		{"exclude self", 2, func(i int) (float64, bool) { return scores[i], i != 1 }, []int{3, 2}},
		{"k zero", 0, all, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := indices(TopK(len(scores), tt.k, tt.score))
			if len(got) != len(tt.want) {
				t.Fatalf("TopK() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("TopK() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestTopK_MatchesStableSort(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	n := 500
	scores := make([]float64, n)
	for i := range scores {
		// coarse values so ties are common
		scores[i] = float64(rng.Intn(20)) / 20
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	got := TopK(n, 25, func(i int) (float64, bool) { return scores[i], true })
	for i, e := range got {
		if e.Index != order[i] {
			t.Fatalf("position %d: got index %d, want %d", i, e.Index, order[i])
		}
		if e.Score != scores[order[i]] {
			t.Errorf("position %d: score %v, want %v", i, e.Score, scores[order[i]])
		}
	}
}
