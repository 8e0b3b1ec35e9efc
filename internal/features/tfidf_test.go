// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package features

import (
	"math"
	"slices"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"a bb c_d 9 42", []string{"bb", "c_d", "42"}},
		{"Space-War!", []string{"space", "war"}},
		{"x y z", []string{}},
	}

	for _, tt := range tests {
		got := Tokenize(tt.in)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAnalyze_DropsStopWords(t *testing.T) {
	got := Analyze("the hero of the story is a detective")
	want := []string{"hero", "story", "detective"}
	if !slices.Equal(got, want) {
		t.Errorf("Analyze = %q, want %q", got, want)
	}
	if len(englishStopWords) != 318 {
		t.Errorf("stop list has %d words, want 318", len(englishStopWords))
	}
}

func TestFitTransform_Weights(t *testing.T) {
	docs := []string{"apple banana", "apple cherry", ""}
	model, vecs := Vectorizer{}.FitTransform(docs)

	if want := []string{"apple", "banana", "cherry"}; !slices.Equal(model.Vocabulary, want) {
		t.Fatalf("Vocabulary = %q, want %q", model.Vocabulary, want)
	}

	wantIDF := []float64{math.Log(4.0/3.0) + 1, math.Log(2) + 1, math.Log(2) + 1}
	for i, w := range wantIDF {
		if math.Abs(model.IDF[i]-w) > 1e-12 {
			t.Errorf("IDF[%d] = %v, want %v", i, model.IDF[i], w)
		}
	}

	if len(vecs) != 3 {
		t.Fatalf("got %d vectors, want 3", len(vecs))
	}
	if vecs[2].Len() != 0 {
		t.Errorf("empty document vector = %+v, want empty", vecs[2])
	}
	for i, v := range vecs[:2] {
		if !slices.IsSorted(v.Indices) {
			t.Errorf("vector %d indices not sorted: %v", i, v.Indices)
		}
		if norm := math.Sqrt(v.Dot(v)); math.Abs(norm-1) > 1e-12 {
			t.Errorf("vector %d norm = %v, want 1", i, norm)
		}
	}

	// Shared term only: apple weight product.
	a := wantIDF[0] / math.Hypot(wantIDF[0], wantIDF[1])
	if got := vecs[0].Dot(vecs[1]); math.Abs(got-a*a) > 1e-12 {
		t.Errorf("dot = %v, want %v", got, a*a)
	}
}

func TestFitTransform_MaxFeatures(t *testing.T) {
	docs := []string{"alpha beta beta gamma", "gamma delta"}
	model, vecs := Vectorizer{MaxFeatures: 3}.FitTransform(docs)

	// beta and gamma appear twice; alpha wins the tie with delta.
	if want := []string{"alpha", "beta", "gamma"}; !slices.Equal(model.Vocabulary, want) {
		t.Fatalf("Vocabulary = %q, want %q", model.Vocabulary, want)
	}
	if vecs[1].Len() != 1 {
		t.Errorf("second vector has %d terms, want 1 (delta dropped)", vecs[1].Len())
	}
}

func TestVectorize_IgnoresUnknownTerms(t *testing.T) {
	model, _ := Vectorizer{}.FitTransform([]string{"ocean pirates", "ocean storm"})
	v := model.vectorize(Analyze("pirates zeppelin"))
	if v.Len() != 1 || model.Vocabulary[v.Indices[0]] != "pirates" {
		t.Errorf("vectorize = %+v, want only pirates", v)
	}
}

func TestFitTransform_Deterministic(t *testing.T) {
	docs := []string{"space war marine", "space opera", "war drama marine", "romance"}
	m1, v1 := Vectorizer{MaxFeatures: 4}.FitTransform(docs)
	m2, v2 := Vectorizer{MaxFeatures: 4}.FitTransform(docs)

	if !slices.Equal(m1.Vocabulary, m2.Vocabulary) {
		t.Fatalf("vocabularies differ: %q vs %q", m1.Vocabulary, m2.Vocabulary)
	}
	for i := range v1 {
		if !slices.Equal(v1[i].Indices, v2[i].Indices) || !slices.Equal(v1[i].Values, v2[i].Values) {
			t.Errorf("vector %d differs between runs", i)
		}
	}
}
