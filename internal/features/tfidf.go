// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package features

import (
	"math"
	"slices"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxFeatures caps the vocabulary when no explicit cap is configured.
const DefaultMaxFeatures = 5000

// SparseVector is a document vector. Indices are ascending term indexes into
// the model vocabulary.
type SparseVector struct {
	Indices []int32
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// Dot returns the dot product of two vectors.
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Tokenize lowercases doc and returns every run of two or more word
// characters (letters, digits, underscore) in order.
func Tokenize(doc string) []string {
	isWord := func(r rune) bool {
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	fields := strings.FieldsFunc(strings.ToLower(doc), func(r rune) bool { return !isWord(r) })

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Analyze tokenizes doc and drops stop words.
func Analyze(doc string) []string {
	tokens := Tokenize(doc)
	out := tokens[:0]
	for _, t := range tokens {
		if !IsStopWord(t) {
			out = append(out, t)
		}
	}
	return out
}

// Vectorizer fits a TF-IDF model: raw term counts, smoothed idf and
// L2-normalised rows.
type Vectorizer struct {
	// MaxFeatures keeps only the most frequent terms across the corpus.
	// Zero or negative means DefaultMaxFeatures.
	MaxFeatures int
}

// Model is a fitted vocabulary with per-term idf weights.
type Model struct {
	// Vocabulary is sorted; a term's position is its vector index.
	Vocabulary []string
	IDF        []float64

	index map[string]int32
}

// Size returns the vocabulary size.
func (m *Model) Size() int {
	return len(m.Vocabulary)
}

// FitTransform learns the vocabulary and idf weights from docs and returns
// one vector per document, in input order. Empty documents still count
// towards the document total used by idf.
func (v Vectorizer) FitTransform(docs []string) (*Model, []SparseVector) {
	maxFeatures := v.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	analyzed := make([][]string, len(docs))
	totals := make(map[string]int)
	df := make(map[string]int)
	for i, doc := range docs {
		terms := Analyze(doc)
		analyzed[i] = terms

		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			totals[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	vocab := make([]string, 0, len(totals))
	for t := range totals {
		vocab = append(vocab, t)
	}
	if len(vocab) > maxFeatures {
		sort.Slice(vocab, func(a, b int) bool {
			if totals[vocab[a]] != totals[vocab[b]] {
				return totals[vocab[a]] > totals[vocab[b]]
			}
			return vocab[a] < vocab[b]
		})
		vocab = vocab[:maxFeatures]
	}
	slices.Sort(vocab)

	n := float64(len(docs))
	model := &Model{
		Vocabulary: vocab,
		IDF:        make([]float64, len(vocab)),
		index:      make(map[string]int32, len(vocab)),
	}
	for i, t := range vocab {
		model.index[t] = int32(i)
		model.IDF[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	vecs := make([]SparseVector, len(docs))
	for i, terms := range analyzed {
		vecs[i] = model.vectorize(terms)
	}
	return model, vecs
}

func (m *Model) vectorize(terms []string) SparseVector {
	counts := make(map[int32]float64, len(terms))
	for _, t := range terms {
		if idx, ok := m.index[t]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	vec := SparseVector{
		Indices: make([]int32, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	slices.Sort(vec.Indices)

	var norm float64
	for _, idx := range vec.Indices {
		w := counts[idx] * m.IDF[idx]
		vec.Values = append(vec.Values, w)
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}
