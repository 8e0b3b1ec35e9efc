// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package features

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// rowBlock is the number of matrix rows handled by one goroutine.
const rowBlock = 64

type posting struct {
	doc   int32
	value float64
}

// CosineMatrix returns the n x n cosine similarity of L2-normalised vectors
// in row-major order, n = len(vecs). Each unordered pair is computed once and
// mirrored. The diagonal is 1 for non-empty vectors and 0 for empty ones.
// workers <= 0 means GOMAXPROCS.
func CosineMatrix(ctx context.Context, vecs []SparseVector, vocabSize, workers int) ([]float32, error) {
	n := len(vecs)
	out := make([]float32, n*n)
	if n == 0 {
		return out, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Inverted index; postings are in ascending doc order.
	postings := make([][]posting, vocabSize)
	for d, v := range vecs {
		for k, idx := range v.Indices {
			if int(idx) >= vocabSize || idx < 0 {
				return nil, fmt.Errorf("vector %d: term index %d outside vocabulary of %d", d, idx, vocabSize)
			}
			postings[idx] = append(postings[idx], posting{doc: int32(d), value: v.Values[k]})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < n; start += rowBlock {
		end := min(start+rowBlock, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			acc := make([]float64, n)
			touched := make([]int32, 0, 64)
			for i := start; i < end; i++ {
				if vecs[i].Len() > 0 {
					out[i*n+i] = 1
				}
				for k, idx := range vecs[i].Indices {
					w := vecs[i].Values[k]
					list := postings[idx]
					p := sort.Search(len(list), func(x int) bool { return int(list[x].doc) > i })
					for _, e := range list[p:] {
						if acc[e.doc] == 0 {
							touched = append(touched, e.doc)
						}
						acc[e.doc] += w * e.value
					}
				}
				for _, j := range touched {
					s := float32(clamp(acc[j]))
					out[i*n+int(j)] = s
					out[int(j)*n+i] = s
					acc[j] = 0
				}
				touched = touched[:0]
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
