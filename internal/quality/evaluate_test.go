// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package quality

import (
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/marquee/internal/artifact"
)

func square(n int, data ...float32) *artifact.Set {
	ids := make([]int64, n)
	titles := make([]string, n)
	for i := range ids {
		ids[i] = int64(i + 1)
		titles[i] = string(rune('A' + i))
	}
	return artifact.NewSet(ids, titles, n, data)
}

func TestEvaluate_Score(t *testing.T) {
	tests := []struct {
		name  string
		set   *artifact.Set
		topK  int
		wantK int
		want  float64
	}{
		{"empty", square(0), 10, 0, 0},
		{"single movie", square(1, 1), 10, 0, 0},
		{
			name: "k capped at n-1",
			set: square(3,
				1, 0.8, 0.2,
				0.8, 1, 0.4,
				0.2, 0.4, 1,
			),
			topK: 10, wantK: 2,
			// rows: (0.8+0.2)/2, (0.8+0.4)/2, (0.2+0.4)/2
			want: (0.5 + 0.6 + 0.3) / 3,
		},
		{
			name: "top one",
			set: square(3,
				1, 0.8, 0.2,
				0.8, 1, 0.4,
				0.2, 0.4, 1,
			),
			topK: 1, wantK: 1,
			want: (0.8 + 0.8 + 0.4) / 3,
		},
		{
			name: "default k",
			set: square(2,
				1, 0.5,
				0.5, 1,
			),
			topK: 0, wantK: 1,
			want: 0.5,
		},
		{
			name: "self excluded even when not maximal",
			set: square(2,
				0, 0.3,
				0.3, 0,
			),
			topK: 1, wantK: 1,
			want: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Evaluate(tt.set, tt.topK)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if report.TopK != tt.wantK {
				t.Errorf("TopK = %d, want %d", report.TopK, tt.wantK)
			}
			if math.Abs(report.AvgTopK-tt.want) > 1e-6 {
				t.Errorf("AvgTopK = %v, want %v", report.AvgTopK, tt.want)
			}
			if report.BuildID != tt.set.BuildID || report.Movies != tt.set.N {
				t.Errorf("report = %+v", report)
			}
		})
	}
}

func TestEvaluate_Invalid(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name    string
		set     *artifact.Set
		wantRow int
	}{
		{"nil set", nil, -1},
		{"not square", &artifact.Set{IDs: []int64{1, 2}, Titles: []string{"a", "b"}, N: 2, Data: []float32{1, 0, 0}}, -1},
		{"order vs titles", &artifact.Set{IDs: []int64{1}, Titles: []string{"a"}, N: 2, Data: make([]float32, 4)}, -1},
		{"ids vs titles", &artifact.Set{IDs: []int64{1}, Titles: []string{"a", "b"}, N: 2, Data: make([]float32, 4)}, -1},
		{"nan", square(2, 1, nan, 0, 1), 0},
		{"inf", square(2, 1, 0, inf, 1), 1},
		{"above one", square(2, 1, 0, 0, 1.01), 1},
		{"below minus one", square(2, 1, -1.5, 0, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.set, 10)
			if !errors.Is(err, ErrInvalidArtifact) {
				t.Fatalf("error = %v, want ErrInvalidArtifact", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not *ValidationError", err)
			}
			if verr.Row != tt.wantRow {
				t.Errorf("Row = %d, want %d", verr.Row, tt.wantRow)
			}
		})
	}
}

func TestEvaluate_ToleratesRounding(t *testing.T) {
	set := square(2, 1.0000005, 0.5, 0.5, 1)
	if _, err := Evaluate(set, 1); err != nil {
		t.Errorf("Evaluate rejected value within tolerance: %v", err)
	}
}
