// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package quality

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/artifact"
	"github.com/tomtom215/marquee/internal/cache"
)

const (
	// DefaultTopK is the neighbourhood size scored when none is configured.
	DefaultTopK = 10

	// Tolerance is how far a similarity may stray outside [-1, 1] from
	// float rounding before the matrix is rejected.
	Tolerance = artifact.Tolerance
)

// ErrInvalidArtifact marks an artifact set that must not be served.
var ErrInvalidArtifact = errors.New("invalid similarity artifact")

// ValidationError describes why an artifact set was rejected. Row and Col
// locate the offending cell when the problem is a value; both are -1 for
// shape problems.
type ValidationError struct {
	Reason string
	Row    int
	Col    int
	Err    error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%v: %s", ErrInvalidArtifact, e.Reason)
	if e.Row >= 0 {
		msg += fmt.Sprintf(" at (%d,%d)", e.Row, e.Col)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidArtifact}
	}
	return []error{ErrInvalidArtifact, e.Err}
}

func shapeError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...), Row: -1, Col: -1}
}

// Report is the outcome of one quality check.
type Report struct {
	RunID   string    `json:"run_id"`
	BuildID string    `json:"build_id"`
	BuiltAt time.Time `json:"built_at"`

	Movies int `json:"movies"`
	// TopK is the neighbourhood size actually scored, min(requested, Movies-1).
	TopK int `json:"top_k"`
	// AvgTopK is the mean, over rows, of each row's top-k non-self similarity.
	AvgTopK float64 `json:"avg_top_k"`

	EvaluatedAt time.Time     `json:"evaluated_at"`
	Duration    time.Duration `json:"duration_ns"`
}

// Evaluate checks the structure of set and scores it. topK <= 0 means
// DefaultTopK. Any structural problem is returned as *ValidationError.
func Evaluate(set *artifact.Set, topK int) (*Report, error) {
	start := time.Now()
	if set == nil {
		return nil, shapeError("no artifact set")
	}
	if err := validate(set); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	n := set.N
	k := min(topK, n-1)
	report := &Report{
		BuildID: set.BuildID,
		BuiltAt: set.BuiltAt,
		Movies:  n,
		TopK:    max(k, 0),
	}

	if k > 0 {
		var total float64
		for i := 0; i < n; i++ {
			row := set.Row(i)
			best := cache.TopK(n, k, func(j int) (float64, bool) {
				if j == i {
					return 0, false
				}
				return float64(row[j]), true
			})
			var sum float64
			for _, s := range best {
				sum += s.Score
			}
			total += sum / float64(len(best))
		}
		report.AvgTopK = total / float64(n)
	}

	report.EvaluatedAt = time.Now().UTC()
	report.Duration = time.Since(start)
	return report, nil
}

func validate(set *artifact.Set) error {
	err := set.Validate()
	if err == nil {
		return nil
	}
	var verr *artifact.ValueError
	if errors.As(err, &verr) {
		return &ValidationError{Reason: verr.Reason, Row: verr.Row, Col: verr.Col}
	}
	return shapeError("%v", err)
}
