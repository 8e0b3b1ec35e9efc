// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package quality

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestHistory_RecordRecent(t *testing.T) {
	ctx := context.Background()
	h, err := OpenHistory(ctx, "", zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	defer h.Close()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, score := range []float64{0.21, 0.25, 0.19} {
		r := &Report{
			RunID:       string(rune('a' + i)),
			BuildID:     "build",
			BuiltAt:     base,
			Movies:      4800,
			TopK:        10,
			AvgTopK:     score,
			EvaluatedAt: base.Add(time.Duration(i) * time.Hour),
			Duration:    1500 * time.Millisecond,
		}
		if err := h.Record(ctx, r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	recent, err := h.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent returned %d reports, want 2", len(recent))
	}
	if recent[0].RunID != "c" || recent[1].RunID != "b" {
		t.Errorf("order = %s,%s, want c,b", recent[0].RunID, recent[1].RunID)
	}
	got := recent[0]
	if got.AvgTopK != 0.19 || got.Movies != 4800 || got.TopK != 10 || got.Duration != 1500*time.Millisecond {
		t.Errorf("report = %+v", got)
	}
	if !got.EvaluatedAt.Equal(base.Add(2*time.Hour)) || !got.BuiltAt.Equal(base) {
		t.Errorf("timestamps = %v / %v", got.EvaluatedAt, got.BuiltAt)
	}
}

func TestHistory_DuplicateRunRejected(t *testing.T) {
	ctx := context.Background()
	h, err := OpenHistory(ctx, "", zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	r := &Report{RunID: "same", BuildID: "b", EvaluatedAt: time.Now()}
	if err := h.Record(ctx, r); err != nil {
		t.Fatal(err)
	}
	if err := h.Record(ctx, r); err == nil {
		t.Error("second insert with the same run id succeeded")
	}
}

func TestHistory_PersistsToFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "quality.duckdb")

	h, err := OpenHistory(ctx, path, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Record(ctx, &Report{RunID: "r1", BuildID: "b1", EvaluatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenHistory(ctx, path, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	recent, err := reopened.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].RunID != "r1" {
		t.Errorf("reopened history = %+v", recent)
	}
}
