// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package quality

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/artifact"
)

type memoryRecorder struct {
	reports []*Report
	err     error
}

func (m *memoryRecorder) Record(_ context.Context, r *Report) error {
	if m.err != nil {
		return m.err
	}
	m.reports = append(m.reports, r)
	return nil
}

func TestChecker_Run(t *testing.T) {
	dir := t.TempDir()
	set := square(3,
		1, 0.8, 0.2,
		0.8, 1, 0.4,
		0.2, 0.4, 1,
	)
	if err := artifact.Write(dir, set); err != nil {
		t.Fatal(err)
	}

	rec := &memoryRecorder{}
	report, err := NewChecker(dir, 1, rec, zerolog.Nop()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.RunID == "" || report.BuildID != set.BuildID {
		t.Errorf("report = %+v", report)
	}
	if len(rec.reports) != 1 || rec.reports[0] != report {
		t.Errorf("recorded %d reports", len(rec.reports))
	}
}

func TestChecker_Run_RecordFailureNotFatal(t *testing.T) {
	dir := t.TempDir()
	if err := artifact.Write(dir, square(2, 1, 0.5, 0.5, 1)); err != nil {
		t.Fatal(err)
	}
	rec := &memoryRecorder{err: errors.New("disk full")}
	if _, err := NewChecker(dir, 10, rec, zerolog.Nop()).Run(context.Background()); err != nil {
		t.Errorf("Run: %v", err)
	}
}

func TestChecker_Run_Failures(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, dir string)
		wantInvalid bool
		wantIs      error
	}{
		{
			name:   "missing artifacts",
			setup:  func(*testing.T, string) {},
			wantIs: artifact.ErrNotFound,
		},
		{
			name: "corrupt matrix",
			setup: func(t *testing.T, dir string) {
				if err := artifact.Write(dir, square(2, 1, 0, 0, 1)); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(dir, artifact.MatrixFile), []byte("junk"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
			wantInvalid: true,
			wantIs:      artifact.ErrCorrupt,
		},
		{
			name: "shape mismatch",
			setup: func(t *testing.T, dir string) {
				bad := square(2, 1, 0, 0, 1)
				bad.Titles = append(bad.Titles, "extra")
				bad.IDs = append(bad.IDs, 99)
				if err := artifact.Write(dir, bad); err != nil {
					t.Fatal(err)
				}
			},
			wantInvalid: true,
			wantIs:      ErrInvalidArtifact,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			rec := &memoryRecorder{}
			_, err := NewChecker(dir, 10, rec, zerolog.Nop()).Run(context.Background())
			if err == nil {
				t.Fatal("Run succeeded, want error")
			}
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("error = %v, want %v", err, tt.wantIs)
			}
			if got := errors.Is(err, ErrInvalidArtifact); got != tt.wantInvalid {
				t.Errorf("errors.Is(ErrInvalidArtifact) = %v, want %v", got, tt.wantInvalid)
			}
			if len(rec.reports) != 0 {
				t.Error("failed check was recorded")
			}
		})
	}
}
