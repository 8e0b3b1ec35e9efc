// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package artifact

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func sampleSet() *Set {
	return NewSet(
		[]int64{10, 20, 30},
		[]string{"Alien", "Aliens", "Heat"},
		3,
		[]float32{
			1, 0.8, 0.1,
			0.8, 1, 0.2,
			0.1, 0.2, 1,
		},
	)
}

func TestWriteRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := sampleSet()

	if err := Write(dir, in); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !Exists(dir) {
		t.Fatal("Exists = false after Write")
	}

	out, err := Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if out.BuildID != in.BuildID {
		t.Errorf("BuildID = %q, want %q", out.BuildID, in.BuildID)
	}
	if !out.BuiltAt.Equal(in.BuiltAt) {
		t.Errorf("BuiltAt = %v, want %v", out.BuiltAt, in.BuiltAt)
	}
	if !slices.Equal(out.IDs, in.IDs) || !slices.Equal(out.Titles, in.Titles) {
		t.Errorf("titles table = %v %v, want %v %v", out.IDs, out.Titles, in.IDs, in.Titles)
	}
	if out.N != 3 || !slices.Equal(out.Data, in.Data) {
		t.Errorf("matrix = %d %v, want 3 %v", out.N, out.Data, in.Data)
	}
	if row := out.Row(2); !slices.Equal(row, []float32{0.1, 0.2, 1}) {
		t.Errorf("Row(2) = %v", row)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Write(dir, sampleSet()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 2 {
		t.Errorf("dir has %d entries, want 2", len(entries))
	}
}

func TestRead_Missing(t *testing.T) {
	tests := []struct {
		name   string
		remove string
	}{
		{"no files", ""},
		{"titles missing", TitlesFile},
		{"matrix missing", MatrixFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.remove != "" {
				if err := Write(dir, sampleSet()); err != nil {
					t.Fatal(err)
				}
				if err := os.Remove(filepath.Join(dir, tt.remove)); err != nil {
					t.Fatal(err)
				}
			}

			_, err := Read(dir)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Read error = %v, want ErrNotFound", err)
			}
			if Exists(dir) {
				t.Error("Exists = true with a file missing")
			}
		})
	}
}

func TestRead_Corrupt(t *testing.T) {
	dir := t.TempDir()
	if err := Write(dir, sampleSet()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, MatrixFile), []byte("not msgpack at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Read(dir)
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Read error = %v, want ErrCorrupt", err)
	}
}

func TestRead_SwappedFilesAreCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := Write(dir, sampleSet()); err != nil {
		t.Fatal(err)
	}

	titles := filepath.Join(dir, TitlesFile)
	matrix := filepath.Join(dir, MatrixFile)
	data, err := os.ReadFile(matrix)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(titles, data, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Read(dir); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Read error = %v, want ErrCorrupt", err)
	}
}

func TestRead_BuildMismatch(t *testing.T) {
	older := t.TempDir()
	newer := t.TempDir()
	if err := Write(older, sampleSet()); err != nil {
		t.Fatal(err)
	}
	if err := Write(newer, sampleSet()); err != nil {
		t.Fatal(err)
	}

	// Simulate a reader catching a rebuild between the two renames.
	data, err := os.ReadFile(filepath.Join(newer, MatrixFile))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(older, MatrixFile), data, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Read(older); !errors.Is(err, ErrBuildMismatch) {
		t.Errorf("Read error = %v, want ErrBuildMismatch", err)
	}
}

func TestSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		set     Set
		wantErr bool
	}{
		{"empty", Set{}, false},
		{"valid", *sampleSet(), false},
		{"not square", Set{IDs: []int64{1, 2}, Titles: []string{"a", "b"}, N: 2, Data: []float32{1, 0, 0}}, true},
		{"order vs titles", Set{IDs: []int64{1}, Titles: []string{"a"}, N: 2, Data: make([]float32, 4)}, true},
		{"ids vs titles", Set{IDs: []int64{1}, Titles: []string{"a", "b"}, N: 2, Data: make([]float32, 4)}, true},
		{"negative order", Set{N: -1}, true},
		{"rounding above one", Set{IDs: []int64{1}, Titles: []string{"a"}, N: 1, Data: []float32{1.0000005}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSet_ValidateValues(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		name    string
		data    []float32
		wantRow int
		wantCol int
	}{
		{"nan", []float32{1, nan, 0, 1}, 0, 1},
		{"inf", []float32{1, 0, float32(math.Inf(-1)), 1}, 1, 0},
		{"above one", []float32{1, 0, 0, 1.5}, 1, 1},
		{"below minus one", []float32{-1.01, 0, 0, 1}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Set{IDs: []int64{1, 2}, Titles: []string{"a", "b"}, N: 2, Data: tt.data}
			var verr *ValueError
			if err := set.Validate(); !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValueError", err)
			}
			if verr.Row != tt.wantRow || verr.Col != tt.wantCol {
				t.Errorf("cell = (%d,%d), want (%d,%d)", verr.Row, verr.Col, tt.wantRow, tt.wantCol)
			}
		})
	}
}

func TestPromote(t *testing.T) {
	dir := t.TempDir()
	live := sampleSet()
	if err := Write(dir, live); err != nil {
		t.Fatal(err)
	}

	staging := StagingDir(dir)
	staged := sampleSet()
	if err := Write(staging, staged); err != nil {
		t.Fatal(err)
	}

	// Staging does not disturb the live pair.
	if got, err := Read(dir); err != nil || got.BuildID != live.BuildID {
		t.Fatalf("live before promote = %v, %v; want build %s", got, err, live.BuildID)
	}

	if err := Promote(staging, dir); err != nil {
		t.Fatalf("Promote: %v", err)
	}
	got, err := Read(dir)
	if err != nil {
		t.Fatalf("Read after promote: %v", err)
	}
	if got.BuildID != staged.BuildID {
		t.Errorf("BuildID = %s, want promoted %s", got.BuildID, staged.BuildID)
	}
	if _, err := os.Stat(staging); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("staging dir still present: %v", err)
	}
}

func TestPromote_NothingStaged(t *testing.T) {
	dir := t.TempDir()
	if err := Promote(StagingDir(dir), dir); !errors.Is(err, ErrNotFound) {
		t.Errorf("Promote error = %v, want ErrNotFound", err)
	}
}

func TestNewSet_UniqueBuildIDs(t *testing.T) {
	a, b := sampleSet(), sampleSet()
	if a.BuildID == "" || a.BuildID == b.BuildID {
		t.Errorf("build ids %q and %q should be distinct and non-empty", a.BuildID, b.BuildID)
	}
}
