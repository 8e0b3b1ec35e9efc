// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

const catalogCSV = `id,title,overview,genres,release_date,vote_average,popularity,runtime
1,Avatar,Blue,"[{""name"": ""Action""}]",2009-12-10,7.2,150.4,162
2,Avatarology,,[],2011-01-01,5.0,3.1,
3,Alien,Space,"[{""name"": ""Horror""}]",1979-05-25,7.9,23.0,117
bad,Broken,,[],,1,1,
1,Avatar Duplicate,,[],,1,1,
4,Heat,,"[{""name"": ""Crime""}]",1995-12-15,7.7,30.0,170
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()
	s := NewStore(writeCatalog(t, catalogCSV), zerolog.Nop())

	if _, ok := s.Report(); ok {
		t.Fatal("store loaded before first access")
	}

	movies := s.Load(ctx)
	if len(movies) != 4 {
		t.Fatalf("len(Load) = %d, want 4", len(movies))
	}

	wantOrder := []int{1, 2, 3, 4}
	for i, id := range wantOrder {
		if movies[i].ID != id {
			t.Errorf("movies[%d].ID = %d, want %d", i, movies[i].ID, id)
		}
	}

	report, ok := s.Report()
	if !ok {
		t.Fatal("Report() not available after load")
	}
	if report.Loaded != 4 || report.Skipped != 1 || report.Duplicates != 1 {
		t.Errorf("report = %+v, want loaded=4 skipped=1 duplicates=1", report)
	}

	// duplicate id keeps the first occurrence
	m, ok := s.GetByID(ctx, 1)
	if !ok || m.Title != "Avatar" {
		t.Errorf("GetByID(1) = %q, %v; want Avatar", m.Title, ok)
	}
	if _, ok := s.GetByID(ctx, 999); ok {
		t.Error("GetByID(999) found a movie")
	}
}

func TestStore_MemoizesSuccessfulLoad(t *testing.T) {
	ctx := context.Background()
	path := writeCatalog(t, catalogCSV)
	s := NewStore(path, zerolog.Nop())

	if n := s.Len(ctx); n != 4 {
		t.Fatalf("Len = %d, want 4", n)
	}

	// Changing the file has no effect once loaded
	if err := os.WriteFile(path, []byte("id,title,genres,vote_average,popularity\n9,Only,[],1,1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if n := s.Len(ctx); n != 4 {
		t.Errorf("Len after file change = %d, want 4 (memoized)", n)
	}
}

func TestStore_MissingDatasetNotMemoized(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.csv")
	s := NewStore(path, zerolog.Nop())

	if got := s.Load(ctx); len(got) != 0 {
		t.Fatalf("Load on missing dataset = %d movies, want 0", len(got))
	}
	if got := s.Load(ctx); got == nil {
		t.Error("Load returned nil, want empty slice")
	}
	if _, ok := s.Report(); ok {
		t.Fatal("failed load was memoized")
	}
	if err := s.Preload(ctx); err == nil {
		t.Error("Preload on missing dataset returned nil error")
	}

	if err := os.WriteFile(path, []byte(catalogCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	if n := s.Len(ctx); n != 4 {
		t.Errorf("Len after dataset appears = %d, want 4", n)
	}
}

func TestStore_PrefixSearch(t *testing.T) {
	ctx := context.Background()
	s := NewStore(writeCatalog(t, catalogCSV), zerolog.Nop())

	tests := []struct {
		query string
		want  []int
	}{
		{"avatar", []int{1, 2}},
		{"  AVA ", []int{1, 2}},
		{"a", []int{1, 2, 3}},
		{"heat", []int{4}},
		{"zzz", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got, err := s.PrefixSearch(ctx, tt.query)
		if err != nil {
			t.Fatalf("PrefixSearch(%q) error = %v", tt.query, err)
		}
		if len(got) != len(tt.want) {
			t.Errorf("PrefixSearch(%q) = %d results, want %d", tt.query, len(got), len(tt.want))
			continue
		}
		for i, id := range tt.want {
			if got[i].ID != id {
				t.Errorf("PrefixSearch(%q)[%d].ID = %d, want %d", tt.query, i, got[i].ID, id)
			}
		}
	}
}

func TestStore_AllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore(writeCatalog(t, catalogCSV), zerolog.Nop())

	all := s.All(ctx)
	all[0], all[1] = all[1], all[0]

	if s.Load(ctx)[0].ID != 1 {
		t.Error("reordering All() result changed the catalog")
	}
}

func TestStore_ConcurrentFirstLoad(t *testing.T) {
	ctx := context.Background()
	s := NewStore(writeCatalog(t, catalogCSV), zerolog.Nop())

	const workers = 16
	results := make([][]int, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for _, m := range s.Load(ctx) {
				results[w] = append(results[w], m.ID)
			}
		}(w)
	}
	wg.Wait()

	for w := 1; w < workers; w++ {
		if len(results[w]) != len(results[0]) {
			t.Fatalf("worker %d saw %d movies, worker 0 saw %d", w, len(results[w]), len(results[0]))
		}
	}
}
