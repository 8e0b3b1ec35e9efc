// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package ranking

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/tomtom215/marquee/internal/models"
)

type fakeCatalog struct {
	movies []models.Movie
}

func (f *fakeCatalog) All(context.Context) []models.Movie {
	return slices.Clone(f.movies)
}

func (f *fakeCatalog) GetByID(_ context.Context, id int) (models.Movie, bool) {
	for _, m := range f.movies {
		if m.ID == id {
			return m, true
		}
	}
	return models.Movie{}, false
}

func testMovies() []models.Movie {
	return []models.Movie{
		{ID: 1, Title: "A", Popularity: 10, VoteAverage: 7.0, ReleaseDate: "2001-01-01"},
		{ID: 2, Title: "B", Popularity: 50, VoteAverage: 8.0, ReleaseDate: ""},
		{ID: 3, Title: "C", Popularity: 30, VoteAverage: 8.0, ReleaseDate: "2015-06-01"},
		{ID: 4, Title: "D", Popularity: 50, VoteAverage: 6.5, ReleaseDate: "1999-12-31"},
		{ID: 5, Title: "E", Popularity: 5, VoteAverage: 9.1, ReleaseDate: "2015-06-01"},
	}
}

func ids(movies []models.Movie) []int {
	out := make([]int, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"popular", Popular, false},
		{"TOP_RATED", TopRated, false},
		{" upcoming ", Upcoming, false},
		{"trending", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("ParseCategory(%q) error = %v, want ErrUnknownCategory", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestByCategory_Ordering(t *testing.T) {
	e := NewEngine(&fakeCatalog{movies: testMovies()})

	tests := []struct {
		cat  Category
		want []int
	}{
		// ties keep catalog order: 2 before 4
		{Popular, []int{2, 4, 3, 1, 5}},
		// ties keep catalog order: 2 before 3
		{TopRated, []int{5, 2, 3, 1, 4}},
		// string comparison, empty date last, ties keep catalog order
		{Upcoming, []int{3, 5, 1, 4, 2}},
	}

	for _, tt := range tests {
		t.Run(string(tt.cat), func(t *testing.T) {
			page, err := e.ByCategory(context.Background(), tt.cat, 10, 0)
			if err != nil {
				t.Fatalf("ByCategory() error = %v", err)
			}
			if page.Total != 5 {
				t.Errorf("Total = %d, want 5", page.Total)
			}
			if got := ids(page.Results); !slices.Equal(got, tt.want) {
				t.Errorf("ByCategory(%s) = %v, want %v", tt.cat, got, tt.want)
			}
		})
	}
}

func TestByCategory_Pagination(t *testing.T) {
	e := NewEngine(&fakeCatalog{movies: testMovies()})
	ctx := context.Background()

	tests := []struct {
		name   string
		limit  int
		offset int
		want   []int
	}{
		{"first page", 2, 0, []int{2, 4}},
		{"second page", 2, 2, []int{3, 1}},
		{"partial last page", 2, 4, []int{5}},
		{"offset at end", 2, 5, []int{}},
		{"offset past end", 2, 50, []int{}},
		{"negative offset clamps", 1, -3, []int{2}},
		{"zero limit", 0, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := e.ByCategory(ctx, Popular, tt.limit, tt.offset)
			if err != nil {
				t.Fatal(err)
			}
			if page.Total != 5 {
				t.Errorf("Total = %d, want 5", page.Total)
			}
			if got := ids(page.Results); !slices.Equal(got, tt.want) {
				t.Errorf("page = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestByCategory_PagesPartitionListing(t *testing.T) {
	e := NewEngine(&fakeCatalog{movies: testMovies()})
	ctx := context.Background()

	full, err := e.ByCategory(ctx, TopRated, 100, 0)
	if err != nil {
		t.Fatal(err)
	}

	var joined []int
	for offset := 0; offset < full.Total; offset += 2 {
		page, err := e.ByCategory(ctx, TopRated, 2, offset)
		if err != nil {
			t.Fatal(err)
		}
		joined = append(joined, ids(page.Results)...)
	}

	if !slices.Equal(joined, ids(full.Results)) {
		t.Errorf("concatenated pages = %v, want %v", joined, ids(full.Results))
	}
}

func TestByCategory_UnknownCategory(t *testing.T) {
	e := NewEngine(&fakeCatalog{movies: testMovies()})

	_, err := e.ByCategory(context.Background(), Category("trending"), 10, 0)
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("error = %v, want ErrUnknownCategory", err)
	}
}

func TestByCategory_DoesNotMutateCatalog(t *testing.T) {
	cat := &fakeCatalog{movies: testMovies()}
	e := NewEngine(cat)

	if _, err := e.ByCategory(context.Background(), Popular, 10, 0); err != nil {
		t.Fatal(err)
	}
	if got := ids(cat.movies); !slices.Equal(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("catalog order changed to %v", got)
	}
}

func TestEngineAll(t *testing.T) {
	e := NewEngine(&fakeCatalog{movies: testMovies()})

	page := e.All(context.Background(), 3, 1)
	if got := ids(page.Results); !slices.Equal(got, []int{4, 3, 1}) {
		t.Errorf("All(3, 1) = %v, want [4 3 1]", got)
	}
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	cat := &fakeCatalog{movies: testMovies()}
	local := &fakeLocal{movies: []models.Movie{{ID: 99, Title: "Home Movie", Source: models.SourceUserAdded}}}

	l := NewLookup(cat, local)
	if m, ok := l.Get(ctx, 3); !ok || m.Title != "C" {
		t.Errorf("Get(3) = %q, %v", m.Title, ok)
	}
	if m, ok := l.Get(ctx, 99); !ok || m.Title != "Home Movie" {
		t.Errorf("Get(99) = %q, %v", m.Title, ok)
	}
	if _, ok := l.Get(ctx, 1000); ok {
		t.Error("Get(1000) found a movie")
	}

	if _, ok := NewLookup(cat, nil).Get(ctx, 99); ok {
		t.Error("Get(99) without local store found a movie")
	}
}
