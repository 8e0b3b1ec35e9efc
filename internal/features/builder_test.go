// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package features

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/artifact"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/dataset"
)

const builderCSV = `id,title,overview,genres,keywords,production_companies,production_countries
1,Alien,A crew meets a creature in deep space.,"[{""name"": ""Horror""}, {""name"": ""Science Fiction""}]","[{""name"": ""spaceship""}]","[{""name"": ""Brandywine""}]","[{""name"": ""United Kingdom""}]"
2,Aliens,Marines fight creatures in deep space.,"[{""name"": ""Action""}, {""name"": ""Science Fiction""}]","[{""name"": ""spaceship""}]","[{""name"": ""Brandywine""}]","[{""name"": ""United Kingdom""}]"
3,Amelie,A shy waitress in Paris.,"[{""name"": ""Romance""}]","[{""name"": ""paris""}]","[{""name"": ""Claudie Ossard""}]","[{""name"": ""France""}]"
4,Broken,,"[{""name"": ""Drama""}]","{not json","[]","[]"
1,Alien Duplicate,,"[]","[]","[]","[]"
`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuilder_Run(t *testing.T) {
	dir := t.TempDir()
	b := NewBuilder(Config{
		DatasetPath: writeDataset(t, builderCSV),
		ArtifactDir: dir,
		Workers:     2,
	}, zerolog.Nop())

	report, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Rows != 5 || report.Indexed != 3 || report.Skipped != 2 {
		t.Errorf("report rows/indexed/skipped = %d/%d/%d, want 5/3/2", report.Rows, report.Indexed, report.Skipped)
	}
	if report.Vocabulary == 0 || report.BuildID == "" {
		t.Errorf("report = %+v", report)
	}

	set, err := artifact.Read(dir)
	if err != nil {
		t.Fatalf("artifact.Read: %v", err)
	}
	if err := set.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if set.BuildID != report.BuildID {
		t.Errorf("artifact build %q, report build %q", set.BuildID, report.BuildID)
	}
	if !slices.Equal(set.Titles, []string{"Alien", "Aliens", "Amelie"}) {
		t.Errorf("titles = %q", set.Titles)
	}
	if !slices.Equal(set.IDs, []int64{1, 2, 3}) {
		t.Errorf("ids = %v", set.IDs)
	}

	// Alien is closer to Aliens than to Amelie.
	if !(set.Row(0)[1] > set.Row(0)[2]) {
		t.Errorf("sim(Alien,Aliens)=%v should exceed sim(Alien,Amelie)=%v", set.Row(0)[1], set.Row(0)[2])
	}
	for i := 0; i < set.N; i++ {
		if set.Row(i)[i] != 1 {
			t.Errorf("diag[%d] = %v, want 1", i, set.Row(i)[i])
		}
	}
}

func TestBuilder_Run_MissingColumn(t *testing.T) {
	path := writeDataset(t, "id,title,genres\n1,Alien,[]\n")
	_, err := NewBuilder(Config{DatasetPath: path, ArtifactDir: t.TempDir()}, zerolog.Nop()).Run(context.Background())
	if !errors.Is(err, dataset.ErrMissingColumn) {
		t.Errorf("error = %v, want ErrMissingColumn", err)
	}
}

func TestBuilder_Run_MissingDataset(t *testing.T) {
	dir := t.TempDir()
	_, err := NewBuilder(Config{
		DatasetPath: filepath.Join(dir, "absent.csv"),
		ArtifactDir: dir,
	}, zerolog.Nop()).Run(context.Background())
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Errorf("error = %v, want dataset.ErrNotFound", err)
	}
	if artifact.Exists(dir) {
		t.Error("artifacts written despite failed build")
	}
}

func TestBuilder_Run_Deterministic(t *testing.T) {
	path := writeDataset(t, builderCSV)
	run := func() *artifact.Set {
		dir := t.TempDir()
		if _, err := NewBuilder(Config{DatasetPath: path, ArtifactDir: dir}, zerolog.Nop()).Run(context.Background()); err != nil {
			t.Fatal(err)
		}
		set, err := artifact.Read(dir)
		if err != nil {
			t.Fatal(err)
		}
		return set
	}

	a, b := run(), run()
	if !slices.Equal(a.Data, b.Data) || !slices.Equal(a.Titles, b.Titles) {
		t.Error("two builds of the same dataset differ")
	}
	if a.BuildID == b.BuildID {
		t.Error("build ids should differ between runs")
	}
}

func TestReadDocuments_CleanedText(t *testing.T) {
	docs, rows, skipped, err := ReadDocuments(writeDataset(t, builderCSV), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if rows != 5 || skipped != 2 || len(docs) != 3 {
		t.Fatalf("rows=%d skipped=%d docs=%d", rows, skipped, len(docs))
	}
	if !strings.HasPrefix(docs[0].Text, "horror science fiction spaceship a crew meets") {
		t.Errorf("text = %q", docs[0].Text)
	}
}

func TestDocumentFromRow_IDsAgreeWithCatalog(t *testing.T) {
	columns := []string{"id", "title", "genres", "vote_average", "popularity", "keywords", "production_companies", "production_countries"}
	tests := []struct {
		rawID  string
		wantID int64
		wantOK bool
	}{
		{"19995", 19995, true},
		{"19995.0", 19995, true},
		{" 42 ", 42, true},
		{"19995.5", 0, false},
		{"nineteen", 0, false},
		{"1e12", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.rawID, func(t *testing.T) {
			row := dataset.NewRow(columns, []string{tt.rawID, "Avatar", `[{"name": "Action"}]`, "7.2", "150.4", "[]", "[]", "[]"})

			doc, docErr := DocumentFromRow(row)
			movie, movieErr := catalog.ParseRow(row)
			if (docErr == nil) != tt.wantOK || (movieErr == nil) != tt.wantOK {
				t.Fatalf("accepted: features=%v catalog=%v, want %v (errors %v / %v)", docErr == nil, movieErr == nil, tt.wantOK, docErr, movieErr)
			}
			if tt.wantOK && (doc.ID != tt.wantID || int64(movie.ID) != tt.wantID) {
				t.Errorf("ids: features=%d catalog=%d, want %d", doc.ID, movie.ID, tt.wantID)
			}
		})
	}
}
