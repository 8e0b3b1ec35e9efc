// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package artifact

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	// FormatVersion is bumped whenever the on-disk layout changes.
	FormatVersion = 1

	TitlesFile = "movies.msgpack"
	MatrixFile = "similarity.msgpack"

	// StagingName is the directory inside an artifact dir where a new build
	// waits for its quality check before Promote moves it into place.
	StagingName = ".staging"

	// Tolerance is how far a similarity may stray outside [-1, 1] from
	// float rounding before the matrix is rejected.
	Tolerance = 1e-6

	kindTitles = "titles"
	kindMatrix = "matrix"
)

var (
	// ErrNotFound is returned when either artifact file does not exist.
	ErrNotFound = errors.New("similarity artifacts not found")

	// ErrCorrupt is returned when an artifact file cannot be decoded or has
	// an unexpected version or kind.
	ErrCorrupt = errors.New("similarity artifact is corrupt")

	// ErrBuildMismatch is returned when the two files come from different builds.
	ErrBuildMismatch = errors.New("similarity artifacts come from different builds")
)

// Header identifies the build a file belongs to.
type Header struct {
	Version int       `msgpack:"v"`
	Kind    string    `msgpack:"kind"`
	BuildID string    `msgpack:"build_id"`
	BuiltAt time.Time `msgpack:"built_at"`
}

type titlesFile struct {
	Header Header   `msgpack:"header"`
	IDs    []int64  `msgpack:"ids"`
	Titles []string `msgpack:"titles"`
}

type matrixFile struct {
	Header Header    `msgpack:"header"`
	N      int       `msgpack:"n"`
	Data   []float32 `msgpack:"data"`
}

// Set is one build of the similarity model: row i of the matrix describes
// the movie IDs[i] titled Titles[i].
type Set struct {
	BuildID string
	BuiltAt time.Time

	IDs    []int64
	Titles []string

	// N is the matrix order; Data holds N*N values in row-major order.
	N    int
	Data []float32
}

// NewSet wraps the builder output with a fresh build id.
func NewSet(ids []int64, titles []string, n int, data []float32) *Set {
	return &Set{
		BuildID: uuid.New().String(),
		BuiltAt: time.Now().UTC(),
		IDs:     ids,
		Titles:  titles,
		N:       n,
		Data:    data,
	}
}

// Len returns the number of rows in the titles table.
func (s *Set) Len() int {
	return len(s.Titles)
}

// Row returns the similarity row for position i. The slice aliases Data.
func (s *Set) Row(i int) []float32 {
	return s.Data[i*s.N : (i+1)*s.N]
}

// ValueError locates a matrix cell that is not a usable similarity.
type ValueError struct {
	Row, Col int
	Value    float32
	Reason   string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s at (%d,%d)", e.Reason, e.Row, e.Col)
}

// Validate checks that the matrix is square, lines up with the titles table
// and holds only finite values within [-1, 1] (allowing Tolerance). Value
// problems are reported as *ValueError.
func (s *Set) Validate() error {
	if s.N < 0 {
		return fmt.Errorf("matrix order %d is negative", s.N)
	}
	if len(s.Data) != s.N*s.N {
		return fmt.Errorf("matrix is not square: %d values for order %d", len(s.Data), s.N)
	}
	if len(s.IDs) != len(s.Titles) {
		return fmt.Errorf("titles table has %d ids but %d titles", len(s.IDs), len(s.Titles))
	}
	if s.N != len(s.Titles) {
		return fmt.Errorf("matrix order %d does not match %d titles", s.N, len(s.Titles))
	}

	for p, v := range s.Data {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return &ValueError{Row: p / s.N, Col: p % s.N, Value: v, Reason: "non-finite similarity"}
		}
		if f > 1+Tolerance || f < -1-Tolerance {
			return &ValueError{Row: p / s.N, Col: p % s.N, Value: v, Reason: fmt.Sprintf("similarity %v outside [-1, 1]", f)}
		}
	}
	return nil
}

// Write stores set in dir, creating the directory if needed. The matrix is
// replaced before the titles table.
func Write(dir string, set *Set) error {
	if set == nil {
		return errors.New("artifact: nil set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	header := Header{Version: FormatVersion, BuildID: set.BuildID, BuiltAt: set.BuiltAt}

	mh := header
	mh.Kind = kindMatrix
	if err := writeAtomic(filepath.Join(dir, MatrixFile), &matrixFile{Header: mh, N: set.N, Data: set.Data}); err != nil {
		return fmt.Errorf("write %s: %w", MatrixFile, err)
	}

	th := header
	th.Kind = kindTitles
	if err := writeAtomic(filepath.Join(dir, TitlesFile), &titlesFile{Header: th, IDs: set.IDs, Titles: set.Titles}); err != nil {
		return fmt.Errorf("write %s: %w", TitlesFile, err)
	}
	return nil
}

// Read loads the artifact pair from dir. Shape is not checked; callers that
// need it call Validate.
func Read(dir string) (*Set, error) {
	titlesPath := filepath.Join(dir, TitlesFile)
	var titles titlesFile
	if err := readFile(titlesPath, &titles); err != nil {
		return nil, err
	}
	if err := checkHeader(titlesPath, kindTitles, titles.Header); err != nil {
		return nil, err
	}

	matrixPath := filepath.Join(dir, MatrixFile)
	var matrix matrixFile
	if err := readFile(matrixPath, &matrix); err != nil {
		return nil, err
	}
	if err := checkHeader(matrixPath, kindMatrix, matrix.Header); err != nil {
		return nil, err
	}

	if titles.Header.BuildID != matrix.Header.BuildID {
		return nil, fmt.Errorf("%w: titles %s, matrix %s", ErrBuildMismatch, titles.Header.BuildID, matrix.Header.BuildID)
	}

	return &Set{
		BuildID: titles.Header.BuildID,
		BuiltAt: titles.Header.BuiltAt.UTC(),
		IDs:     titles.IDs,
		Titles:  titles.Titles,
		N:       matrix.N,
		Data:    matrix.Data,
	}, nil
}

// Exists reports whether both artifact files are present in dir.
func Exists(dir string) bool {
	for _, name := range []string{TitlesFile, MatrixFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

// StagingDir returns where builds for dir are written before promotion.
// It lives inside dir so that Promote only renames within one filesystem.
func StagingDir(dir string) string {
	return filepath.Join(dir, StagingName)
}

// Promote moves the pair staged in from into dir, matrix first, and removes
// from. Each file is replaced by a rename; a reader that lands between the
// two renames gets ErrBuildMismatch and retries on its next load.
func Promote(from, dir string) error {
	if !Exists(from) {
		return fmt.Errorf("%w: nothing staged in %s", ErrNotFound, from)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	for _, name := range []string{MatrixFile, TitlesFile} {
		if err := os.Rename(filepath.Join(from, name), filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("promote %s: %w", name, err)
		}
	}
	if err := syncDir(dir); err != nil {
		return fmt.Errorf("sync %s: %w", dir, err)
	}
	return os.RemoveAll(from)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}

func readFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := msgpack.NewDecoder(bufio.NewReader(f)).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	return nil
}

func checkHeader(path, kind string, h Header) error {
	if h.Version != FormatVersion || h.Kind != kind {
		return fmt.Errorf("%w: %s has version %d kind %q", ErrCorrupt, path, h.Version, h.Kind)
	}
	if h.BuildID == "" {
		return fmt.Errorf("%w: %s has no build id", ErrCorrupt, path)
	}
	return nil
}

// writeAtomic encodes v into a temp file beside path, syncs it and renames
// it over path.
func writeAtomic(path string, v any) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriterSize(tmp, 1<<20)
	if err = msgpack.NewEncoder(w).Encode(v); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
