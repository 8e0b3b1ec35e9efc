// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package dataset reads the flat TMDB-style movie dataset.
//
// The dataset is a CSV file with a header row, optionally shipped inside a
// zip archive (name.csv.zip). Rows are exposed by column name so callers do
// not depend on column order.
package dataset

import (
	"archive/zip"
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

var (
	// ErrNotFound is returned when neither the CSV nor its zipped form exists.
	ErrNotFound = errors.New("dataset not found")

	// ErrMissingColumn is returned when a required header column is absent.
	ErrMissingColumn = errors.New("dataset missing required column")
)

// Resolve returns the first existing file among path and path+".zip".
func Resolve(path string) (string, error) {
	candidates := []string{path}
	if !strings.HasSuffix(strings.ToLower(path), ".zip") {
		candidates = append(candidates, path+".zip")
	}
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s or %s.zip", ErrNotFound, path, path)
}

// Reader iterates over the rows of a dataset file.
type Reader struct {
	csv     *csv.Reader
	closers []io.Closer
	header  map[string]int
	line    int
}

// Open resolves path (see Resolve) and opens it for reading. The header row
// is consumed immediately; every name in required must be present.
func Open(path string, required ...string) (*Reader, error) {
	resolved, err := Resolve(path)
	if err != nil {
		return nil, err
	}

	var (
		src     io.Reader
		closers []io.Closer
	)

	if strings.HasSuffix(strings.ToLower(resolved), ".zip") {
		zr, err := zip.OpenReader(resolved)
		if err != nil {
			return nil, fmt.Errorf("open zip %s: %w", resolved, err)
		}
		closers = append(closers, zr)

		entry, err := firstCSVEntry(&zr.Reader)
		if err != nil {
			closeAll(closers)
			return nil, fmt.Errorf("%s: %w", resolved, err)
		}
		rc, err := entry.Open()
		if err != nil {
			closeAll(closers)
			return nil, fmt.Errorf("open zip entry %s: %w", entry.Name, err)
		}
		closers = append(closers, rc)
		src = rc
	} else {
		f, err := os.Open(resolved)
		if err != nil {
			return nil, fmt.Errorf("open dataset %s: %w", resolved, err)
		}
		closers = append(closers, f)
		src = f
	}

	r, err := newReader(src, required)
	if err != nil {
		closeAll(closers)
		return nil, fmt.Errorf("%s: %w", resolved, err)
	}
	r.closers = closers
	return r, nil
}

// NewReader wraps an already open CSV stream.
func NewReader(src io.Reader, required ...string) (*Reader, error) {
	return newReader(src, required)
}

func newReader(src io.Reader, required []string) (*Reader, error) {
	cr := csv.NewReader(bufio.NewReader(src))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	header := make(map[string]int, len(head))
	for i, name := range head {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := header[name]; !dup {
			header[name] = i
		}
	}
	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	return &Reader{csv: cr, header: header, line: 1}, nil
}

// Next returns the next row, or io.EOF when the dataset is exhausted.
// Structurally broken records are returned as errors wrapping *csv.ParseError;
// callers may skip them and continue.
func (r *Reader) Next() (Row, error) {
	rec, err := r.csv.Read()
	r.line++
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		return Row{line: r.line}, fmt.Errorf("line %d: %w", r.line, err)
	}
	return Row{header: r.header, fields: rec, line: r.line}, nil
}

// Close releases the underlying file handles.
func (r *Reader) Close() error {
	return closeAll(r.closers)
}

// Row is a single dataset record addressed by column name.
type Row struct {
	header map[string]int
	fields []string
	line   int
}

// NewRow builds a Row from parallel column and value slices.
func NewRow(columns, values []string) Row {
	header := make(map[string]int, len(columns))
	for i, c := range columns {
		header[c] = i
	}
	return Row{header: header, fields: values}
}

// Get returns the trimmed value of col and whether it is present and non-empty.
// Empty cells are treated as missing.
func (r Row) Get(col string) (string, bool) {
	i, ok := r.header[col]
	if !ok || i >= len(r.fields) {
		return "", false
	}
	v := strings.TrimSpace(r.fields[i])
	if v == "" {
		return "", false
	}
	return v, true
}

// Line returns the 1-based line number of the record within the file.
func (r Row) Line() int {
	return r.line
}

// ParseInt accepts plain integers and integral float text such as "94.0",
// which is how numeric columns with gaps are commonly exported. Values
// outside the int32 range are rejected.
func ParseInt(raw string) (int, error) {
	if v, err := strconv.Atoi(raw); err == nil {
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, fmt.Errorf("integer out of range: %q", raw)
		}
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("integer out of range: %q", raw)
	}
	return int(f), nil
}

type namedEntry struct {
	Name string `json:"name"`
}

// ParseNameList decodes a JSON list of {"name": ...} objects, returning the
// non-empty names in order. An empty input yields an empty list.
func ParseNameList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}

	var entries []namedEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("parse name list: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name != "" {
			names = append(names, e.Name)
		}
	}
	return names, nil
}

func firstCSVEntry(zr *zip.Reader) (*zip.File, error) {
	var fallback *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}
		if strings.EqualFold(filepath.Ext(f.Name), ".csv") {
			return f, nil
		}
		if fallback == nil {
			fallback = f
		}
	}
	if fallback == nil {
		return nil, errors.New("zip archive contains no files")
	}
	return fallback, nil
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
