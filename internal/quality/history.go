// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package quality

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver
	"github.com/rs/zerolog"
)

const historySchema = `CREATE TABLE IF NOT EXISTS model_quality_reports (
	run_id VARCHAR PRIMARY KEY,
	build_id VARCHAR NOT NULL,
	built_at TIMESTAMP,
	movie_count INTEGER NOT NULL,
	top_k INTEGER NOT NULL,
	avg_top_k DOUBLE NOT NULL,
	duration_ms BIGINT NOT NULL,
	evaluated_at TIMESTAMP NOT NULL
)`

// History persists quality reports in DuckDB.
type History struct {
	db     *sql.DB
	logger zerolog.Logger
}

// OpenHistory opens (creating if needed) the report database at path. An
// empty path keeps the history in memory for the life of the process.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func OpenHistory(ctx context.Context, path string, logger zerolog.Logger) (*History, error) {
	dsn := ":memory:"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
		dsn = path
	}
	// Extensions are never needed for this table; keep startup offline.
	dsn += "?autoinstall_known_extensions=false&autoload_known_extensions=false"

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open quality history: %w", err)
	}
	if _, err := db.ExecContext(ctx, historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create quality history table: %w", err)
	}

	return &History{
		db:     db,
		logger: logger.With().Str("component", "quality-history").Logger(),
	}, nil
}

// Record appends report to the history.
func (h *History) Record(ctx context.Context, report *Report) error {
	var builtAt any
	if !report.BuiltAt.IsZero() {
		builtAt = report.BuiltAt.UTC()
	}
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO model_quality_reports
			(run_id, build_id, built_at, movie_count, top_k, avg_top_k, duration_ms, evaluated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID, report.BuildID, builtAt, report.Movies, report.TopK,
		report.AvgTopK, report.Duration.Milliseconds(), report.EvaluatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record quality report %s: %w", report.RunID, err)
	}
	h.logger.Debug().Str("run_id", report.RunID).Str("build_id", report.BuildID).Msg("Quality report recorded")
	return nil
}

// Recent returns up to limit reports, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]Report, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT run_id, build_id, built_at, movie_count, top_k, avg_top_k, duration_ms, evaluated_at
		FROM model_quality_reports
		ORDER BY evaluated_at DESC, run_id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query quality history: %w", err)
	}
	defer rows.Close()

	reports := make([]Report, 0, limit)
	for rows.Next() {
		var (
			r          Report
			builtAt    sql.NullTime
			durationMS int64
		)
		if err := rows.Scan(&r.RunID, &r.BuildID, &builtAt, &r.Movies, &r.TopK, &r.AvgTopK, &durationMS, &r.EvaluatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quality report: %w", err)
		}
		if builtAt.Valid {
			r.BuiltAt = builtAt.Time.UTC()
		}
		r.EvaluatedAt = r.EvaluatedAt.UTC()
		r.Duration = time.Duration(durationMS) * time.Millisecond
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quality history: %w", err)
	}
	return reports, nil
}

// Close releases the database.
func (h *History) Close() error {
	return h.db.Close()
}
