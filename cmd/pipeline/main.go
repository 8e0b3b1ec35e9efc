// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package main is the offline pipeline for Marquee's similarity artifacts.
//
// Subcommands:
//
//	pipeline build    [-dataset path] [-out dir] [-max-features n] [-workers n] [-evaluate]
//	pipeline evaluate [-dir dir] [-top-k n] [-history path]
//	pipeline history  [-history path] [-n count]
//
// build writes into the staging directory inside the artifact dir. evaluate
// checks a staged pair when one exists and moves it into the artifact dir
// only if it passes; without a staged pair it re-checks the served pair in
// place.
//
// Configuration defaults come from the same koanf layers as the server
// (defaults, config.yaml, environment); flags override them. Reports are
// written to stdout as JSON, logs go to stderr. A failed build or a failed
// quality check exits 1; usage errors exit 2.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/artifact"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/features"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/quality"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load configuration: %v\n", err)
		return exitFail
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    stderr,
	})
	logger := logging.Logger()

	switch args[0] {
	case "build":
		return runBuild(ctx, cfg, args[1:], stdout, stderr, logger)
	case "evaluate":
		return runEvaluate(ctx, cfg, args[1:], stdout, stderr, logger)
	case "history":
		return runHistory(ctx, cfg, args[1:], stdout, stderr, logger)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: pipeline <build|evaluate|history> [flags]")
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func runBuild(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer, logger zerolog.Logger) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dataset := fs.String("dataset", cfg.Catalog.DatasetPath, "movie dataset CSV (or .csv.zip)")
	out := fs.String("out", cfg.Artifacts.Dir, "artifact directory (the build is staged inside it)")
	maxFeatures := fs.Int("max-features", cfg.Features.MaxFeatures, "TF-IDF vocabulary cap")
	workers := fs.Int("workers", cfg.Features.Workers, "similarity goroutines (0 = GOMAXPROCS)")
	evaluateAfter := fs.Bool("evaluate", false, "run the quality check after a successful build")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	builder := features.NewBuilder(features.Config{
		DatasetPath: *dataset,
		ArtifactDir: artifact.StagingDir(*out),
		MaxFeatures: *maxFeatures,
		Workers:     *workers,
	}, logger)

	report, err := builder.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Build failed")
		return exitFail
	}
	if err := writeJSON(stdout, report); err != nil {
		logger.Error().Err(err).Msg("Failed to write build report")
		return exitFail
	}

	if !*evaluateAfter {
		return exitOK
	}
	return evaluate(ctx, *out, cfg.Quality.TopK, cfg.Quality.HistoryPath, stdout, logger)
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func runEvaluate(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer, logger zerolog.Logger) int {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", cfg.Artifacts.Dir, "artifact directory")
	topK := fs.Int("top-k", cfg.Quality.TopK, "neighbours scored per movie")
	historyPath := fs.String("history", cfg.Quality.HistoryPath, "DuckDB quality history file (empty = do not persist)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	return evaluate(ctx, *dir, *topK, *historyPath, stdout, logger)
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func evaluate(ctx context.Context, dir string, topK int, historyPath string, stdout io.Writer, logger zerolog.Logger) int {
	var recorder quality.Recorder
	if historyPath != "" {
		history, err := quality.OpenHistory(ctx, historyPath, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Quality history unavailable, report will not be persisted")
		} else {
			defer history.Close()
			recorder = history
		}
	}

	target := dir
	staging := artifact.StagingDir(dir)
	staged := artifact.Exists(staging)
	if staged {
		target = staging
	}

	report, err := quality.NewChecker(target, topK, recorder, logger).Run(ctx)
	if err != nil {
		var verr *quality.ValidationError
		if errors.As(err, &verr) {
			logger.Error().Str("reason", verr.Reason).Int("row", verr.Row).Int("col", verr.Col).Str("dir", target).Msg("Artifacts rejected")
		}
		return exitFail
	}

	if staged {
		if err := artifact.Promote(staging, dir); err != nil {
			logger.Error().Err(err).Str("build_id", report.BuildID).Msg("Failed to promote checked build")
			return exitFail
		}
		logger.Info().Str("build_id", report.BuildID).Str("dir", dir).Msg("Promoted checked build")
	}

	if err := writeJSON(stdout, report); err != nil {
		logger.Error().Err(err).Msg("Failed to write quality report")
		return exitFail
	}
	return exitOK
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func runHistory(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer, logger zerolog.Logger) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	historyPath := fs.String("history", cfg.Quality.HistoryPath, "DuckDB quality history file")
	n := fs.Int("n", 20, "number of reports")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *historyPath == "" {
		fmt.Fprintln(stderr, "history: -history is required")
		return exitUsage
	}

	history, err := quality.OpenHistory(ctx, *historyPath, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open quality history")
		return exitFail
	}
	defer history.Close()

	reports, err := history.Recent(ctx, *n)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read quality history")
		return exitFail
	}
	if err := writeJSON(stdout, reports); err != nil {
		logger.Error().Err(err).Msg("Failed to write quality history")
		return exitFail
	}
	return exitOK
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
