// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/artifact"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/features"
	"github.com/tomtom215/marquee/internal/localstore"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/quality"
	"github.com/tomtom215/marquee/internal/ranking"
	"github.com/tomtom215/marquee/internal/similarity"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})
	logger := logging.Logger()

	logging.Info().
		Str("dataset", cfg.Catalog.DatasetPath).
		Str("artifact_dir", cfg.Artifacts.Dir).
		Str("localstore", cfg.LocalStore.Path).
		Bool("rebuild_enabled", cfg.Rebuild.Enabled).
		Msg("Starting Marquee")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalogStore := catalog.NewStore(cfg.Catalog.DatasetPath, logger)
	if err := catalogStore.Preload(ctx); err != nil {
		logging.Warn().Err(err).Msg("Catalog not loaded at startup, will retry on first request")
	}

	local, err := localstore.Open(localstore.Config{
		Path:       cfg.LocalStore.Path,
		InMemory:   cfg.LocalStore.InMemory,
		SyncWrites: cfg.LocalStore.SyncWrites,
	}, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open local store")
	}
	defer func() {
		if err := local.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing local store")
		}
	}()

	index := similarity.NewIndex(indexConfig(cfg), catalogStore, logger)
	if err := index.Preload(ctx); err != nil {
		logging.Warn().Err(err).Msg("Similarity artifacts not loaded at startup, recommendations are empty until a build exists")
	}

	handler := api.NewHandler(api.Dependencies{
		Feed:    ranking.NewEngine(catalogStore),
		Finder:  ranking.NewSearcher(local, catalogStore, cfg.Search.CatalogLimit, logger),
		Movies:  ranking.NewLookup(catalogStore, local),
		Index:   index,
		Catalog: catalogStore,
	}, logger)
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
		RateLimitDisabled:  cfg.Server.RateLimitDisabled,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logger))

	if cfg.Rebuild.Enabled {
		history, err := quality.OpenHistory(ctx, cfg.Quality.HistoryPath, logger)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open quality history")
		}
		defer func() {
			if err := history.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing quality history")
			}
		}()

		staging := artifact.StagingDir(cfg.Artifacts.Dir)
		builder := features.NewBuilder(features.Config{
			DatasetPath: cfg.Catalog.DatasetPath,
			ArtifactDir: staging,
			MaxFeatures: cfg.Features.MaxFeatures,
			Workers:     cfg.Features.Workers,
		}, logger)
		checker := quality.NewChecker(staging, cfg.Quality.TopK, history, logger)

		tree.AddPipelineService(services.NewRebuildService(builder, checker, index, services.RebuildServiceConfig{
			RunOnStart:  cfg.Rebuild.RunOnStart,
			Interval:    cfg.Rebuild.Interval,
			StagingDir:  staging,
			ArtifactDir: cfg.Artifacts.Dir,
		}, logger))
		logging.Info().Dur("interval", cfg.Rebuild.Interval).Msg("Rebuild service added to supervisor tree")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Marquee stopped")
}

func indexConfig(cfg *config.Config) similarity.Config {
	failures := cfg.Recommend.BreakerFailures
	if failures < 1 {
		failures = 1
	}
	return similarity.Config{
		Dir:             cfg.Artifacts.Dir,
		DefaultK:        cfg.Recommend.DefaultK,
		MaxK:            cfg.Recommend.MaxK,
		CacheSize:       cfg.Recommend.CacheSize,
		BreakerFailures: uint32(failures), //nolint:gosec // bounded below by 1 and by config validation
		BreakerTimeout:  cfg.Recommend.BreakerTimeout,
	}
}
