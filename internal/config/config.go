// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Catalog    CatalogConfig    `koanf:"catalog"`
	Artifacts  ArtifactsConfig  `koanf:"artifacts"`
	LocalStore LocalStoreConfig `koanf:"localstore"`
	Features   FeaturesConfig   `koanf:"features"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Search     SearchConfig     `koanf:"search"`
	Quality    QualityConfig    `koanf:"quality"`
	Rebuild    RebuildConfig    `koanf:"rebuild"`
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// CatalogConfig locates the movie dataset.
type CatalogConfig struct {
	// DatasetPath is the CSV file; path + ".zip" is tried when it is absent.
	DatasetPath string `koanf:"dataset_path"`
}

// ArtifactsConfig locates the similarity artifacts.
type ArtifactsConfig struct {
	Dir string `koanf:"dir"`
}

// LocalStoreConfig configures the BadgerDB store for user-added movies.
type LocalStoreConfig struct {
	Path       string `koanf:"path"`
	InMemory   bool   `koanf:"in_memory"`
	SyncWrites bool   `koanf:"sync_writes"`
}

// FeaturesConfig tunes the feature build.
type FeaturesConfig struct {
	// MaxFeatures caps the TF-IDF vocabulary.
	MaxFeatures int `koanf:"max_features"`
	// Workers bounds matrix goroutines; 0 uses GOMAXPROCS.
	Workers int `koanf:"workers"`
}

// RecommendConfig tunes the similarity index.
type RecommendConfig struct {
	DefaultK        int           `koanf:"default_k"`
	MaxK            int           `koanf:"max_k"`
	CacheSize       int           `koanf:"cache_size"`
	BreakerFailures int           `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// SearchConfig tunes title search.
type SearchConfig struct {
	// CatalogLimit caps catalog matches per query.
	CatalogLimit int `koanf:"catalog_limit"`
}

// QualityConfig tunes the model quality check.
type QualityConfig struct {
	TopK int `koanf:"top_k"`
	// HistoryPath is the DuckDB file for past reports; empty keeps them in memory.
	HistoryPath string `koanf:"history_path"`
}

// RebuildConfig schedules in-process rebuilds.
type RebuildConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Interval   time.Duration `koanf:"interval"`
	RunOnStart bool          `koanf:"run_on_start"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console. Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}
