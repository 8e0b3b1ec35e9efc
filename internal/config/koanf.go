// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
	"/etc/marquee/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			DatasetPath: "data/tmdb_5000_movies.csv",
		},
		Artifacts: ArtifactsConfig{
			Dir: "data/models",
		},
		LocalStore: LocalStoreConfig{
			Path:       "data/localstore",
			InMemory:   false,
			SyncWrites: false,
		},
		Features: FeaturesConfig{
			MaxFeatures: 5000,
			Workers:     0,
		},
		Recommend: RecommendConfig{
			DefaultK:        10,
			MaxK:            100,
			CacheSize:       1024,
			BreakerFailures: 3,
			BreakerTimeout:  30 * time.Second,
		},
		Search: SearchConfig{
			CatalogLimit: 50,
		},
		Quality: QualityConfig{
			TopK:        10,
			HistoryPath: "data/quality.duckdb",
		},
		Rebuild: RebuildConfig{
			Enabled:    false,
			Interval:   24 * time.Hour,
			RunOnStart: false,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8000,
			Timeout:           30 * time.Second,
			ShutdownTimeout:   15 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// the environment, in increasing priority, and validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns CONFIG_PATH when it exists, else the first
// existing default path, else "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Values already loaded as lists (YAML) are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
var envMappings = map[string]string{
	"dataset_path": "catalog.dataset_path",
	"artifact_dir": "artifacts.dir",

	"localstore_path":        "localstore.path",
	"localstore_in_memory":   "localstore.in_memory",
	"localstore_sync_writes": "localstore.sync_writes",

	"tfidf_max_features": "features.max_features",
	"build_workers":      "features.workers",

	"recommend_default_k":       "recommend.default_k",
	"recommend_max_k":           "recommend.max_k",
	"recommend_cache_size":      "recommend.cache_size",
	"artifact_breaker_failures": "recommend.breaker_failures",
	"artifact_breaker_timeout":  "recommend.breaker_timeout",

	"search_catalog_limit": "search.catalog_limit",

	"quality_top_k":        "quality.top_k",
	"quality_history_path": "quality.history_path",

	"rebuild_enabled":      "rebuild.enabled",
	"rebuild_interval":     "rebuild.interval",
	"rebuild_run_on_start": "rebuild.run_on_start",

	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":          "server.cors_origins",
	"rate_limit_reqs":       "server.rate_limit_reqs",
	"rate_limit_window":     "server.rate_limit_window",
	"disable_rate_limit":    "server.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to a config path.
// Unmapped variables return "" and are ignored.
//
// Examples:
//   - DATASET_PATH -> catalog.dataset_path
//   - ARTIFACT_DIR -> artifacts.dir
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
