// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
)

var validLogFormats = []string{"json", "console"}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateFeatures(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateQuality(); err != nil {
		return err
	}
	if err := c.validateRebuild(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Catalog.DatasetPath) == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}
	if strings.TrimSpace(c.Artifacts.Dir) == "" {
		return fmt.Errorf("ARTIFACT_DIR is required")
	}
	if !c.LocalStore.InMemory && strings.TrimSpace(c.LocalStore.Path) == "" {
		return fmt.Errorf("LOCALSTORE_PATH is required unless LOCALSTORE_IN_MEMORY=true")
	}
	return nil
}

func (c *Config) validateFeatures() error {
	if c.Features.MaxFeatures < 1 {
		return fmt.Errorf("TFIDF_MAX_FEATURES must be at least 1, got %d", c.Features.MaxFeatures)
	}
	if c.Features.Workers < 0 {
		return fmt.Errorf("BUILD_WORKERS must not be negative, got %d", c.Features.Workers)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxK < 1 {
		return fmt.Errorf("RECOMMEND_MAX_K must be at least 1, got %d", r.MaxK)
	}
	if r.DefaultK < 1 || r.DefaultK > r.MaxK {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be between 1 and RECOMMEND_MAX_K (%d), got %d", r.MaxK, r.DefaultK)
	}
	if r.CacheSize < 1 {
		return fmt.Errorf("RECOMMEND_CACHE_SIZE must be at least 1, got %d", r.CacheSize)
	}
	if r.BreakerFailures < 1 {
		return fmt.Errorf("ARTIFACT_BREAKER_FAILURES must be at least 1, got %d", r.BreakerFailures)
	}
	if r.BreakerTimeout < time.Second {
		return fmt.Errorf("ARTIFACT_BREAKER_TIMEOUT must be at least 1s, got %v", r.BreakerTimeout)
	}
	if c.Search.CatalogLimit < 1 {
		return fmt.Errorf("SEARCH_CATALOG_LIMIT must be at least 1, got %d", c.Search.CatalogLimit)
	}
	return nil
}

func (c *Config) validateQuality() error {
	if c.Quality.TopK < 1 {
		return fmt.Errorf("QUALITY_TOP_K must be at least 1, got %d", c.Quality.TopK)
	}
	return nil
}

func (c *Config) validateRebuild() error {
	if c.Rebuild.Enabled && c.Rebuild.Interval < time.Minute {
		return fmt.Errorf("REBUILD_INTERVAL must be at least 1m when REBUILD_ENABLED=true, got %v", c.Rebuild.Interval)
	}
	return nil
}

func (c *Config) validateServer() error {
	s := c.Server
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", s.Port)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", s.Timeout)
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %v", s.ShutdownTimeout)
	}
	if !s.RateLimitDisabled {
		if s.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQS must be at least 1, got %d", s.RateLimitReqs)
		}
		if s.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", s.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, disabled; got %q", c.Logging.Level)
	}
	if !slices.Contains(validLogFormats, strings.ToLower(c.Logging.Format)) {
		return fmt.Errorf("LOG_FORMAT must be one of %v, got %q", validLogFormats, c.Logging.Format)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
