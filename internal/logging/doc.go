// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package logging provides centralized zerolog-based logging for Marquee.

# Quick Start

	logging.Init(logging.Config{Level: "info", Format: "json"})

	logging.Info().Msg("Server starting")
	logging.Error().Err(err).Msg("Failed to open local store")

Components take a zerolog.Logger in their constructors and derive a
component logger from it:

	logger = logger.With().Str("component", "similarity").Logger()

# Context Propagation

The HTTP layer stores a request ID in the request context and pipeline runs
store a correlation ID. Enrich adds both to a component logger when present:

	logging.Enrich(ctx, s.logger).Info().Str("query", q).Msg("Search served")

# slog Bridge

SlogHandler adapts zerolog to slog.Handler for libraries that only accept
*slog.Logger, such as sutureslog.

# Best Practices

Always terminate log chains with .Msg() or .Send():

	logging.Info().Str("key", "value").Msg("message")  // Correct
	logging.Info().Str("key", "value")                 // WRONG - log not emitted
*/
package logging
