// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package localstore

import (
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// badgerLogger routes BadgerDB's internal log lines into zerolog. Badger
// reports compaction and value log housekeeping at info, so those are
// demoted to debug.
type badgerLogger struct {
	logger zerolog.Logger
}

var _ badger.Logger = badgerLogger{}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newBadgerLogger(logger zerolog.Logger) badgerLogger {
	return badgerLogger{logger: logger.With().Str("source", "badger").Logger()}
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(trim(format), args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(trim(format), args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(trim(format), args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(trim(format), args...)
}

// trim drops the trailing newline badger puts on most formats.
func trim(format string) string {
	return strings.TrimRight(format, "\n")
}
