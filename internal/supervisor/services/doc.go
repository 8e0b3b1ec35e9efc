// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package services adapts Marquee components to suture.Service: the HTTP
// server and the scheduled build, check and reload cycle of the similarity
// artifacts.
package services
