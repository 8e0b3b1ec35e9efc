// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

//go:generate swag init -g cmd/server/docs.go -d ../.. -o ../../docs --parseInternal

// @title Marquee API
// @version 1.0
// @description Movie catalog listings, title search and content-based recommendations.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "VALIDATION_ERROR",
// @description     "message": "k must be at most 100",
// @description     "details": {"fields": [{"field": "k", "tag": "max", "param": "100", "message": "k must be at most 100"}]}
// @description   },
// @description   "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/marquee/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Health
// @tag.description Liveness and readiness checks
//
// @tag.name Movies
// @tag.description Catalog listings, movie lookup and title search
//
// @tag.name Recommendations
// @tag.description Content-based similar movie recommendations
