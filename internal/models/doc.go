// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines the data structures shared by the Marquee packages.

Key Components:

  - Movie: a catalog or locally stored movie record
  - Source: catalog or user_added provenance marker
  - LikedSet / AnnotatedMovie: caller-supplied like state and the annotated view
  - APIResponse: standardized HTTP response envelope

Movies handed out by the catalog are snapshots; callers must treat them as
read-only and use Clone before mutating.
*/
package models
