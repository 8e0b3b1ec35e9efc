// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package features builds the content-based similarity model.

Each dataset row is reduced to one cleaned text (genres, keywords, overview,
production companies and countries), vectorized with TF-IDF and compared
pairwise with cosine similarity. The resulting matrix and the row-to-movie
table are written with the artifact package.

# Pipeline

	b := features.NewBuilder(features.Config{
		DatasetPath: "data/tmdb_5000_movies.csv",
		ArtifactDir: "data/models",
	}, logger)
	report, err := b.Run(ctx)

The matrix is computed in row blocks on an errgroup and honours ctx
cancellation. Output is deterministic for a fixed dataset and MaxFeatures.
*/
package features
