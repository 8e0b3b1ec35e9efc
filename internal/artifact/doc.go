// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package artifact persists the similarity model produced by the feature builder.

A model is two files written to one directory:

	movies.msgpack      columnar row -> (movie id, title) table
	similarity.msgpack  row-major N x N float32 cosine similarity matrix

Both files carry the same build id. Write replaces each file atomically
(temp file, fsync, rename), matrix first and titles last. Read refuses a pair
whose build ids differ, so a reader racing a rebuild sees ErrBuildMismatch
rather than a titles table from one build joined to a matrix from another.

Usage:

	set := artifact.NewSet(ids, titles, n, data)
	if err := artifact.Write(dir, set); err != nil {
	    return err
	}

	loaded, err := artifact.Read(dir)
	switch {
	case errors.Is(err, artifact.ErrNotFound):
	    // nothing built yet
	case err != nil:
	    // corrupt or mid-rebuild
	}
*/
package artifact
