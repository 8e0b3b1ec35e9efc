// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package ranking

import (
	"context"

	"github.com/tomtom215/marquee/internal/models"
)

// CatalogGetter looks movies up in the catalog.
type CatalogGetter interface {
	GetByID(ctx context.Context, id int) (models.Movie, bool)
}

// LocalGetter looks movies up in the local store.
type LocalGetter interface {
	Get(ctx context.Context, id int) (models.Movie, error)
}

// Lookup resolves a movie id against the catalog first and the local store
// second.
type Lookup struct {
	catalog CatalogGetter
	local   LocalGetter
}

// NewLookup creates a Lookup. local may be nil.
func NewLookup(catalog CatalogGetter, local LocalGetter) *Lookup {
	return &Lookup{catalog: catalog, local: local}
}

// Get returns the record for id and whether one was found.
func (l *Lookup) Get(ctx context.Context, id int) (models.Movie, bool) {
	if m, ok := l.catalog.GetByID(ctx, id); ok {
		return m, true
	}
	if l.local == nil {
		return models.Movie{}, false
	}
	m, err := l.local.Get(ctx, id)
	if err != nil {
		return models.Movie{}, false
	}
	return m, true
}
