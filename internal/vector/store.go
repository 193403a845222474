// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package vector

import (
	"context"

	"github.com/tomtom215/floatquery/internal/models"
)

// Store is the semantic-search contract consumed by the retrieval layer.
type Store interface {
	// Search embeds text and returns the closest profile summaries,
	// best match first. A non-positive limit takes the default.
	Search(ctx context.Context, text string, limit int) ([]models.VectorHit, error)

	// Healthy reports whether the backing store is reachable.
	Healthy(ctx context.Context) bool
}

// Disabled is the Store used when semantic search is turned off. Search
// returns no hits and Healthy reports true: an intentionally absent
// component is not a failure.
type Disabled struct{}

// Search always returns no hits.
func (Disabled) Search(context.Context, string, int) ([]models.VectorHit, error) {
	return nil, nil
}

// Healthy always reports true.
func (Disabled) Healthy(context.Context) bool { return true }
