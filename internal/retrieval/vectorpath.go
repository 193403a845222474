// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package retrieval

import (
	"context"
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"github.com/tomtom215/floatquery/internal/catalog"
	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/models"
)

// supplementalLimit bounds each follow-up search for an extracted
// parameter or region.
const supplementalLimit = 5

// vectorRetrieve runs semantic search with the geographic post-filter and
// supplemental entity searches. The note is non-empty only when the tight
// region filter emptied the results and the broader rectangle rescued them.
func (c *Coordinator) vectorRetrieve(ctx context.Context, query string, entities models.ExtractedEntities, maxResults int) ([]models.VectorHit, string, error) {
	hits, err := c.search.Search(ctx, query, maxResults)
	if err != nil {
		return nil, "", fmt.Errorf("semantic search: %w", err)
	}

	hits, note := filterByQueryRegion(ctx, query, hits)
	hits = append(hits, c.supplementalHits(ctx, entities)...)

	unique := lo.UniqBy(hits, func(h models.VectorHit) string { return h.ID })
	if len(unique) > maxResults {
		unique = unique[:maxResults]
	}
	return unique, note, nil
}

// filterByQueryRegion drops hits outside the rectangle of the region the
// query names. Hits without parseable coordinates always survive the tight
// pass. When the tight rectangle eliminates everything and the query names
// the region canonically, the broader rectangle gets a second pass over the
// original hits and the note records the widening.
func filterByQueryRegion(ctx context.Context, query string, hits []models.VectorHit) ([]models.VectorHit, string) {
	region, ok := catalog.MatchRegion(query)
	if !ok || len(hits) == 0 {
		return hits, ""
	}

	filtered := withinBounds(hits, region.Bounds)
	logging.Ctx(ctx).Debug().
		Str("component", "retrieval").
		Str("region", region.Name).
		Int("before", len(hits)).
		Int("after", len(filtered)).
		Msg("Geographic post-filter applied")
	if len(filtered) > 0 {
		return filtered, ""
	}

	broad, ok := catalog.BroaderFor(query)
	if !ok {
		return filtered, ""
	}
	widened := withinBounds(hits, broad.Bounds)
	if len(widened) == 0 {
		return widened, ""
	}
	logging.Ctx(ctx).Info().
		Str("component", "retrieval").
		Str("region", region.Name).
		Str("broadened_to", broad.Name).
		Int("rescued", len(widened)).
		Msg("Tight region filter emptied results, widened the rectangle")
	return widened, fmt.Sprintf("Using %s (no specific data found in requested region)", broad.Name)
}

func withinBounds(hits []models.VectorHit, bounds catalog.Rect) []models.VectorHit {
	kept := make([]models.VectorHit, 0, len(hits))
	for _, h := range hits {
		lat, lon, ok := hitCoordinates(h)
		if !ok || bounds.Contains(lat, lon) {
			kept = append(kept, h)
		}
	}
	return kept
}

// hitCoordinates parses the position a hit carries in its metadata.
func hitCoordinates(h models.VectorHit) (lat, lon float64, ok bool) {
	latText, okLat := h.Metadata["latitude"]
	lonText, okLon := h.Metadata["longitude"]
	if !okLat || !okLon {
		return 0, 0, false
	}

	lat, errLat := strconv.ParseFloat(latText, 64)
	lon, errLon := strconv.ParseFloat(lonText, 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// supplementalHits runs small follow-up searches for each extracted
// parameter and region. Failures are logged and skipped; supplements never
// sink a retrieval.
func (c *Coordinator) supplementalHits(ctx context.Context, entities models.ExtractedEntities) []models.VectorHit {
	var extra []models.VectorHit
	for _, param := range entities.Parameters {
		more, err := c.search.Search(ctx, param+" measurements", supplementalLimit)
		if err != nil {
			logging.Ctx(ctx).Debug().
				Err(err).
				Str("component", "retrieval").
				Str("parameter", param).
				Msg("Supplemental parameter search failed")
			continue
		}
		extra = append(extra, more...)
	}
	for _, region := range entities.Regions {
		more, err := c.search.Search(ctx, "ARGO float profiles in "+region, supplementalLimit)
		if err != nil {
			logging.Ctx(ctx).Debug().
				Err(err).
				Str("component", "retrieval").
				Str("region", region).
				Msg("Supplemental region search failed")
			continue
		}
		extra = append(extra, more...)
	}
	return extra
}
