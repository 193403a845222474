// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package vector provides semantic search over ARGO profile summaries.
//
// # Overview
//
// Profile summaries live in a Qdrant collection as embedded documents with a
// payload carrying the profile's identity and position. Search embeds the
// query text through an OpenAI-compatible embeddings endpoint and runs a
// cosine-similarity query against the collection; results come back as
// models.VectorHit values with the summary text, the payload flattened to
// string metadata, and Distance = 1 - score.
//
// # Components
//
//   - Store: the two-method contract the retrieval layer consumes
//   - Qdrant: production implementation (qdrant go-client over gRPC)
//   - Disabled: no-op used when semantic search is turned off
//
// # Usage
//
//	store, err := vector.NewQdrant(cfg.Vector)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	hits, err := store.Search(ctx, "warm saline water near the equator", 5)
//
// # Degraded Mode
//
// With vector search disabled, the pipeline constructs Disabled instead:
// every search returns no hits and health reports true, so a deliberately
// absent component never fails readiness.
package vector
