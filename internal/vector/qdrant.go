// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package vector

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"github.com/tomtom215/floatquery/internal/config"
	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/metrics"
	"github.com/tomtom215/floatquery/internal/models"
)

const (
	// defaultSearchLimit bounds a search when the caller passes no limit.
	defaultSearchLimit = 5

	// healthTimeout caps the reachability probe.
	healthTimeout = 5 * time.Second

	// payloadKeySummary holds the embedded document text; every other
	// payload key flattens into VectorHit.Metadata.
	payloadKeySummary = "summary"
)

// pointQuerier is the slice of the qdrant client the store uses. Tests
// substitute a stub; production passes *qdrant.Client.
type pointQuerier interface {
	Query(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	HealthCheck(ctx context.Context) (*qdrant.HealthCheckReply, error)
}

// Qdrant is the production Store: query text is embedded and matched
// against a collection of profile summaries by cosine similarity.
// Safe for concurrent use.
type Qdrant struct {
	client     pointQuerier
	embedder   embedder
	collection string
	closeFn    func() error
}

// NewQdrant connects to the configured Qdrant instance. The connection is
// lazy on the gRPC side; reachability surfaces on first use and through
// Healthy.
func NewQdrant(cfg config.VectorConfig) (*Qdrant, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant client: %w", err)
	}

	logging.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("collection", cfg.Collection).
		Str("embedding_model", cfg.Embeddings.Model).
		Msg("Vector store configured")

	return &Qdrant{
		client:     client,
		embedder:   newOpenAIEmbedder(cfg.Embeddings),
		collection: cfg.Collection,
		closeFn:    client.Close,
	}, nil
}

// Search embeds text and returns the closest profile summaries, best match
// first.
func (s *Qdrant) Search(ctx context.Context, text string, limit int) ([]models.VectorHit, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	start := time.Now()
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vec...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	metrics.RecordVectorSearch("search", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	hits := make([]models.VectorHit, 0, len(points))
	for _, p := range points {
		hits = append(hits, hitFromPoint(p))
	}
	return hits, nil
}

// Healthy reports whether the Qdrant instance answers a health check.
func (s *Qdrant) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	start := time.Now()
	_, err := s.client.HealthCheck(ctx)
	metrics.RecordVectorSearch("health", time.Since(start), err)
	if err != nil {
		logging.Debug().Err(err).Msg("Vector store health check failed")
	}
	return err == nil
}

// Close releases the underlying gRPC connection.
func (s *Qdrant) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// hitFromPoint flattens a scored point into the pipeline's hit shape. The
// summary payload key becomes the document text; everything else is
// stringified metadata. Cosine similarity converts to a distance so lower
// stays better throughout the pipeline.
func hitFromPoint(p *qdrant.ScoredPoint) models.VectorHit {
	hit := models.VectorHit{
		ID:       pointIDString(p.GetId()),
		Distance: 1 - float64(p.GetScore()),
	}

	payload := p.GetPayload()
	if len(payload) == 0 {
		return hit
	}

	hit.Metadata = make(map[string]string, len(payload))
	for key, val := range payload {
		s := payloadString(val)
		if key == payloadKeySummary {
			hit.Document = s
			continue
		}
		hit.Metadata[key] = s
	}
	return hit
}

func pointIDString(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if u := id.GetUuid(); u != "" {
		return u
	}
	return strconv.FormatUint(id.GetNum(), 10)
}

// payloadString renders a payload value as text. Nested structures are not
// used by the summary collection and render empty.
func payloadString(v *qdrant.Value) string {
	if v == nil {
		return ""
	}
	switch k := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return k.StringValue
	case *qdrant.Value_DoubleValue:
		return strconv.FormatFloat(k.DoubleValue, 'f', -1, 64)
	case *qdrant.Value_IntegerValue:
		return strconv.FormatInt(k.IntegerValue, 10)
	case *qdrant.Value_BoolValue:
		return strconv.FormatBool(k.BoolValue)
	default:
		return ""
	}
}
