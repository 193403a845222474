// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package vector

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/tomtom215/floatquery/internal/config"
)

// ErrNoEmbedding means the embeddings endpoint answered without a vector.
var ErrNoEmbedding = errors.New("vector: embeddings response carried no vector")

// embedder turns query text into the vector the store was indexed with.
type embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// openAIEmbedder calls any OpenAI-compatible embeddings endpoint. The base
// URL override points it at a local model server in self-hosted setups.
type openAIEmbedder struct {
	client openai.Client
	model  string
}

func newOpenAIEmbedder(cfg config.EmbeddingsConfig) *openAIEmbedder {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &openAIEmbedder{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

func (e *openAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings request: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, ErrNoEmbedding
	}

	raw := resp.Data[0].Embedding
	vec := make([]float32, len(raw))
	for i, v := range raw {
		vec[i] = float32(v)
	}
	return vec, nil
}
