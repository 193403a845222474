// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/floatquery/internal/models"
)

// ErrUnparsableClassification means the model's reply did not contain the
// expected JSON object. Callers fall back to rule-based classification.
var ErrUnparsableClassification = errors.New("llm: unparsable classification response")

// classifySystemPrompt instructs the model to route a query and extract
// entities as JSON. The category names and entity keys are load-bearing:
// the parser below and downstream packages key on them.
const classifySystemPrompt = `You are an expert system for classifying oceanographic data queries for ARGO float data.

ARGO floats collect oceanographic data including:
- Temperature and salinity profiles
- Biogeochemical (BGC) parameters: dissolved oxygen, pH, nitrate, chlorophyll-a
- Geographic location and temporal data
- Float metadata and deployment information

ENTITY EXTRACTION - Extract ALL relevant terms:
- Geographic: "Bay of Bengal", "equatorial Pacific", "Arabian Sea", "equator"
- Parameters: "temperature", "salinity", "trajectories", "anomaly"
- Temporal: "2022", "2023", "between 2022 and 2023"
- Profile IDs: "profile 1902681", "profile number 1902681"
- Float IDs: "float 1902681", "ARGO float 1902681"

Examples:
- "Show profile 1902681 trajectories" → sql_retrieval, extract profile_id: "1902681"
- "Float 1234567 temperature data" → sql_retrieval, extract float_id: "1234567"

Classify the user query into one of these categories:

1. **sql_retrieval**: Queries requesting specific data filtering, aggregation, or structured data extraction
   - Examples: "Show me salinity profiles near the equator in March 2023"
   - "What are the temperature readings for float 7900617?"
   - "Find profiles with dissolved oxygen > 5 mg/L"

2. **vector_retrieval**: Queries asking for patterns, summaries, or conceptual information
   - Examples: "Summarize ocean warming patterns in the Indian Ocean"
   - "What are the general characteristics of BGC data in the Arabian Sea?"
   - "Describe seasonal variations in chlorophyll levels"

3. **hybrid_retrieval**: Complex queries requiring both structured data and semantic understanding
   - Examples: "Compare BGC parameters in the Arabian Sea for the last 6 months"
   - "Analyze temperature trends near major ocean currents"
   - "What can you tell me about recent changes in the Southern Ocean?"

Respond with JSON format:
{
  "query_type": "sql_retrieval|vector_retrieval|hybrid_retrieval",
  "confidence": 0.8,
  "reasoning": "Brief explanation of classification",
  "extracted_entities": {
    "parameters": ["temperature", "salinity"],
    "locations": ["equator", "Arabian Sea"],
    "dates": ["March 2023", "last 6 months"],
    "float_ids": ["7900617"],
    "regions": ["Indian Ocean"]
  }
}`

// classificationWire is the JSON shape the classifier prompt requests.
type classificationWire struct {
	QueryType         string  `json:"query_type"`
	Confidence        float64 `json:"confidence"`
	Reasoning         string  `json:"reasoning"`
	ExtractedEntities struct {
		Parameters []string `json:"parameters"`
		Locations  []string `json:"locations"`
		Dates      []string `json:"dates"`
		FloatIDs   []string `json:"float_ids"`
		ProfileIDs []string `json:"profile_ids"`
		Regions    []string `json:"regions"`
	} `json:"extracted_entities"`
}

// ClassifyQuery asks the model to route the query. The reply must contain a
// JSON object per the prompt contract; anything else returns
// ErrUnparsableClassification so the caller can fall back to rules.
func (g *Gateway) ClassifyQuery(ctx context.Context, query string) (models.Classification, error) {
	text, err := g.Complete(ctx, Request{
		Messages: []Message{
			{Role: RoleSystem, Content: classifySystemPrompt},
			{Role: RoleUser, Content: "Classify this oceanographic query: " + query},
		},
		Temperature: 0.1,
		MaxTokens:   g.cfg.MaxTokens,
	})
	if err != nil {
		return models.Classification{}, err
	}
	return parseClassification(text)
}

func parseClassification(text string) (models.Classification, error) {
	raw, ok := extractJSONObject(text)
	if !ok {
		return models.Classification{}, ErrUnparsableClassification
	}

	var wire classificationWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return models.Classification{}, fmt.Errorf("%w: %v", ErrUnparsableClassification, err)
	}

	qt, err := queryTypeFromWire(wire.QueryType)
	if err != nil {
		return models.Classification{}, err
	}

	// The prompt splits places into locations and regions; the pipeline
	// treats both as regions.
	entities := models.ExtractedEntities{
		Parameters: wire.ExtractedEntities.Parameters,
		Regions:    wire.ExtractedEntities.Locations,
		DateRanges: wire.ExtractedEntities.Dates,
		FloatIDs:   wire.ExtractedEntities.FloatIDs,
		ProfileIDs: wire.ExtractedEntities.ProfileIDs,
	}.Merge(models.ExtractedEntities{Regions: wire.ExtractedEntities.Regions})

	return models.Classification{
		Type:       qt,
		Confidence: wire.Confidence,
		Reasoning:  wire.Reasoning,
		Entities:   entities,
	}, nil
}

func queryTypeFromWire(s string) (models.QueryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sql_retrieval", "sql":
		return models.QueryTypeSQL, nil
	case "vector_retrieval", "vector":
		return models.QueryTypeVector, nil
	case "hybrid_retrieval", "hybrid":
		return models.QueryTypeHybrid, nil
	default:
		return "", fmt.Errorf("%w: unknown query_type %q", ErrUnparsableClassification, s)
	}
}

// extractJSONObject returns the outermost {...} span of text, tolerating
// code fences and prose around the object.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
