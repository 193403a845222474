// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package pipeline

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/tomtom215/floatquery/internal/coverage"
	"github.com/tomtom215/floatquery/internal/events"
	"github.com/tomtom215/floatquery/internal/history"
	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/metrics"
	"github.com/tomtom215/floatquery/internal/models"
)

// defaultMaxResults applies when the caller passes a non-positive budget.
const defaultMaxResults = 25

// Classifier decides the retrieval route. *classify.Classifier satisfies it.
type Classifier interface {
	Classify(ctx context.Context, query string) models.Classification
}

// CoverageValidator gates queries against the catalog's coverage rectangle.
// *coverage.Validator satisfies it.
type CoverageValidator interface {
	IsCoverageQuery(query string) bool
	Validate(query string) coverage.Validation
	Describe(totalProfiles int64) string
}

// Retriever executes the chosen route. *retrieval.Coordinator satisfies it.
type Retriever interface {
	Retrieve(ctx context.Context, query string, cls models.Classification, maxResults int) (models.RetrievedData, error)
}

// AnswerShaper turns retrieved data into the answer text. *answer.Shaper
// satisfies it.
type AnswerShaper interface {
	Shape(ctx context.Context, query string, cls models.Classification, data models.RetrievedData) (string, error)
}

// VizBuilder produces the map/plot payload. *viz.Builder satisfies it.
type VizBuilder interface {
	Build(ctx context.Context, query string, rows []map[string]any, hits []models.VectorHit) *models.Visualization
}

// ProfileStore is the slice of *database.DB the pipeline touches directly:
// liveness and the stats snapshot backing coverage answers.
type ProfileStore interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (*models.DatabaseStats, error)
}

// HealthChecker probes one dependency. The vector store and the LLM gateway
// both expose this shape.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// Deps wires the pipeline. Classifier through Gateway are required; Journal
// and Events may be nil and default to their disabled implementations.
type Deps struct {
	Classifier Classifier
	Coverage   CoverageValidator
	Retriever  Retriever
	Shaper     AnswerShaper
	Viz        VizBuilder
	Store      ProfileStore
	Vector     HealthChecker
	Gateway    HealthChecker
	Journal    history.Journal
	Events     events.Publisher
}

// Pipeline runs queries end to end. Safe for concurrent use; all state lives
// in the dependencies.
type Pipeline struct {
	classifier Classifier
	coverage   CoverageValidator
	retriever  Retriever
	shaper     AnswerShaper
	viz        VizBuilder
	store      ProfileStore
	vector     HealthChecker
	gateway    HealthChecker
	journal    history.Journal
	events     events.Publisher
}

// New assembles a pipeline from its dependencies.
func New(deps Deps) *Pipeline {
	if deps.Journal == nil {
		deps.Journal = history.Disabled{}
	}
	if deps.Events == nil {
		deps.Events = events.Disabled{}
	}
	return &Pipeline{
		classifier: deps.Classifier,
		coverage:   deps.Coverage,
		retriever:  deps.Retriever,
		shaper:     deps.Shaper,
		viz:        deps.Viz,
		store:      deps.Store,
		vector:     deps.Vector,
		gateway:    deps.Gateway,
		journal:    deps.Journal,
		events:     deps.Events,
	}
}

// forceSQLTokens pin a query to the SQL route at full confidence. Any of
// these words means the user wants concrete data, and concrete data must
// come from executed SQL, not from a vector-grounded prose answer that can
// invent measurements.
var forceSQLTokens = tokenSet(
	"show", "find", "get", "list", "display",
	"float", "data", "profile",
	"temperature", "salinity",
	"trajectory", "trajectories", "location", "coordinates", "map",
	"bay", "ocean", "sea", "equator", "near",
)

// vizTokens trigger the visualization build on top of a shaped answer.
var vizTokens = tokenSet(
	"map", "coordinates", "visualization", "plot", "geojson",
	"trajectory", "trajectories",
)

// Process resolves one query. It always returns a Result: refusals keep
// Success=true with a human message, failures and recovered panics return
// Success=false with an explanatory answer and empty retrieval.
func (p *Pipeline) Process(ctx context.Context, query string, maxResults int) models.Result {
	started := time.Now()
	queryID := uuid.NewString()
	ctx = logging.ContextWithQueryID(ctx, queryID)
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	logging.Ctx(ctx).Info().
		Str("component", "pipeline").
		Str("query", query).
		Int("max_results", maxResults).
		Msg("processing query")

	result, stage, err := p.run(ctx, query, maxResults)
	elapsed := time.Since(started)

	result.Query = query
	result.Metadata.ElapsedMS = elapsed.Milliseconds()
	result.Metadata.Timestamp = time.Now().UTC()

	p.record(ctx, queryID, query, stage, result, elapsed, err)
	return result
}

// run executes the stage order and reports the lifecycle stage the
// invocation ended in. A panic anywhere below becomes a failed Result.
func (p *Pipeline) run(ctx context.Context, query string, maxResults int) (result models.Result, stage string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.Ctx(ctx).Error().
				Str("component", "pipeline").
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Msg("recovered panic while processing query")
			err = fmt.Errorf("panic: %v", r)
			result = errorResult(query, fmt.Sprint(r))
			stage = events.StageFailed
		}
	}()

	cls := p.classifier.Classify(ctx, query)
	metrics.RecordClassification(string(cls.Type), cls.Confidence)

	if p.coverage.IsCoverageQuery(query) {
		return p.coverageInfo(ctx, cls), events.StageRefused, nil
	}

	if val := p.coverage.Validate(query); !val.Valid {
		logging.Ctx(ctx).Info().
			Str("component", "pipeline").
			Strs("unavailable_regions", val.UnavailableRegions).
			Msg("query outside data coverage")
		return models.Result{
			Success:        true,
			Classification: cls,
			Answer:         val.Message,
			Metadata:       models.ResultMetadata{QueryType: cls.Type, Confidence: cls.Confidence},
		}, events.StageRefused, nil
	}

	tokens := queryTokens(query)
	if containsAny(tokens, forceSQLTokens) {
		cls.Type = models.QueryTypeSQL
		cls.Confidence = 1.0
		cls.Reasoning = "Data keyword present - forced to SQL retrieval"
	}

	data, err := p.retriever.Retrieve(ctx, query, cls, maxResults)
	if err != nil {
		logging.CtxErr(ctx, err).Str("component", "pipeline").Msg("retrieval failed")
		return errorResult(query, err.Error()), events.StageFailed, err
	}

	answerText, err := p.shaper.Shape(ctx, query, cls, data)
	if err != nil {
		logging.CtxErr(ctx, err).Str("component", "pipeline").Msg("answer shaping failed")
		return errorResult(query, err.Error()), events.StageFailed, err
	}

	var vizPayload *models.Visualization
	if containsAny(tokens, vizTokens) || data.Method == models.MethodYearComparison {
		vizPayload = p.viz.Build(ctx, query, data.SQLRows, data.VectorHits)
	}

	return models.Result{
		Success:        true,
		Classification: cls,
		Retrieved:      data,
		Answer:         answerText,
		Visualization:  vizPayload,
		Metadata: models.ResultMetadata{
			QueryType:   cls.Type,
			Confidence:  cls.Confidence,
			DataSources: dataSources(data),
			SQLCount:    len(data.SQLRows),
			VectorCount: len(data.VectorHits),
		},
	}, events.StageCompleted, nil
}

// coverageInfo answers a what-do-you-have query from the store snapshot.
func (p *Pipeline) coverageInfo(ctx context.Context, cls models.Classification) models.Result {
	stats, err := p.store.Stats(ctx)
	if err != nil {
		logging.CtxErr(ctx, err).Str("component", "pipeline").Msg("stats snapshot unavailable for coverage answer")
		stats = nil
	}
	var total int64
	if stats != nil {
		total = stats.TotalProfiles
	}
	logging.Ctx(ctx).Info().Str("component", "pipeline").Msg("coverage information short-circuit")
	return models.Result{
		Success:        true,
		Classification: cls,
		Retrieved:      models.RetrievedData{Stats: stats},
		Answer:         p.coverage.Describe(total),
		Metadata:       models.ResultMetadata{QueryType: cls.Type, Confidence: cls.Confidence},
	}
}

// Health probes the three dependencies. The store must answer a ping, the
// vector client its own probe, and the gateway a one-token completion.
func (p *Pipeline) Health(ctx context.Context) models.HealthStatus {
	h := models.HealthStatus{
		Database:    p.store.Ping(ctx) == nil,
		VectorStore: p.vector.Healthy(ctx),
		LLM:         p.gateway.Healthy(ctx),
	}
	h.Overall = h.Database && h.VectorStore && h.LLM
	return h
}

// record emits the per-invocation observability: Prometheus, the history
// journal, the event bus, and a final log line. All best-effort.
func (p *Pipeline) record(ctx context.Context, queryID, query, stage string, res models.Result, elapsed time.Duration, err error) {
	method := res.Retrieved.Method
	if method == "" {
		method = "none"
	}
	metrics.RecordQuery(string(res.Metadata.QueryType), method, elapsed, err)

	appendErr := p.journal.Append(ctx, history.Entry{
		ID:          queryID,
		Query:       query,
		Type:        string(res.Metadata.QueryType),
		Method:      res.Retrieved.Method,
		Confidence:  res.Metadata.Confidence,
		SQLCount:    res.Metadata.SQLCount,
		VectorCount: res.Metadata.VectorCount,
		ElapsedMS:   res.Metadata.ElapsedMS,
		Timestamp:   res.Metadata.Timestamp,
	})
	metrics.RecordHistoryAppend(appendErr)
	if appendErr != nil {
		logging.CtxErr(ctx, appendErr).Str("component", "pipeline").Msg("history append failed")
	}

	p.events.PublishQueryEvent(events.QueryEvent{
		ID:          queryID,
		Query:       query,
		Stage:       stage,
		QueryType:   res.Metadata.QueryType,
		Method:      res.Retrieved.Method,
		Confidence:  res.Metadata.Confidence,
		SQLCount:    res.Metadata.SQLCount,
		VectorCount: res.Metadata.VectorCount,
		ElapsedMS:   res.Metadata.ElapsedMS,
		Timestamp:   res.Metadata.Timestamp,
	})

	logging.Ctx(ctx).Info().
		Str("component", "pipeline").
		Str("stage", stage).
		Str("query_type", string(res.Metadata.QueryType)).
		Str("generation_method", res.Retrieved.Method).
		Bool("success", res.Success).
		Dur("elapsed", elapsed).
		Msg("query resolved")
}

// errorResult is the uniform failure shape: same Result envelope, no
// retrieval, an answer that explains and invites a rephrase.
func errorResult(query, msg string) models.Result {
	return models.Result{
		Success: false,
		Query:   query,
		Classification: models.Classification{
			Type:      models.QueryTypeVector,
			Reasoning: "Error occurred during processing",
		},
		Answer: fmt.Sprintf("I encountered an error while processing your query: %s. Please try rephrasing your question.", msg),
	}
}

// dataSources names what grounded the answer, for the result metadata.
func dataSources(data models.RetrievedData) []string {
	var sources []string
	if len(data.SQLRows) > 0 {
		sources = append(sources, "DuckDB database")
	}
	if len(data.VectorHits) > 0 {
		sources = append(sources, "Vector database (semantic search)")
	}
	return sources
}

// queryTokens lowercases and splits the query on non-alphanumeric runes.
// Token membership, not substring containment: "nearly" must not trip the
// "near" override.
func queryTokens(query string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func containsAny(tokens, wanted map[string]struct{}) bool {
	for t := range wanted {
		if _, ok := tokens[t]; ok {
			return true
		}
	}
	return false
}

func tokenSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
