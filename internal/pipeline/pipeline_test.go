// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/floatquery/internal/coverage"
	"github.com/tomtom215/floatquery/internal/events"
	"github.com/tomtom215/floatquery/internal/history"
	"github.com/tomtom215/floatquery/internal/models"
)

type fakeClassifier struct {
	cls     models.Classification
	panicOn bool
}

func (f *fakeClassifier) Classify(context.Context, string) models.Classification {
	if f.panicOn {
		panic("classifier exploded")
	}
	return f.cls
}

type fakeCoverage struct {
	isCoverage bool
	validation coverage.Validation
	describe   string
}

func (f *fakeCoverage) IsCoverageQuery(string) bool         { return f.isCoverage }
func (f *fakeCoverage) Validate(string) coverage.Validation { return f.validation }
func (f *fakeCoverage) Describe(totalProfiles int64) string { return f.describe }

type fakeRetriever struct {
	data   models.RetrievedData
	err    error
	gotCls *models.Classification
	gotMax int
	called bool
}

func (f *fakeRetriever) Retrieve(_ context.Context, _ string, cls models.Classification, maxResults int) (models.RetrievedData, error) {
	f.called = true
	f.gotCls = &cls
	f.gotMax = maxResults
	return f.data, f.err
}

type fakeShaper struct {
	answer string
	err    error
}

func (f *fakeShaper) Shape(context.Context, string, models.Classification, models.RetrievedData) (string, error) {
	return f.answer, f.err
}

type fakeViz struct {
	called  bool
	payload *models.Visualization
}

func (f *fakeViz) Build(context.Context, string, []map[string]any, []models.VectorHit) *models.Visualization {
	f.called = true
	return f.payload
}

type fakeStore struct {
	pingErr  error
	stats    *models.DatabaseStats
	statsErr error
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }
func (f *fakeStore) Stats(context.Context) (*models.DatabaseStats, error) {
	return f.stats, f.statsErr
}

type fakeHealth struct{ healthy bool }

func (f *fakeHealth) Healthy(context.Context) bool { return f.healthy }

type fakeJournal struct {
	history.Disabled
	entries []history.Entry
	err     error
}

func (f *fakeJournal) Append(_ context.Context, e history.Entry) error {
	f.entries = append(f.entries, e)
	return f.err
}

type fakePublisher struct {
	published []events.QueryEvent
}

func (f *fakePublisher) PublishQueryEvent(e events.QueryEvent) {
	f.published = append(f.published, e)
}
func (f *fakePublisher) Close() error { return nil }

// testDeps returns a pipeline wired with benign fakes, plus the fakes for
// inspection. Individual tests override what they need.
func testDeps() (Deps, *fakeRetriever, *fakeViz, *fakeJournal, *fakePublisher) {
	ret := &fakeRetriever{data: models.RetrievedData{
		SQLRows: []map[string]any{{"float_id": "1902055"}},
		SQLText: "SELECT 1",
		Method:  models.MethodIntelligentLLM,
	}}
	viz := &fakeViz{payload: &models.Visualization{Coordinates: [][2]float64{{-0.5, 67.2}}}}
	journal := &fakeJournal{}
	pub := &fakePublisher{}
	deps := Deps{
		Classifier: &fakeClassifier{cls: models.Classification{Type: models.QueryTypeVector, Confidence: 0.6}},
		Coverage:   &fakeCoverage{validation: coverage.Validation{Valid: true}},
		Retriever:  ret,
		Shaper:     &fakeShaper{answer: "Found 1 profile."},
		Viz:        viz,
		Store:      &fakeStore{stats: &models.DatabaseStats{TotalFloats: 1800, TotalProfiles: 122215}},
		Vector:     &fakeHealth{healthy: true},
		Gateway:    &fakeHealth{healthy: true},
		Journal:    journal,
		Events:     pub,
	}
	return deps, ret, viz, journal, pub
}

func TestProcess_HappyPath(t *testing.T) {
	deps, ret, _, journal, pub := testDeps()
	p := New(deps)

	res := p.Process(context.Background(), "how many profiles in 2023", 10)

	if !res.Success {
		t.Fatalf("Success = false, want true")
	}
	if res.Answer != "Found 1 profile." {
		t.Errorf("Answer = %q", res.Answer)
	}
	if !ret.called || ret.gotMax != 10 {
		t.Errorf("retriever called=%v max=%d, want called with 10", ret.called, ret.gotMax)
	}
	if res.Metadata.SQLCount != 1 || res.Metadata.VectorCount != 0 {
		t.Errorf("counts = %d/%d, want 1/0", res.Metadata.SQLCount, res.Metadata.VectorCount)
	}
	if len(res.Metadata.DataSources) != 1 || res.Metadata.DataSources[0] != "DuckDB database" {
		t.Errorf("DataSources = %v", res.Metadata.DataSources)
	}
	if res.Metadata.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
	if len(journal.entries) != 1 {
		t.Fatalf("journal entries = %d, want 1", len(journal.entries))
	}
	if journal.entries[0].ID == "" || journal.entries[0].Query != "how many profiles in 2023" {
		t.Errorf("journal entry = %+v", journal.entries[0])
	}
	if len(pub.published) != 1 || pub.published[0].Stage != events.StageCompleted {
		t.Errorf("published = %+v, want one completed event", pub.published)
	}
	if pub.published[0].ID != journal.entries[0].ID {
		t.Error("event and journal entry should share the query ID")
	}
}

func TestProcess_ForceOverridePinsSQL(t *testing.T) {
	// Vector-leaning classification, but the query names concrete data.
	deps, ret, _, _, _ := testDeps()
	p := New(deps)

	p.Process(context.Background(), "tell me about salinity patterns", 5)

	if ret.gotCls.Type != models.QueryTypeSQL {
		t.Errorf("retriever saw type %s, want %s", ret.gotCls.Type, models.QueryTypeSQL)
	}
	if ret.gotCls.Confidence != 1.0 {
		t.Errorf("retriever saw confidence %v, want 1.0", ret.gotCls.Confidence)
	}
}

func TestProcess_ForceOverrideEveryToken(t *testing.T) {
	for _, token := range []string{
		"show", "find", "get", "list", "display", "float", "data", "profile",
		"temperature", "salinity", "trajectory", "trajectories", "location",
		"coordinates", "map", "bay", "ocean", "sea", "equator", "near",
	} {
		deps, ret, _, _, _ := testDeps()
		p := New(deps)
		p.Process(context.Background(), "please "+token+" something", 5)
		if ret.gotCls.Type != models.QueryTypeSQL || ret.gotCls.Confidence != 1.0 {
			t.Errorf("token %q did not force SQL at 1.0 (got %s/%v)", token, ret.gotCls.Type, ret.gotCls.Confidence)
		}
	}
}

func TestProcess_TokenMatchNotSubstring(t *testing.T) {
	// "nearly" contains "near" but is not the token "near".
	deps, ret, _, _, _ := testDeps()
	p := New(deps)

	p.Process(context.Background(), "nearly done with my thesis", 5)

	if ret.gotCls.Type != models.QueryTypeVector {
		t.Errorf("classification was overridden by a substring: %s", ret.gotCls.Type)
	}
	if ret.gotCls.Confidence != 0.6 {
		t.Errorf("confidence changed: %v", ret.gotCls.Confidence)
	}
}

func TestProcess_CoverageInfoShortCircuit(t *testing.T) {
	deps, ret, _, _, pub := testDeps()
	deps.Coverage = &fakeCoverage{
		isCoverage: true,
		describe:   "The data store covers the Indian Ocean with 122,215 profiles.",
	}
	p := New(deps)

	res := p.Process(context.Background(), "what data do you have", 5)

	if !res.Success {
		t.Error("coverage info should be a successful result")
	}
	if !strings.Contains(res.Answer, "Indian Ocean") {
		t.Errorf("Answer = %q", res.Answer)
	}
	if ret.called {
		t.Error("retriever must not run for coverage-info queries")
	}
	if res.Retrieved.Stats == nil || res.Retrieved.Stats.TotalProfiles != 122215 {
		t.Errorf("Stats = %+v, want store snapshot", res.Retrieved.Stats)
	}
	if len(pub.published) != 1 || pub.published[0].Stage != events.StageRefused {
		t.Errorf("published = %+v, want refused event", pub.published)
	}
}

func TestProcess_CoverageRefusal(t *testing.T) {
	deps, ret, _, _, pub := testDeps()
	deps.Coverage = &fakeCoverage{validation: coverage.Validation{
		Valid:              false,
		UnavailableRegions: []string{"atlantic ocean"},
		Message:            "No data for the Atlantic Ocean. Coverage is limited to the Indian Ocean.",
	}}
	p := New(deps)

	res := p.Process(context.Background(), "temperature in the Atlantic Ocean", 5)

	if !res.Success {
		t.Error("refusal keeps the successful result shape")
	}
	if !strings.Contains(res.Answer, "Atlantic") {
		t.Errorf("Answer = %q, want the validator's message", res.Answer)
	}
	if ret.called {
		t.Error("no SQL may execute for a refused query")
	}
	if !res.Retrieved.IsEmpty() {
		t.Error("refusal must carry empty retrieval")
	}
	if len(pub.published) != 1 || pub.published[0].Stage != events.StageRefused {
		t.Errorf("published = %+v, want refused event", pub.published)
	}
}

func TestProcess_RetrievalError(t *testing.T) {
	deps, _, _, _, pub := testDeps()
	deps.Retriever = &fakeRetriever{err: errors.New("database connection lost")}
	p := New(deps)

	res := p.Process(context.Background(), "show floats near the equator", 5)

	if res.Success {
		t.Error("Success = true, want false")
	}
	if !strings.Contains(res.Answer, "database connection lost") {
		t.Errorf("Answer = %q, want the error explained", res.Answer)
	}
	if !res.Retrieved.IsEmpty() {
		t.Error("error result must carry empty retrieval")
	}
	if res.Query != "show floats near the equator" {
		t.Errorf("Query = %q", res.Query)
	}
	if len(pub.published) != 1 || pub.published[0].Stage != events.StageFailed {
		t.Errorf("published = %+v, want failed event", pub.published)
	}
}

func TestProcess_ShapeError(t *testing.T) {
	deps, _, _, _, _ := testDeps()
	deps.Shaper = &fakeShaper{err: errors.New("model unavailable")}
	p := New(deps)

	res := p.Process(context.Background(), "show me float 1902055", 5)

	if res.Success {
		t.Error("Success = true, want false")
	}
	if !strings.Contains(res.Answer, "model unavailable") {
		t.Errorf("Answer = %q", res.Answer)
	}
}

func TestProcess_PanicRecovered(t *testing.T) {
	deps, _, _, _, pub := testDeps()
	deps.Classifier = &fakeClassifier{panicOn: true}
	p := New(deps)

	res := p.Process(context.Background(), "anything", 5)

	if res.Success {
		t.Error("Success = true, want false")
	}
	if !strings.Contains(res.Answer, "classifier exploded") {
		t.Errorf("Answer = %q, want the panic message", res.Answer)
	}
	if len(pub.published) != 1 || pub.published[0].Stage != events.StageFailed {
		t.Errorf("published = %+v, want failed event", pub.published)
	}
}

func TestProcess_VizTriggers(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		method string
		want   bool
	}{
		{"map token", "show floats on a map", models.MethodIntelligentLLM, true},
		{"trajectory token", "trajectory of float 1902055", models.MethodIntelligentLLM, true},
		{"geojson token", "give me geojson for the region", models.MethodIntelligentLLM, true},
		{"year comparison method", "compare 2022 and 2023 data", models.MethodYearComparison, true},
		{"plain query", "how many profiles exist", models.MethodYearCount, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, ret, viz, _, _ := testDeps()
			ret.data.Method = tt.method
			p := New(deps)

			res := p.Process(context.Background(), tt.query, 5)

			if viz.called != tt.want {
				t.Errorf("viz called = %v, want %v", viz.called, tt.want)
			}
			if tt.want && res.Visualization == nil {
				t.Error("Visualization not attached")
			}
			if !tt.want && res.Visualization != nil {
				t.Error("Visualization attached without a trigger")
			}
		})
	}
}

func TestProcess_DefaultsMaxResults(t *testing.T) {
	deps, ret, _, _, _ := testDeps()
	p := New(deps)

	p.Process(context.Background(), "how many profiles", 0)

	if ret.gotMax != defaultMaxResults {
		t.Errorf("maxResults = %d, want %d", ret.gotMax, defaultMaxResults)
	}
}

func TestProcess_JournalFailureDoesNotFailQuery(t *testing.T) {
	deps, _, _, journal, _ := testDeps()
	journal.err = errors.New("badger closed")
	p := New(deps)

	res := p.Process(context.Background(), "how many profiles", 5)

	if !res.Success {
		t.Error("a journal failure must not fail the query")
	}
}

func TestNew_NilJournalAndEventsDefaultToDisabled(t *testing.T) {
	deps, _, _, _, _ := testDeps()
	deps.Journal = nil
	deps.Events = nil
	p := New(deps)

	// Must not panic on the nil collaborators.
	res := p.Process(context.Background(), "how many profiles", 5)
	if !res.Success {
		t.Error("Success = false")
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		vector  bool
		llm     bool
		overall bool
	}{
		{"all healthy", nil, true, true, true},
		{"store down", errors.New("closed"), true, true, false},
		{"vector down", nil, false, true, false},
		{"gateway down", nil, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _, _, _, _ := testDeps()
			deps.Store = &fakeStore{pingErr: tt.pingErr}
			deps.Vector = &fakeHealth{healthy: tt.vector}
			deps.Gateway = &fakeHealth{healthy: tt.llm}
			p := New(deps)

			h := p.Health(context.Background())

			if h.Database != (tt.pingErr == nil) || h.VectorStore != tt.vector || h.LLM != tt.llm {
				t.Errorf("Health = %+v", h)
			}
			if h.Overall != tt.overall {
				t.Errorf("Overall = %v, want %v", h.Overall, tt.overall)
			}
		})
	}
}

func TestQueryTokens(t *testing.T) {
	tokens := queryTokens("Show me the floats, near 10N/75E!")
	for _, want := range []string{"show", "me", "the", "floats", "near", "10n", "75e"} {
		if _, ok := tokens[want]; !ok {
			t.Errorf("missing token %q in %v", want, tokens)
		}
	}
	if _, ok := tokens["near 10n"]; ok {
		t.Error("tokens must be single words")
	}
}
