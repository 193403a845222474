// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package viz

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/floatquery/internal/llm"
)

func TestPlotSnippet_RequestShape(t *testing.T) {
	writer := &fakeWriter{reply: "import plotly.graph_objects as go"}
	b := NewBuilder(writer)

	got := b.plotSnippet(context.Background(), [][2]float64{{10, 85.5}, {11, 86}})

	if got != writer.reply {
		t.Errorf("snippet = %q, want gateway reply", got)
	}
	req := writer.lastReq
	if !req.UseCodeModel {
		t.Error("UseCodeModel = false, want true")
	}
	if req.Temperature != 0.1 {
		t.Errorf("Temperature = %v, want 0.1", req.Temperature)
	}
	if req.MaxTokens != 800 {
		t.Errorf("MaxTokens = %d, want 800", req.MaxTokens)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != llm.RoleSystem || req.Messages[1].Role != llm.RoleUser {
		t.Fatalf("Messages = %+v, want system then user", req.Messages)
	}
	if req.Messages[0].Content != "Generate high-quality Python Plotly code for geographic trajectories." {
		t.Errorf("system prompt = %q", req.Messages[0].Content)
	}
	user := req.Messages[1].Content
	if !strings.HasPrefix(user, "You are a Python visualization assistant.") {
		t.Errorf("user prompt prefix = %q", user)
	}
	if !strings.Contains(user, "Coordinates (list of [lat, lon]): [[10,85.5],[11,86]]") {
		t.Errorf("user prompt missing coordinates: %q", user)
	}
	if !strings.Contains(user, "Return ONLY Python code that can be executed as-is (imports included).") {
		t.Errorf("user prompt missing code instruction: %q", user)
	}
}

func TestPlotSnippet_CapsSampleAtHundred(t *testing.T) {
	writer := &fakeWriter{reply: "code"}
	b := NewBuilder(writer)

	coords := make([][2]float64, 101)
	for i := range coords {
		coords[i] = [2]float64{float64(i), float64(i)}
	}
	coords[100] = [2]float64{999, 999}

	b.plotSnippet(context.Background(), coords)

	user := writer.lastReq.Messages[1].Content
	if !strings.Contains(user, "[99,99]") {
		t.Errorf("prompt missing last sampled coordinate: %q", user)
	}
	if strings.Contains(user, "999") {
		t.Errorf("prompt contains coordinate beyond the sample cap: %q", user)
	}
}

func TestPlotSnippet_FallbackOnGatewayError(t *testing.T) {
	b := NewBuilder(&fakeWriter{err: errors.New("providers down")})

	got := b.plotSnippet(context.Background(), [][2]float64{{10, 85.5}})

	want := "import plotly.graph_objects as go\n" +
		"coordinates = [[10,85.5]]\n" +
		"lats = [c[0] for c in coordinates]\n" +
		"lons = [c[1] for c in coordinates]\n" +
		"fig = go.Figure(go.Scattergeo(lat=lats, lon=lons, mode='lines+markers'))\n" +
		"fig.update_layout(geo=dict(showcoastlines=True, showcountries=True))\n" +
		"fig.show()\n"
	if got != want {
		t.Errorf("fallback snippet = %q, want %q", got, want)
	}
}
