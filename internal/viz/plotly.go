// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package viz

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/floatquery/internal/llm"
	"github.com/tomtom215/floatquery/internal/logging"
)

// plotSampleLimit caps the coordinates embedded in the code-generation
// prompt and in the fallback template.
const plotSampleLimit = 100

const plotSystemPrompt = "Generate high-quality Python Plotly code for geographic trajectories."

const plotUserPrompt = `You are a Python visualization assistant. Generate standalone Plotly code that creates an interactive map with a trajectory polyline from given latitude/longitude pairs. Use scattergeo with mode='lines+markers', center view to the mean coordinate, and add coastline. Input coordinates are a Python list of [lat, lon].

Coordinates (list of [lat, lon]): %s

Return ONLY Python code that can be executed as-is (imports included).`

// plotSnippet asks the code model for a scattergeo rendering of the
// trajectory. Any gateway failure degrades to a deterministic template
// over the same coordinate sample.
func (b *Builder) plotSnippet(ctx context.Context, coords [][2]float64) string {
	sample := coords
	if len(sample) > plotSampleLimit {
		sample = sample[:plotSampleLimit]
	}
	encoded, err := json.Marshal(sample)
	if err != nil {
		encoded = []byte("[]")
	}

	code, err := b.writer.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: plotSystemPrompt},
			{Role: llm.RoleUser, Content: fmt.Sprintf(plotUserPrompt, encoded)},
		},
		Temperature:  0.1,
		MaxTokens:    800,
		UseCodeModel: true,
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Code generation failed, using fallback template")
		return fallbackPlotSnippet(encoded)
	}
	return code
}

// fallbackPlotSnippet is the hand-built scattergeo script used when the
// gateway cannot produce one.
func fallbackPlotSnippet(encoded []byte) string {
	return "import plotly.graph_objects as go\n" +
		"coordinates = " + string(encoded) + "\n" +
		"lats = [c[0] for c in coordinates]\n" +
		"lons = [c[1] for c in coordinates]\n" +
		"fig = go.Figure(go.Scattergeo(lat=lats, lon=lons, mode='lines+markers'))\n" +
		"fig.update_layout(geo=dict(showcoastlines=True, showcountries=True))\n" +
		"fig.show()\n"
}
