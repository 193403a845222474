// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

/*
Package pipeline orchestrates one natural-language query from text to Result.

Process runs the fixed stage order: classify, coverage short-circuits, the
SQL force override, retrieval, answer shaping, and an optional visualization
build, then assembles the single Result shape callers consume. The pipeline
never returns an error: refusals are successful Results carrying a human
message, and failures (including recovered panics) become Results with
Success=false and an explanatory answer.

Two short-circuits run before any retrieval:

  - A coverage-information query ("what data do you have") is answered
    straight from the store snapshot and the catalog description.
  - A query for a region the store does not cover is refused with a message
    naming the available regions. No SQL executes for either.

The SQL force override pins data-bearing queries to the SQL route at full
confidence. Vector-only answers over this dataset hallucinate plausible
measurements; any query naming concrete data (floats, profiles, parameters,
places) must ground in rows the store actually returned.

Every invocation gets a uuid query ID bound into the logging context, a
Prometheus observation, a history journal append, and a lifecycle event on
the bus. All three are best-effort and never fail the query.

Health reports dependency reachability: a store ping, the vector client's
probe, and a one-token gateway completion.
*/
package pipeline
