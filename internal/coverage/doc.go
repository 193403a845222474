// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package coverage refuses queries the data store cannot serve.
//
// The store holds profiles for one contiguous rectangle (the Indian Ocean
// region). A query naming a basin wholly outside that rectangle would
// otherwise reach the language model with no grounding data and invite a
// hallucinated answer, so the validator short-circuits it with an honest
// refusal instead. Queries asking what the store contains ("what data do
// you have") are answered from the same coverage description.
package coverage
