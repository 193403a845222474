// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package llm is the gateway to the two chat-completion providers the
// pipeline uses: an OpenAI-compatible endpoint (Groq-style, carrying a text
// model and a code model) and Anthropic as the alternate.
//
// The gateway owns provider selection: visualization-flavored requests and
// oversized prompts prefer the alternate provider, and any provider error
// falls through to the other before the caller sees a failure. Every
// provider call runs under a request timeout, a client-side rate limiter,
// and a circuit breaker, so a misbehaving upstream degrades to fast
// failures instead of piling up goroutines.
package llm
