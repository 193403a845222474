// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package extract pulls structured entities out of natural-language queries:
// float and profile identifiers, measurement parameters, region and
// coordinate mentions, date expressions, and numeric comparators.
//
// Extraction is best-effort and purely lexical. Empty sets are valid output;
// downstream stages treat every entity as a hint, never a requirement.
package extract
