// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package api

// Machine-readable error codes carried in APIError.Code. Clients branch on
// these, not on the message text.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodePipeline         = "PIPELINE_ERROR"
	ErrCodeDatabase         = "DATABASE_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)
