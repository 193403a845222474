// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package events

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/floatquery/internal/models"
)

// Topic and stream layout. Subjects use the hierarchy
// floatquery.query.<stage> so consumers can subscribe to a single stage or
// the full feed with a wildcard.
const (
	// TopicQueryEvents is the subject all query lifecycle events publish to.
	TopicQueryEvents = "floatquery.query.events"

	// StreamName is the JetStream stream holding query events.
	StreamName = "FLOATQUERY_EVENTS"

	// StreamSubjects is the subject filter bound to the stream.
	StreamSubjects = "floatquery.query.>"
)

// Query lifecycle stages.
const (
	StageCompleted = "completed"
	StageFailed    = "failed"
	StageRefused   = "refused"
)

// QueryEvent describes one resolved pipeline invocation. It carries routing
// and sizing facts only, never answer text or retrieved rows, so the event
// stream stays small and free of user data beyond the query itself.
type QueryEvent struct {
	ID          string           `json:"id"`
	Query       string           `json:"query"`
	Stage       string           `json:"stage"`
	QueryType   models.QueryType `json:"query_type"`
	Method      string           `json:"generation_method,omitempty"`
	Confidence  float64          `json:"confidence"`
	SQLCount    int              `json:"sql_count"`
	VectorCount int              `json:"vector_count"`
	ElapsedMS   int64            `json:"elapsed_ms"`
	Timestamp   time.Time        `json:"timestamp"`
}

// Marshal encodes the event for the wire.
func (e QueryEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalQueryEvent decodes a wire payload back into a QueryEvent.
func UnmarshalQueryEvent(data []byte) (QueryEvent, error) {
	var e QueryEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return QueryEvent{}, err
	}
	return e, nil
}
