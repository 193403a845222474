// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/metrics"
)

// Broadcaster is the slice of the WebSocket hub the consumer pushes live
// events to. *websocket.Hub satisfies it.
type Broadcaster interface {
	BroadcastJSON(messageType string, data interface{})
}

// MessageTypeQueryEvent is the WebSocket message type carrying a QueryEvent.
const MessageTypeQueryEvent = "query_event"

// Consumer subscribes to the query-event topic and fans events out to the
// WebSocket hub and Prometheus counters. It implements suture.Service so
// the supervisor restarts it on transport failure.
type Consumer struct {
	sub message.Subscriber
	hub Broadcaster
}

// NewConsumer wires a subscriber to a broadcaster. The broadcaster may be
// nil; events then only feed metrics.
func NewConsumer(sub message.Subscriber, hub Broadcaster) *Consumer {
	return &Consumer{sub: sub, hub: hub}
}

// Serve consumes events until the context is canceled. Malformed payloads
// are acked and counted; a consumer must never wedge the stream on one bad
// message.
func (c *Consumer) Serve(ctx context.Context) error {
	messages, err := c.sub.Subscribe(ctx, TopicQueryEvents)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", TopicQueryEvents, err)
	}

	logging.Info().Str("topic", TopicQueryEvents).Msg("query event consumer started")

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("query event consumer stopped")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return fmt.Errorf("event subscription closed")
			}
			c.handle(msg)
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (c *Consumer) String() string {
	return "query-event-consumer"
}

func (c *Consumer) handle(msg *message.Message) {
	start := time.Now()
	metrics.RecordNATSConsume()

	event, err := UnmarshalQueryEvent(msg.Payload)
	if err != nil {
		metrics.RecordNATSParseFailed()
		logging.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("failed to unmarshal query event")
		msg.Ack()
		return
	}

	if c.hub != nil {
		c.hub.BroadcastJSON(MessageTypeQueryEvent, event)
	}

	metrics.RecordNATSProcessed()
	metrics.RecordNATSProcessingDuration(time.Since(start))
	msg.Ack()
}
