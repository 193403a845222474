// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package events

import (
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/metrics"
)

// publishBuffer is the number of events held while the transport catches
// up. Beyond this the publisher drops events rather than stall the query
// pipeline.
const publishBuffer = 256

// Publisher is the pipeline's write side of the event bus. Implementations
// must never block the caller: an event that cannot be accepted immediately
// is dropped and counted.
type Publisher interface {
	// PublishQueryEvent enqueues a lifecycle event. Best-effort; errors
	// are logged and counted, never returned.
	PublishQueryEvent(e QueryEvent)

	// Close flushes pending events and releases the transport.
	Close() error
}

// Disabled is the no-op publisher used when the event bus is turned off.
type Disabled struct{}

// PublishQueryEvent discards the event.
func (Disabled) PublishQueryEvent(QueryEvent) {}

// Close is a no-op.
func (Disabled) Close() error { return nil }

// BusPublisher publishes query events through a Watermill publisher. A
// buffered channel decouples the pipeline from transport latency; a single
// background worker drains it in order.
type BusPublisher struct {
	pub    message.Publisher
	queue  chan QueryEvent
	done   chan struct{}
	closed bool
	mu     sync.Mutex
}

// NewBusPublisher wraps a Watermill publisher and starts the drain worker.
func NewBusPublisher(pub message.Publisher) *BusPublisher {
	p := &BusPublisher{
		pub:   pub,
		queue: make(chan QueryEvent, publishBuffer),
		done:  make(chan struct{}),
	}
	go p.drain()
	return p
}

// PublishQueryEvent enqueues the event without blocking. A full queue drops
// the event and increments the drop counter; the pipeline must never wait
// on the bus.
func (p *BusPublisher) PublishQueryEvent(e QueryEvent) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	select {
	case p.queue <- e:
	default:
		metrics.RecordNATSPublishDropped()
		logging.Warn().Str("event_id", e.ID).Msg("event queue full, dropping query event")
	}
}

// Close stops accepting events, lets the worker flush the queue, and closes
// the underlying publisher.
func (p *BusPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	close(p.queue)
	<-p.done
	return p.pub.Close()
}

func (p *BusPublisher) drain() {
	defer close(p.done)
	for e := range p.queue {
		payload, err := e.Marshal()
		if err != nil {
			logging.Error().Err(err).Str("event_id", e.ID).Msg("failed to marshal query event")
			continue
		}
		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := p.pub.Publish(TopicQueryEvents, msg); err != nil {
			metrics.RecordNATSPublishDropped()
			logging.Warn().Err(err).Str("event_id", e.ID).Msg("failed to publish query event")
			continue
		}
		metrics.RecordNATSPublish()
	}
}
