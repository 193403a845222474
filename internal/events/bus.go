// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package events

import (
	"context"
	"fmt"
	"time"

	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/floatquery/internal/config"
	"github.com/tomtom215/floatquery/internal/logging"
)

// Bus owns the event transport: an optional embedded NATS server, the
// pre-provisioned JetStream stream, and the Watermill publisher and
// subscriber bound to it.
type Bus struct {
	embedded  *EmbeddedServer
	publisher Publisher
	sub       message.Subscriber
}

// New assembles the event bus from configuration. With events disabled it
// returns a bus whose publisher is a no-op and whose subscriber is nil;
// callers treat a nil Subscriber as "no live feed".
func New(ctx context.Context, cfg config.EventsConfig) (*Bus, error) {
	if !cfg.Enabled {
		logging.Info().Msg("event bus disabled")
		return &Bus{publisher: Disabled{}}, nil
	}

	bus := &Bus{}

	url := cfg.URL
	if cfg.EmbeddedServer {
		embedded, err := NewEmbeddedServer(cfg)
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS: %w", err)
		}
		bus.embedded = embedded
		url = embedded.ClientURL()
		logging.Info().Str("url", url).Msg("embedded NATS server started")
	}

	// Provision the stream before any client binds to it.
	nc, err := natsgo.Connect(url)
	if err != nil {
		bus.shutdownEmbedded()
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	if err := ensureStream(ctx, nc, cfg.StreamRetentionDays); err != nil {
		nc.Close()
		bus.shutdownEmbedded()
		return nil, err
	}
	nc.Close()

	wmLogger := newWatermillLogger()
	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logging.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logging.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: false, // stream pre-created by ensureStream
			TrackMsgId:    true,
		},
	}, wmLogger)
	if err != nil {
		bus.shutdownEmbedded()
		return nil, fmt.Errorf("create event publisher: %w", err)
	}
	bus.publisher = NewBusPublisher(pub)

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:            url,
		AckWaitTimeout: 30 * time.Second,
		NatsOptions:    natsOpts,
		Unmarshaler:    &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: false,
			DurablePrefix: "floatquery-dashboard",
			SubscribeOptions: []natsgo.SubOpt{
				natsgo.BindStream(StreamName),
				natsgo.DeliverNew(),
			},
		},
	}, wmLogger)
	if err != nil {
		_ = bus.publisher.Close()
		bus.shutdownEmbedded()
		return nil, fmt.Errorf("create event subscriber: %w", err)
	}
	bus.sub = sub

	logging.Info().Str("stream", StreamName).Msg("event bus ready")
	return bus, nil
}

// Publisher returns the pipeline's write side. Never nil.
func (b *Bus) Publisher() Publisher {
	return b.publisher
}

// Subscriber returns the read side, or nil when events are disabled.
func (b *Bus) Subscriber() message.Subscriber {
	return b.sub
}

// Healthy reports whether the embedded server (when present) is running.
// An external or disabled bus is assumed healthy; publish failures surface
// through metrics instead.
func (b *Bus) Healthy() bool {
	if b.embedded == nil {
		return true
	}
	return b.embedded.IsRunning()
}

// Close shuts the bus down: publisher flush first, then subscriber, then
// the embedded server.
func (b *Bus) Close(ctx context.Context) error {
	var firstErr error
	if b.publisher != nil {
		if err := b.publisher.Close(); err != nil {
			firstErr = err
		}
	}
	if b.sub != nil {
		if err := b.sub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if b.embedded != nil {
		if err := b.embedded.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (b *Bus) shutdownEmbedded() {
	if b.embedded == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.embedded.Shutdown(ctx); err != nil {
		logging.Warn().Err(err).Msg("embedded NATS shutdown failed")
	}
}
