package kafka

import (
	"context"

	"comanda/shared/event"
)

const sinkName = "kafka"

type eventSink struct {
	client Client
	topic  string
}

// NewEventSink publishes domain events to topic, keyed by table UUID.
func NewEventSink(client Client, topic string) event.Sink {
	return &eventSink{
		client: client,
		topic:  topic,
	}
}

func (s *eventSink) Name() string {
	return sinkName
}

func (s *eventSink) Deliver(ctx context.Context, evt event.Event) error {
	return s.client.SendMessages(ctx, s.topic, Message{ //nolint:wrapcheck
		Key:   evt.TableUUID,
		Value: evt,
		Headers: map[string]string{
			"event": string(evt.Name),
			"id":    evt.ID,
		},
	})
}

func (s *eventSink) Close() error {
	return s.client.Close() //nolint:wrapcheck
}
