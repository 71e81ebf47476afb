package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"comanda/shared/constant"
	"comanda/shared/event"
)

const sinkName = "rabbitmq"

type eventSink struct {
	channel  Channel
	exchange string
}

// NewEventSink publishes domain events to exchange with the event name as
// routing key, so consumers can bind to "order.*" or "service_call.*".
func NewEventSink(channel Channel, exchange string) event.Sink {
	return &eventSink{
		channel:  channel,
		exchange: exchange,
	}
}

func (s *eventSink) Name() string {
	return sinkName
}

func (s *eventSink) Deliver(ctx context.Context, evt event.Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return s.channel.Publish(ctx, s.exchange, string(evt.Name), amqp.Publishing{ //nolint:wrapcheck
		ContentType:  constant.ContentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    evt.ID,
		Timestamp:    evt.OccurredAt,
		Type:         string(evt.Name),
		Body:         body,
	})
}

func (s *eventSink) Close() error {
	return s.channel.Close() //nolint:wrapcheck
}
