package rabbitmq_test

import (
	"context"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/infras/rabbitmq"
	"comanda/shared/event"
)

type published struct {
	exchange   string
	routingKey string
	msg        amqp.Publishing
}

type fakeChannel struct {
	sent    []published
	failing error
	closed  bool
}

func (f *fakeChannel) Publish(_ context.Context, exchange, routingKey string, msg amqp.Publishing) error {
	if f.failing != nil {
		return f.failing
	}

	f.sent = append(f.sent, published{exchange: exchange, routingKey: routingKey, msg: msg})

	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true

	return nil
}

func TestEventSink_Deliver(t *testing.T) {
	channel := &fakeChannel{}
	sink := rabbitmq.NewEventSink(channel, "comanda.events")

	occurredAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	evt := event.New(event.OrderStatusChanged, "table-uuid", occurredAt, map[string]string{"status": "entregue"})

	require.NoError(t, sink.Deliver(context.Background(), evt))
	require.Len(t, channel.sent, 1)

	sent := channel.sent[0]
	assert.Equal(t, "comanda.events", sent.exchange)
	assert.Equal(t, "order.status_changed", sent.routingKey)
	assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)
	assert.Equal(t, evt.ID, sent.msg.MessageId)
	assert.Equal(t, occurredAt, sent.msg.Timestamp)
	assert.Contains(t, string(sent.msg.Body), `"status":"entregue"`)

	channel.failing = errors.New("channel closed")
	assert.Error(t, sink.Deliver(context.Background(), evt))

	assert.Equal(t, "rabbitmq", sink.Name())
	require.NoError(t, sink.Close())
	assert.True(t, channel.closed)
}
