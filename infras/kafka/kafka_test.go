package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"comanda/infras/kafka"
	kafkaMocks "comanda/infras/kafka/mocks"
	"comanda/shared/event"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:     "table-1",
		Value:   map[string]int{"orders": 2},
		Headers: map[string]string{"event": "order.tab_closed"},
	}

	res, err := msg.ToKafkaMessage("comanda.events")
	require.NoError(t, err)
	assert.Equal(t, "comanda.events", res.Topic)
	assert.Equal(t, []byte("table-1"), res.Key)
	assert.JSONEq(t, `{"orders":2}`, string(res.Value))
	require.Len(t, res.Headers, 1)
	assert.Equal(t, "event", res.Headers[0].Key)

	bad := kafka.Message{Value: make(chan int)}
	_, err = bad.ToKafkaMessage("comanda.events")
	assert.Error(t, err)
}

func TestEventSink_Deliver(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	sink := kafka.NewEventSink(client, "comanda.events")

	evt := event.New(event.CallCreated, "table-uuid", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), map[string]int{"id": 7})

	client.EXPECT().
		SendMessages(gomock.Any(), "comanda.events", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			require.Len(t, messages, 1)
			assert.Equal(t, "table-uuid", messages[0].Key)
			assert.Equal(t, string(event.CallCreated), messages[0].Headers["event"])

			body, err := json.Marshal(messages[0].Value)
			require.NoError(t, err)
			assert.Contains(t, string(body), `"event":"service_call.created"`)

			return nil
		})

	assert.Equal(t, "kafka", sink.Name())
	assert.NoError(t, sink.Deliver(context.Background(), evt))

	client.EXPECT().SendMessages(gomock.Any(), "comanda.events", gomock.Any()).Return(errors.New("broker down"))
	assert.Error(t, sink.Deliver(context.Background(), evt))

	client.EXPECT().Close().Return(nil)
	assert.NoError(t, sink.Close())
}
