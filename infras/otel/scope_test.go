package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"comanda/infras/otel"
	"comanda/shared/failure"
)

func record(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func TestScope_TraceError(t *testing.T) {
	t.Run("store fault marks the span", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceIfError(errors.New("connection reset"))
		})

		assert.Equal(t, codes.Error, span.Status().Code)
	})

	t.Run("cooldown is an event with its retry hint", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceIfError(failure.TooManyRequests("wait before calling again", 90*time.Second))
		})

		assert.Equal(t, codes.Unset, span.Status().Code)
		require.Len(t, span.Events(), 1)
		assert.Equal(t, "domain failure", span.Events()[0].Name)

		attrs := map[string]int64{}
		for _, kv := range span.Events()[0].Attributes {
			attrs[string(kv.Key)] = kv.Value.AsInt64()
		}

		assert.Equal(t, int64(429), attrs["failure.code"])
		assert.Equal(t, int64(90), attrs["failure.retry_after_seconds"])
	})

	t.Run("nil is ignored", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceIfError(nil)
		})

		assert.Equal(t, codes.Unset, span.Status().Code)
		assert.Empty(t, span.Events())
	})
}

func TestScope_SetAttributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"table_id":  int64(7),
			"order_ids": []int64{1, 2},
			"open":      true,
			"cooldown":  3 * time.Minute,
		})
	})

	attrs := map[string]any{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}

	assert.Equal(t, int64(7), attrs["table_id"])
	assert.Equal(t, []int64{1, 2}, attrs["order_ids"])
	assert.Equal(t, true, attrs["open"])
	assert.Equal(t, int64(180000), attrs["cooldown"])
}
