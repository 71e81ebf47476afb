package otel

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"comanda/shared/failure"
)

const (
	attrFailureCode    = "failure.code"
	attrRetryAfter     = "failure.retry_after_seconds"
	eventDomainFailure = "domain failure"
)

// Scope wraps one span. Callers end it with defer and report a named error
// return through TraceIfError in a deferred closure.
type Scope interface {
	End()
	TraceError(err error)
	TraceIfError(err error)
	AddEvent(name string)
	SetAttribute(key string, value any)
	SetAttributes(attributes map[string]any)
}

type scopeImpl struct {
	span oteltrace.Span
}

func NewScope(span oteltrace.Span) Scope {
	return &scopeImpl{span: span}
}

func (s *scopeImpl) End() {
	s.span.End()
}

// TraceError marks the span failed. Rejections such as a conflict, a cooldown or
// a missing row are recorded as an event with their code and leave the span status
// alone, so only store and transport faults count as span errors.
func (s *scopeImpl) TraceError(err error) {
	if failure.IsDomain(err) {
		attrs := []attribute.KeyValue{
			attribute.Int(attrFailureCode, failure.GetCode(err)),
			attribute.String("failure.message", err.Error()),
		}

		if retryAfter, ok := failure.GetRetryAfter(err); ok {
			attrs = append(attrs, attribute.Int64(attrRetryAfter, int64(retryAfter/time.Second)))
		}

		s.span.AddEvent(eventDomainFailure, oteltrace.WithAttributes(attrs...))
		s.span.SetAttributes(attribute.Int(attrFailureCode, failure.GetCode(err)))

		return
	}

	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *scopeImpl) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scopeImpl) AddEvent(name string) {
	s.span.AddEvent(name)
}

func (s *scopeImpl) SetAttribute(key string, value any) {
	s.span.SetAttributes(toAttribute(key, value))
}

func (s *scopeImpl) SetAttributes(attributes map[string]any) {
	kvs := make([]attribute.KeyValue, 0, len(attributes))
	for key, value := range attributes {
		kvs = append(kvs, toAttribute(key, value))
	}

	s.span.SetAttributes(kvs...)
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch val := value.(type) {
	case bool:
		return attribute.Bool(key, val)
	case string:
		return attribute.String(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case []int64:
		return attribute.Int64Slice(key, val)
	case float64:
		return attribute.Float64(key, val)
	case []string:
		return attribute.StringSlice(key, val)
	case time.Duration:
		return attribute.Int64(key, val.Milliseconds())
	case fmt.Stringer:
		return attribute.String(key, val.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", val))
	}
}
