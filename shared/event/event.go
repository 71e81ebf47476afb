package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"comanda/infras/otel"
	"comanda/shared/constant"
)

type Name string

const (
	TableCreated       Name = "table.created"
	TableStatusChanged Name = "table.status_changed"
	TableDeleted       Name = "table.deleted"

	OrderCreated       Name = "order.created"
	OrderStatusChanged Name = "order.status_changed"
	TabClosed          Name = "order.tab_closed"
	OrdersPurged       Name = "order.purged"

	CallCreated   Name = "service_call.created"
	CallAttended  Name = "service_call.attended"
	CallCancelled Name = "service_call.cancelled"
)

const (
	deliveryTimeout = 5 * time.Second
	queueSize       = 256
)

// Event is a committed domain change. Data is the JSON projection of the
// affected record.
type Event struct {
	ID         string    `json:"id"`
	Name       Name      `json:"event"`
	TableUUID  string    `json:"table_uuid,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

func New(name Name, tableUUID string, occurredAt time.Time, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Name:       name,
		TableUUID:  tableUUID,
		OccurredAt: occurredAt,
		Data:       data,
	}
}

// Publisher is handed to services. Publish is called after commit and never
// reports failure to the caller.
type Publisher interface {
	Publish(ctx context.Context, events ...Event)
}

// Sink is one delivery target.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, evt Event) error
	Close() error
}

type batch struct {
	ctx    context.Context
	events []Event
}

type lane struct {
	sink  Sink
	queue chan batch
}

type fanout struct {
	lanes  []lane
	otel   otel.Otel
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// Fanout is a Publisher with one queue and worker per sink. Each sink sees
// events in Publish order; a slow sink never holds up the others.
type Fanout interface {
	Publisher
	Close() error
}

func NewFanout(otl otel.Otel, sinks ...Sink) Fanout {
	f := &fanout{
		lanes: make([]lane, 0, len(sinks)),
		otel:  otl,
	}

	for _, sink := range sinks {
		l := lane{sink: sink, queue: make(chan batch, queueSize)}
		f.lanes = append(f.lanes, l)

		f.wg.Add(1)

		go f.run(l)
	}

	return f
}

func (f *fanout) run(l lane) {
	defer f.wg.Done()

	for b := range l.queue {
		f.deliver(b.ctx, l.sink, b.events)
	}
}

// Publish drops the batch for a sink whose queue is full instead of blocking the caller.
func (f *fanout) Publish(ctx context.Context, events ...Event) {
	if len(events) == 0 {
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		log.Warn().Int("events", len(events)).Msg("event fanout closed, dropping events")

		return
	}

	b := batch{ctx: context.WithoutCancel(ctx), events: events}

	for _, l := range f.lanes {
		select {
		case l.queue <- b:
		default:
			log.Warn().Str("sink", l.sink.Name()).Int("events", len(events)).Msg("event queue full, dropping events")
		}
	}
}

func (f *fanout) deliver(ctx context.Context, sink Sink, events []Event) {
	ctx, scope := f.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+"."+sink.Name())
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	for _, evt := range events {
		if err := sink.Deliver(ctx, evt); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("sink", sink.Name()).Str("event", string(evt.Name)).Msg("failed to deliver event")

			continue
		}

		log.Debug().Str("sink", sink.Name()).Str("event", string(evt.Name)).Msg("event delivered")
	}
}

// Close drains every queue and closes every sink. Publish after Close is a no-op.
func (f *fanout) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()

		return nil
	}

	f.closed = true

	for _, l := range f.lanes {
		close(l.queue)
	}
	f.mu.Unlock()

	f.wg.Wait()

	var firstErr error

	for _, l := range f.lanes {
		if err := l.sink.Close(); err != nil {
			log.Error().Err(err).Str("sink", l.sink.Name()).Msg("failed to close event sink")

			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
