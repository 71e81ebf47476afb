package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"comanda/config"
	"comanda/infras/kafka"
	"comanda/infras/otel"
	"comanda/infras/postgres"
	"comanda/infras/rabbitmq"
	authService "comanda/internal/domains/auth/service"
	"comanda/shared/event"
	"comanda/transport/http"
	"comanda/transport/ws"
)

// App is everything cmd/app needs after wiring.
type App struct {
	HTTP *http.HTTP
	Auth authService.Auth
	Otel otel.Otel
}

func ProvideDatabase(cfg *config.Config) (*postgres.Connection, func()) {
	db := postgres.New(cfg)

	return db, db.Close
}

// ProvideEventFanout always delivers to the staff board. Kafka and RabbitMQ are added
// when enabled in the configuration.
func ProvideEventFanout(cfg *config.Config, otl otel.Otel, hub *ws.Hub) (event.Fanout, func(), error) {
	sinks := []event.Sink{hub}

	if cfg.Events.Kafka.Enable {
		sinks = append(sinks, kafka.NewEventSink(kafka.New(cfg), cfg.Events.Kafka.Topic))
	}

	if cfg.Events.RabbitMQ.Enable {
		channel, err := rabbitmq.New(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}

		sinks = append(sinks, rabbitmq.NewEventSink(channel, cfg.Events.RabbitMQ.Exchange))
	}

	fanout := event.NewFanout(otl, sinks...)

	log.Info().Int("sinks", len(sinks)).Msg("event fan-out ready")

	cleanup := func() {
		if err := fanout.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close event fan-out")
		}
	}

	return fanout, cleanup, nil
}

func ProvidePublisher(fanout event.Fanout) event.Publisher {
	return fanout
}

// ProvideOtel flushes pending spans on cleanup.
func ProvideOtel(cfg *config.Config) (otel.Otel, func()) {
	otl := otel.New(cfg)

	return otl, func() {
		if err := otel.Shutdown(context.Background(), otl); err != nil {
			log.Error().Err(err).Msg("failed to shut down tracer provider")
		}
	}
}
