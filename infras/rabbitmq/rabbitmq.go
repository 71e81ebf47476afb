package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"comanda/config"
)

const (
	exchangeKind   = "topic"
	maxDialRetries = 5
	publishTimeout = 10 * time.Second
)

// Channel is the part of an AMQP channel the event sink needs.
type Channel interface {
	Publish(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error
	Close() error
}

type connection struct {
	url      string
	exchange string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
}

// New dials the broker and declares the durable events exchange.
func New(cfg *config.Config) (Channel, error) {
	c := &connection{
		url:      cfg.Events.RabbitMQ.URL,
		exchange: cfg.Events.RabbitMQ.Exchange,
	}

	if err := c.connect(); err != nil {
		return nil, err
	}

	log.Info().Str("exchange", c.exchange).Msg("Connected to RabbitMQ")

	return c, nil
}

func (c *connection) connect() error {
	var err error

	for attempt := range maxDialRetries {
		if err = c.dial(); err == nil {
			return nil
		}

		wait := time.Duration(attempt+1) * 2 * time.Second
		log.Error().Err(err).Int("attempt", attempt+1).Dur("retry_in", wait).Msg("Failed to connect to RabbitMQ")
		time.Sleep(wait)
	}

	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxDialRetries, err)
}

func (c *connection) dial() error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		c.exchange,
		exchangeKind,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()

		return fmt.Errorf("declare exchange %s: %w", c.exchange, err)
	}

	c.conn = conn
	c.channel = channel

	return nil
}

func (c *connection) Publish(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() || c.channel.IsClosed() {
		if err := c.dial(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := c.channel.PublishWithContext(ctx, exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (c *connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel != nil {
		_ = c.channel.Close()
	}

	if c.conn == nil || c.conn.IsClosed() {
		return nil
	}

	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("failed to close RabbitMQ connection: %w", err)
	}

	return nil
}
