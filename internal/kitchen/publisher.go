package kitchen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Publisher sends tickets to the kitchen.
type Publisher interface {
	Publish(ctx context.Context, t Ticket) error
	Close() error
}

// AMQPPublisher publishes persistent JSON tickets to a durable RabbitMQ queue.
type AMQPPublisher struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	logger zerolog.Logger
}

// NewAMQPPublisher dials url and declares queue.
func NewAMQPPublisher(url, queue string, logger zerolog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	if _, err := declareQueue(ch, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger = logger.With().Str("component", "kitchen-publisher").Logger()
	logger.Info().Str("queue", queue).Msg("kitchen queue ready")

	return &AMQPPublisher{conn: conn, ch: ch, queue: queue, logger: logger}, nil
}

func declareQueue(ch *amqp.Channel, queue string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	return q, nil
}

// Publish sends t to the queue. Channels are not shared across goroutines,
// so publishes are serialised.
func (p *AMQPPublisher) Publish(ctx context.Context, t Ticket) error {
	body, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode ticket: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    t.OrderID.String(),
		Timestamp:    t.CreatedAt,
		Body:         body,
	})
	if err != nil {
		p.logger.Error().Err(err).Str("order_id", t.OrderID.String()).Msg("failed to publish ticket")
		return fmt.Errorf("failed to publish ticket: %w", err)
	}

	p.logger.Debug().
		Str("order_id", t.OrderID.String()).
		Str("table", t.TableNumber).
		Int("lines", len(t.Lines)).
		Msg("ticket published")
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		p.conn.Close()
		return fmt.Errorf("failed to close channel: %w", err)
	}
	return p.conn.Close()
}

// LogPublisher writes tickets to the log when no queue is configured.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a publisher that only logs.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With().Str("component", "kitchen-log").Logger()}
}

func (p *LogPublisher) Publish(_ context.Context, t Ticket) error {
	ev := p.logger.Info().
		Str("order_id", t.OrderID.String()).
		Str("table", t.TableNumber).
		Str("total", t.Total.String())
	for _, l := range t.Lines {
		ev = ev.Int(l.Name, l.Quantity)
	}
	ev.Msg("kitchen ticket")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
