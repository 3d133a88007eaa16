package kitchen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const prefetch = 10

// ErrDeliveriesClosed is returned by Run when the broker stops delivering
// before the context is cancelled.
var ErrDeliveriesClosed = errors.New("kitchen queue deliveries closed")

// Tally counts tickets and dishes seen by the kitchen.
type Tally struct {
	mu      sync.Mutex
	tickets int64
	byItem  map[string]int64
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{byItem: make(map[string]int64)}
}

// Record adds a ticket to the tally.
func (t *Tally) Record(tk Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tickets++
	for _, l := range tk.Lines {
		t.byItem[l.Name] += int64(l.Quantity)
	}
}

// DishCount is the quantity ordered for one dish.
type DishCount struct {
	Name     string
	Quantity int64
}

// Snapshot returns the ticket count and dishes ordered by quantity, then name.
func (t *Tally) Snapshot() (int64, []DishCount) {
	t.mu.Lock()
	defer t.mu.Unlock()

	dishes := make([]DishCount, 0, len(t.byItem))
	for name, q := range t.byItem {
		dishes = append(dishes, DishCount{Name: name, Quantity: q})
	}
	sort.Slice(dishes, func(i, j int) bool {
		if dishes[i].Quantity != dishes[j].Quantity {
			return dishes[i].Quantity > dishes[j].Quantity
		}
		return dishes[i].Name < dishes[j].Name
	})
	return t.tickets, dishes
}

// Consumer reads tickets from the kitchen queue with a pool of workers.
type Consumer struct {
	conn    *amqp.Connection
	queue   string
	workers int
	tally   *Tally
	logger  zerolog.Logger
}

// NewConsumer dials url. Each worker opens its own channel.
func NewConsumer(url, queue string, workers int, tally *Tally, logger zerolog.Logger) (*Consumer, error) {
	if workers < 1 {
		workers = 1
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	return &Consumer{
		conn:    conn,
		queue:   queue,
		workers: workers,
		tally:   tally,
		logger:  logger.With().Str("component", "kitchen-consumer").Logger(),
	}, nil
}

// Run consumes until ctx is cancelled or the connection drops.
func (c *Consumer) Run(ctx context.Context) error {
	errs := make(chan error, c.workers)
	var wg sync.WaitGroup

	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if err := c.work(ctx, id); err != nil {
				errs <- err
			}
		}(i)
	}

	select {
	case <-ctx.Done():
	case err := <-errs:
		c.conn.Close()
		wg.Wait()
		return err
	}

	c.conn.Close()
	wg.Wait()
	return nil
}

func (c *Consumer) work(ctx context.Context, id int) error {
	log := c.logger.With().Int("worker", id).Logger()

	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("worker %d: failed to open channel: %w", id, err)
	}
	defer ch.Close()

	if _, err := declareQueue(ch, c.queue); err != nil {
		return err
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("worker %d: failed to set qos: %w", id, err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("worker %d: failed to consume: %w", id, err)
	}

	log.Info().Str("queue", c.queue).Msg("worker consuming")

	for d := range msgs {
		tk, err := Decode(d.Body)
		if err != nil {
			log.Warn().Err(err).Msg("dropping malformed ticket")
			_ = d.Nack(false, false)
			continue
		}

		c.tally.Record(tk)
		log.Info().
			Str("order_id", tk.OrderID.String()).
			Str("table", tk.TableNumber).
			Int("lines", len(tk.Lines)).
			Msg("ticket received")

		if err := d.Ack(false); err != nil {
			log.Error().Err(err).Msg("failed to ack ticket")
		}
	}

	if ctx.Err() != nil {
		return nil
	}
	log.Error().Msg("delivery channel closed by broker")
	return fmt.Errorf("worker %d: %w", id, ErrDeliveriesClosed)
}

// Decode parses a queue message body.
func Decode(body []byte) (Ticket, error) {
	var t Ticket
	if err := json.Unmarshal(body, &t); err != nil {
		return Ticket{}, fmt.Errorf("failed to decode ticket: %w", err)
	}
	return t, nil
}
