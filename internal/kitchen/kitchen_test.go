package kitchen

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"tableside/internal/model"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func sampleOrder() model.Order {
	name, note := "Amira", "bien cuit"
	return model.Order{
		ID:           uuid.New(),
		SessionID:    uuid.New(),
		TableNumber:  "5",
		CustomerName: &name,
		Total:        decimal.RequireFromString("31.5"),
		CreatedAt:    time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC),
		Lines: []model.OrderLine{
			{ItemID: "pizzas-Reine", ItemName: "Pizza Reine", UnitPrice: decimal.RequireFromString("14.5"), Quantity: 2, Note: &note},
			{ItemID: "cafes-Express", ItemName: "Express", UnitPrice: decimal.RequireFromString("2.5"), Quantity: 1},
		},
	}
}

func TestTicketFor(t *testing.T) {
	o := sampleOrder()
	tk := TicketFor(o)

	assert.Equal(t, o.ID, tk.OrderID)
	assert.Equal(t, "Amira", tk.Customer)
	require.Len(t, tk.Lines, 2)
	assert.Equal(t, TicketLine{ItemID: "pizzas-Reine", Name: "Pizza Reine", Quantity: 2, Note: "bien cuit"}, tk.Lines[0])
	assert.Empty(t, tk.Lines[1].Note)

	o.CustomerName = nil
	assert.Empty(t, TicketFor(o).Customer)
}

func TestDecode(t *testing.T) {
	_, err := Decode([]byte("{"))
	assert.ErrorContains(t, err, "failed to decode ticket")

	tk, err := Decode([]byte(`{"orderId":"6f1c2a5e-8d0b-4b59-9b43-2d1f2b8f6a10","tableNumber":"2","total":"9.5","lines":[{"itemId":"a","name":"A","quantity":3}]}`))
	require.NoError(t, err)
	assert.Equal(t, "2", tk.TableNumber)
	assert.True(t, decimal.RequireFromString("9.5").Equal(tk.Total))
	assert.Equal(t, 3, tk.Lines[0].Quantity)
}

func TestTally(t *testing.T) {
	tally := NewTally()
	tally.Record(TicketFor(sampleOrder()))
	tally.Record(Ticket{Lines: []TicketLine{{Name: "Express", Quantity: 2}, {Name: "Crêpe", Quantity: 3}}})

	tickets, dishes := tally.Snapshot()
	assert.Equal(t, int64(2), tickets)
	assert.Equal(t, []DishCount{
		{Name: "Crêpe", Quantity: 3},
		{Name: "Express", Quantity: 3},
		{Name: "Pizza Reine", Quantity: 2},
	}, dishes)
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(zerolog.New(&buf))

	require.NoError(t, p.Publish(context.Background(), TicketFor(sampleOrder())))
	assert.Contains(t, buf.String(), `"table":"5"`)
	assert.Contains(t, buf.String(), `"Pizza Reine":2`)
	assert.NoError(t, p.Close())
}

func startRabbit(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5672")
	require.NoError(t, err)

	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
}

func TestPublishConsume(t *testing.T) {
	url := startRabbit(t)
	const queue = "kitchen.test"

	pub, err := NewAMQPPublisher(url, queue, zerolog.Nop())
	require.NoError(t, err)
	defer pub.Close()

	for i := 0; i < 3; i++ {
		require.NoError(t, pub.Publish(context.Background(), TicketFor(sampleOrder())))
	}

	tally := NewTally()
	consumer, err := NewConsumer(url, queue, 2, tally, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- consumer.Run(ctx) }()

	require.Eventually(t, func() bool {
		n, _ := tally.Snapshot()
		return n == 3
	}, 10*time.Second, 50*time.Millisecond)

	_, dishes := tally.Snapshot()
	assert.Equal(t, DishCount{Name: "Pizza Reine", Quantity: 6}, dishes[0])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop")
	}
}

func TestConsumer_RunReturnsWhenConnectionDrops(t *testing.T) {
	url := startRabbit(t)
	const queue = "kitchen.drop"

	consumer, err := NewConsumer(url, queue, 2, NewTally(), zerolog.Nop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- consumer.Run(context.Background()) }()

	inspect, err := amqp.Dial(url)
	require.NoError(t, err)
	defer inspect.Close()

	require.Eventually(t, func() bool {
		ch, err := inspect.Channel()
		if err != nil {
			return false
		}
		defer ch.Close()
		q, err := declareQueue(ch, queue)
		return err == nil && q.Consumers == 2
	}, 10*time.Second, 50*time.Millisecond)

	require.NoError(t, consumer.conn.Close())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrDeliveriesClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer kept running after its connection closed")
	}
}
