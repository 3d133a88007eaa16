package repository

import (
	"context"
	"testing"
	"time"

	"tableside/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTicket(table string, at time.Time, lines ...model.OrderLine) model.Order {
	id := uuid.New()
	total := decimal.Zero
	for i := range lines {
		lines[i].ID = uuid.New()
		lines[i].OrderID = id
		total = total.Add(lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(lines[i].Quantity))))
	}
	return model.Order{
		ID:           id,
		SessionID:    uuid.New(),
		TableNumber:  table,
		Total:        total,
		PointsEarned: int(total.IntPart()),
		CreatedAt:    at,
		Lines:        lines,
	}
}

func saveTicket(t *testing.T, repo OrderRepository, o model.Order) {
	t.Helper()
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.CreateOrder(ctx, tx, &o))
	require.NoError(t, repo.CreateOrderLines(ctx, tx, o.Lines))
	require.NoError(t, tx.Commit(ctx))
}

func TestOrderRepository_BeginTx(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NotNil(t, tx)

	assert.NoError(t, tx.Rollback(ctx))
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	ticket := newTicket("12", time.Now().UTC().Truncate(time.Microsecond),
		model.OrderLine{ItemID: "pizzas-Reine", ItemName: "Pizza Reine", UnitPrice: decimal.RequireFromString("14.500"), Quantity: 2},
		model.OrderLine{ItemID: "cafes-Express", ItemName: "Express", UnitPrice: decimal.RequireFromString("2.800"), Quantity: 1, Note: strPtr("sans sucre")},
	)
	ticket.CustomerName = strPtr("Amira")
	saveTicket(t, repo, ticket)

	got, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "12", got.TableNumber)
	assert.Equal(t, "Amira", *got.CustomerName)
	assert.True(t, decimal.RequireFromString("31.8").Equal(got.Total), "got %s", got.Total)
	assert.Equal(t, 31, got.PointsEarned)
	assert.True(t, ticket.CreatedAt.Equal(got.CreatedAt))

	require.Len(t, got.Lines, 2)
	assert.Equal(t, "pizzas-Reine", got.Lines[0].ItemID, "lines keep cart order")
	assert.True(t, decimal.RequireFromString("14.5").Equal(got.Lines[0].UnitPrice))
	assert.Nil(t, got.Lines[0].Note)
	assert.Equal(t, "sans sucre", *got.Lines[1].Note)
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())

	got, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderRepository_RollbackDiscardsTicket(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	ticket := newTicket("3", time.Now(),
		model.OrderLine{ItemID: "a", ItemName: "A", UnitPrice: decimal.NewFromInt(5), Quantity: 1})

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.CreateOrder(ctx, tx, &ticket))
	require.NoError(t, repo.CreateOrderLines(ctx, tx, ticket.Lines))
	require.NoError(t, tx.Rollback(ctx))

	got, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderRepository_CreateOrderLines_Errors(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name    string
		lines   []model.OrderLine
		wantErr bool
	}{
		{name: "No lines", lines: nil},
		{
			name: "Unknown order",
			lines: []model.OrderLine{
				{ID: uuid.New(), OrderID: uuid.New(), ItemID: "a", ItemName: "A", UnitPrice: decimal.NewFromInt(1), Quantity: 1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := repo.BeginTx(ctx)
			require.NoError(t, err)
			defer tx.Rollback(ctx)

			err = repo.CreateOrderLines(ctx, tx, tt.lines)
			if tt.wantErr {
				assert.ErrorContains(t, err, "failed to create order line")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOrderRepository_ListRecent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	empty, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)

	base := time.Now().UTC().Add(-time.Hour)
	for i, table := range []string{"1", "2", "3"} {
		saveTicket(t, repo, newTicket(table, base.Add(time.Duration(i)*time.Minute),
			model.OrderLine{ItemID: "x", ItemName: "X", UnitPrice: decimal.NewFromInt(int64(i + 1)), Quantity: 1}))
	}

	got, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].TableNumber)
	assert.Equal(t, "2", got[1].TableNumber)
	assert.Len(t, got[0].Lines, 1)
}
