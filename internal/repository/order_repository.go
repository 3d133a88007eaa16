package repository

import (
	"context"
	"errors"
	"fmt"

	"tableside/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderRepository implements OrderRepository using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts the ticket header within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, session_id, table_number, customer_name, total, points_earned, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.SessionID,
		order.TableNumber,
		order.CustomerName,
		order.Total.String(),
		order.PointsEarned,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("table", order.TableNumber).
		Msg("order created")

	return nil
}

// CreateOrderLines batches the line inserts within the provided transaction.
// Lines keep their slice position so tickets read back in cart order.
func (r *orderRepository) CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_lines (id, order_id, position, item_id, item_name, unit_price, quantity, note)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)
	`

	batch := &pgx.Batch{}
	for i, l := range lines {
		batch.Queue(query, l.ID, l.OrderID, i, l.ItemID, l.ItemName, l.UnitPrice.String(), l.Quantity, l.Note)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range lines {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", lines[i].OrderID.String()).
				Str("item_id", lines[i].ItemID).
				Msg("failed to create order line")
			return fmt.Errorf("failed to create order line: %w", err)
		}
	}

	r.logger.Debug().Int("count", len(lines)).Msg("order lines created")

	return nil
}

// GetByID retrieves a ticket with its lines.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		SELECT id, session_id, table_number, customer_name, total::text, points_earned, created_at
		FROM orders
		WHERE id = $1
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	lines, err := r.linesFor(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	order.Lines = lines[id]
	if order.Lines == nil {
		order.Lines = []model.OrderLine{}
	}

	return &order, nil
}

// ListRecent returns the newest tickets first.
func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	query := `
		SELECT id, session_id, table_number, customer_name, total::text, points_earned, created_at
		FROM orders
		ORDER BY created_at DESC, id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0, limit)
	ids := make([]uuid.UUID, 0, limit)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = lines[orders[i].ID]
		if orders[i].Lines == nil {
			orders[i].Lines = []model.OrderLine{}
		}
	}

	return orders, nil
}

func (r *orderRepository) linesFor(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderLine, error) {
	query := `
		SELECT id, order_id, item_id, item_name, unit_price::text, quantity, note
		FROM order_lines
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Int("orders", len(orderIDs)).Msg("failed to query order lines")
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]model.OrderLine, len(orderIDs))
	for rows.Next() {
		var (
			l     model.OrderLine
			price string
		)
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.ItemName, &price, &l.Quantity, &l.Note); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order line row")
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		if l.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("invalid unit price %q: %w", price, err)
		}
		out[l.OrderID] = append(out[l.OrderID], l)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order line rows")
		return nil, fmt.Errorf("error iterating order lines: %w", err)
	}

	return out, nil
}

func scanOrder(row pgx.Row) (model.Order, error) {
	var (
		o     model.Order
		total string
	)
	if err := row.Scan(&o.ID, &o.SessionID, &o.TableNumber, &o.CustomerName, &total, &o.PointsEarned, &o.CreatedAt); err != nil {
		return model.Order{}, err
	}
	t, err := decimal.NewFromString(total)
	if err != nil {
		return model.Order{}, fmt.Errorf("invalid order total %q: %w", total, err)
	}
	o.Total = t
	return o, nil
}
