package repository

import (
	"context"
	"fmt"

	"tableside/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type billRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBillRepository creates a new PostgreSQL-backed bill request repository.
func NewBillRepository(pool *pgxpool.Pool, logger zerolog.Logger) BillRepository {
	return &billRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "bill").Logger(),
	}
}

func (r *billRepository) Create(ctx context.Context, b *model.BillRequest) error {
	query := `
		INSERT INTO bill_requests (id, session_id, table_number, payment_method, total, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6)
	`

	_, err := r.pool.Exec(ctx, query, b.ID, b.SessionID, b.TableNumber, string(b.PaymentMethod), b.Total.String(), b.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("bill_id", b.ID.String()).
			Msg("failed to create bill request")
		return fmt.Errorf("failed to create bill request: %w", err)
	}
	return nil
}

func (r *billRepository) ListRecent(ctx context.Context, limit int) ([]model.BillRequest, error) {
	query := `
		SELECT id, session_id, table_number, payment_method, total::text, created_at
		FROM bill_requests
		ORDER BY created_at DESC, id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query bill requests")
		return nil, fmt.Errorf("failed to query bill requests: %w", err)
	}
	defer rows.Close()

	out := make([]model.BillRequest, 0, limit)
	for rows.Next() {
		var (
			b      model.BillRequest
			method string
			total  string
		)
		if err := rows.Scan(&b.ID, &b.SessionID, &b.TableNumber, &method, &total, &b.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan bill request row")
			return nil, fmt.Errorf("failed to scan bill request: %w", err)
		}
		b.PaymentMethod = model.PaymentMethod(method)
		if b.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("invalid bill total %q: %w", total, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill requests: %w", err)
	}
	return out, nil
}
