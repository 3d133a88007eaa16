package repository

import (
	"context"
	"fmt"

	"tableside/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type complaintRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewComplaintRepository creates a new PostgreSQL-backed complaint repository.
func NewComplaintRepository(pool *pgxpool.Pool, logger zerolog.Logger) ComplaintRepository {
	return &complaintRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "complaint").Logger(),
	}
}

func (r *complaintRepository) Create(ctx context.Context, c *model.Complaint) error {
	query := `
		INSERT INTO complaints (id, session_id, table_number, type, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, c.ID, c.SessionID, c.TableNumber, string(c.Type), c.Message, c.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("complaint_id", c.ID.String()).
			Msg("failed to create complaint")
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

func (r *complaintRepository) ListRecent(ctx context.Context, limit int) ([]model.Complaint, error) {
	query := `
		SELECT id, session_id, table_number, type, message, created_at
		FROM complaints
		ORDER BY created_at DESC, id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query complaints")
		return nil, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer rows.Close()

	out := make([]model.Complaint, 0, limit)
	for rows.Next() {
		var (
			c    model.Complaint
			kind string
		)
		if err := rows.Scan(&c.ID, &c.SessionID, &c.TableNumber, &kind, &c.Message, &c.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan complaint row")
			return nil, fmt.Errorf("failed to scan complaint: %w", err)
		}
		c.Type = model.ComplaintType(kind)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating complaints: %w", err)
	}
	return out, nil
}
