// Package repository persists kitchen tickets and staff requests in PostgreSQL.
package repository

import (
	"context"

	"tableside/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderRepository defines data access for confirmed kitchen tickets.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts the ticket header within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderLines inserts the ticket lines within the provided transaction.
	CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error

	// GetByID retrieves a ticket with its lines. It returns nil when no ticket matches.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListRecent returns the newest tickets first, with their lines.
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
}

// ComplaintRepository defines data access for customer complaints.
type ComplaintRepository interface {
	Create(ctx context.Context, c *model.Complaint) error
	ListRecent(ctx context.Context, limit int) ([]model.Complaint, error)
}

// BillRepository defines data access for bill requests.
type BillRepository interface {
	Create(ctx context.Context, b *model.BillRequest) error
	ListRecent(ctx context.Context, limit int) ([]model.BillRequest, error)
}
