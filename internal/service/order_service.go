package service

import (
	"context"
	"fmt"
	"time"

	"tableside/internal/kitchen"
	"tableside/internal/model"
	"tableside/internal/repository"
	"tableside/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const orderConfirmedMessage = "Commande confirmée ! Elle est partie en cuisine."

type orderService struct {
	store     *session.Store
	orderRepo repository.OrderRepository
	kitchen   kitchen.Publisher
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	store *session.Store,
	orderRepo repository.OrderRepository,
	publisher kitchen.Publisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		store:     store,
		orderRepo: orderRepo,
		kitchen:   publisher,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Confirm runs the confirmation reducer on the session's working copy and
// persists the ticket before the copy is committed. If the ticket cannot be
// stored the session keeps its cart.
func (s *orderService) Confirm(ctx context.Context, sessionID uuid.UUID) (*model.OrderConfirmation, error) {
	var (
		conf  session.Confirmation
		order model.Order
	)

	sess, err := s.store.Update(sessionID, func(sess *session.Session) error {
		if sess.Cart.IsEmpty() {
			return model.ErrEmptyCart
		}
		conf = sess.ConfirmOrder()
		order = newOrder(sess, conf, s.store.Now())
		return s.persist(ctx, &order)
	})
	if err != nil {
		return nil, err
	}

	if err := s.kitchen.Publish(ctx, kitchen.TicketFor(order)); err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("ticket stored but not delivered to the kitchen queue")
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("table", order.TableNumber).
		Str("total", order.Total.String()).
		Int("points_earned", conf.PointsEarned).
		Msg("order confirmed")

	return &model.OrderConfirmation{
		OrderID:      order.ID,
		Total:        conf.Total,
		PointsEarned: conf.PointsEarned,
		User:         conf.User,
		Screen:       sess.Screen,
		Message:      orderConfirmedMessage,
	}, nil
}

func newOrder(sess *session.Session, conf session.Confirmation, now time.Time) model.Order {
	order := model.Order{
		ID:           uuid.New(),
		SessionID:    sess.ID,
		TableNumber:  sess.TableNumber,
		Total:        conf.Total,
		PointsEarned: conf.PointsEarned,
		CreatedAt:    now,
		Lines:        make([]model.OrderLine, 0, len(conf.Lines)),
	}
	if conf.User != nil {
		name := conf.User.Name
		order.CustomerName = &name
	}
	for _, e := range conf.Lines {
		line := model.OrderLine{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ItemID:    e.Item.ID,
			ItemName:  e.Item.Name,
			UnitPrice: e.Item.Price,
			Quantity:  e.Quantity,
		}
		if e.Note != "" {
			note := e.Note
			line.Note = &note
		}
		order.Lines = append(order.Lines, line)
	}
	return order
}

func (s *orderService) persist(ctx context.Context, order *model.Order) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to confirm order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return fmt.Errorf("failed to confirm order: %w", err)
	}

	if err = s.orderRepo.CreateOrderLines(ctx, tx, order.Lines); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("line_count", len(order.Lines)).
			Msg("failed to create order lines")
		return fmt.Errorf("failed to confirm order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to confirm order: %w", err)
	}

	return nil
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// MaxListLimit bounds the staff queue listings.
const MaxListLimit = 200

func checkLimit(limit int) error {
	if limit < 1 || limit > MaxListLimit {
		return model.ErrInvalidLimit
	}
	return nil
}
