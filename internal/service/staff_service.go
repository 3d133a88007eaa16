package service

import (
	"context"
	"fmt"
	"strings"

	"tableside/internal/model"
	"tableside/internal/notify"
	"tableside/internal/repository"
	"tableside/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type complaintService struct {
	store    *session.Store
	repo     repository.ComplaintRepository
	notifier notify.Notifier
	logger   zerolog.Logger
}

// NewComplaintService creates a new complaint service.
func NewComplaintService(store *session.Store, repo repository.ComplaintRepository, notifier notify.Notifier, logger zerolog.Logger) ComplaintService {
	return &complaintService{
		store:    store,
		repo:     repo,
		notifier: notifier,
		logger:   logger.With().Str("service", "complaint").Logger(),
	}
}

// Submit stores the complaint, alerts staff and returns the table to the menu.
func (s *complaintService) Submit(ctx context.Context, sessionID uuid.UUID, req *model.ComplaintRequest) (*model.Complaint, error) {
	if !req.Type.Valid() {
		return nil, model.ErrInvalidComplaintType
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, model.ErrMissingField
	}

	var c model.Complaint
	_, err := s.store.Update(sessionID, func(sess *session.Session) error {
		c = model.Complaint{
			ID:          uuid.New(),
			SessionID:   sess.ID,
			TableNumber: sess.TableNumber,
			Type:        req.Type,
			Message:     msg,
			CreatedAt:   s.store.Now(),
		}
		if err := s.repo.Create(ctx, &c); err != nil {
			return fmt.Errorf("failed to submit complaint: %w", err)
		}
		sess.Screen = model.ScreenMenu
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.notifier.Complaint(ctx, c); err != nil {
		s.logger.Warn().Err(err).Str("complaint_id", c.ID.String()).Msg("staff not notified of complaint")
	}

	s.logger.Info().
		Str("complaint_id", c.ID.String()).
		Str("table", c.TableNumber).
		Str("type", string(c.Type)).
		Msg("complaint submitted")

	return &c, nil
}

func (s *complaintService) ListRecent(ctx context.Context, limit int) ([]model.Complaint, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	out, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return out, nil
}

type billService struct {
	store    *session.Store
	repo     repository.BillRepository
	notifier notify.Notifier
	currency string
	logger   zerolog.Logger
}

// NewBillService creates a new bill service.
func NewBillService(store *session.Store, repo repository.BillRepository, notifier notify.Notifier, currency string, logger zerolog.Logger) BillService {
	return &billService{
		store:    store,
		repo:     repo,
		notifier: notifier,
		currency: currency,
		logger:   logger.With().Str("service", "bill").Logger(),
	}
}

// Request records a bill request for the current cart total.
func (s *billService) Request(ctx context.Context, sessionID uuid.UUID, req *model.BillRequestPayload) (*model.BillRequest, error) {
	if !req.PaymentMethod.Valid() {
		return nil, model.ErrInvalidPaymentMethod
	}

	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	b := model.BillRequest{
		ID:            uuid.New(),
		SessionID:     sess.ID,
		TableNumber:   sess.TableNumber,
		PaymentMethod: req.PaymentMethod,
		Total:         sess.Cart.Total(),
		CreatedAt:     s.store.Now(),
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return nil, fmt.Errorf("failed to request bill: %w", err)
	}

	if err := s.notifier.Bill(ctx, b, s.currency); err != nil {
		s.logger.Warn().Err(err).Str("bill_id", b.ID.String()).Msg("staff not notified of bill request")
	}

	s.logger.Info().
		Str("bill_id", b.ID.String()).
		Str("table", b.TableNumber).
		Str("payment_method", string(b.PaymentMethod)).
		Msg("bill requested")

	return &b, nil
}

func (s *billService) ListRecent(ctx context.Context, limit int) ([]model.BillRequest, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}
	out, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill requests: %w", err)
	}
	return out, nil
}
