package handler

import (
	"net/http"

	"tableside/internal/model"
	"tableside/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order confirmation and the ticket history.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Confirm handles POST /api/sessions/{sessionID}/orders.
func (h *OrderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	conf, err := h.service.Confirm(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	h.logger.Info().
		Str("order_id", conf.OrderID.String()).
		Str("session_id", id.String()).
		Str("total", conf.Total.String()).
		Msg("order confirmed")

	writeJSON(w, http.StatusCreated, conf)
}

// GetByID handles GET /api/admin/orders/{orderID}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "orderID", model.ErrOrderNotFound)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// List handles GET /api/admin/orders?limit=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	orders, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
