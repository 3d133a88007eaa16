package handler

import (
	"net/http"

	"tableside/internal/model"
	"tableside/internal/service"

	"github.com/rs/zerolog"
)

// SessionHandler handles table sessions, login and the cart.
type SessionHandler struct {
	service service.SessionService
	logger  zerolog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(service service.SessionService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger.With().Str("handler", "session").Logger(),
	}
}

// Start handles POST /api/sessions.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req model.StartSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	view, err := h.service.Start(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	h.logger.Info().
		Str("session_id", view.ID.String()).
		Str("table", view.TableNumber).
		Msg("session started")

	writeJSON(w, http.StatusCreated, view)
}

// Get handles GET /api/sessions/{sessionID}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	view, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Navigate handles PUT /api/sessions/{sessionID}/screen.
func (h *SessionHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	var req model.NavigateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	view, err := h.service.Navigate(r.Context(), id, req.Screen)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Login handles POST /api/sessions/{sessionID}/login.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	view, err := h.service.Login(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Loyalty handles GET /api/sessions/{sessionID}/loyalty.
func (h *SessionHandler) Loyalty(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	card, err := h.service.Loyalty(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// Cart handles GET /api/sessions/{sessionID}/cart.
func (h *SessionHandler) Cart(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	cart, err := h.service.Cart(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// ClearCart handles DELETE /api/sessions/{sessionID}/cart.
func (h *SessionHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	cart, err := h.service.ClearCart(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AddToCart handles POST /api/sessions/{sessionID}/cart/items.
func (h *SessionHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	var req model.AddToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	cart, err := h.service.AddToCart(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// UpdateCartItem handles PUT /api/sessions/{sessionID}/cart/items/{itemID}.
func (h *SessionHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	var req model.UpdateCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if req.Quantity == nil {
		writeError(w, model.ErrMissingField, h.logger)
		return
	}

	cart, err := h.service.UpdateCart(r.Context(), id, pathParam(r, "itemID"), *req.Quantity)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// RemoveCartItem handles DELETE /api/sessions/{sessionID}/cart/items/{itemID}.
func (h *SessionHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	cart, err := h.service.RemoveFromCart(r.Context(), id, pathParam(r, "itemID"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}
