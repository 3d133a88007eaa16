package handler

import (
	"net/http"

	"tableside/internal/service"

	"github.com/rs/zerolog"
)

// MessageRequest is a customer turn sent to the assistant.
type MessageRequest struct {
	Text string `json:"text"`
}

// AssistantHandler exposes the scripted assistant.
type AssistantHandler struct {
	service service.AssistantService
	logger  zerolog.Logger
}

// NewAssistantHandler creates a new assistant handler.
func NewAssistantHandler(service service.AssistantService, logger zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{
		service: service,
		logger:  logger.With().Str("handler", "assistant").Logger(),
	}
}

// Greeting handles GET /api/sessions/{sessionID}/assistant.
func (h *AssistantHandler) Greeting(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	reply, err := h.service.Greeting(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// Message handles POST /api/sessions/{sessionID}/assistant/messages.
func (h *AssistantHandler) Message(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	var req MessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	reply, err := h.service.Message(r.Context(), id, req.Text)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}
