package handler

import (
	"net/http"

	"tableside/internal/service"

	"github.com/rs/zerolog"
)

// MenuHandler serves the read-only catalogue.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// Overview handles GET /api/menu.
func (h *MenuHandler) Overview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Overview())
}

// Categories handles GET /api/menu/categories?group=.
func (h *MenuHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.Categories(r.URL.Query().Get("group"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// Items handles GET /api/menu/items?category=.
func (h *MenuHandler) Items(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Items(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Item handles GET /api/menu/items/{itemID}.
func (h *MenuHandler) Item(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Item(pathParam(r, "itemID"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
