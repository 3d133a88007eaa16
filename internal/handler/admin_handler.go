package handler

import (
	"net/http"
	"strconv"

	"tableside/internal/admin"
	"tableside/internal/catalog"
	"tableside/internal/middleware"
	"tableside/internal/service"

	"github.com/rs/zerolog"
)

// AdminLoginRequest carries the operator password.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// CategoryRequest creates or renames a category.
type CategoryRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PublishResponse names the object an export was uploaded to.
type PublishResponse struct {
	Key string `json:"key"`
}

// AdminHandler exposes the menu editor and the password gate.
type AdminHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(service service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("handler", "admin").Logger(),
	}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	tok, err := h.service.Login(clientAddr(r), req.Password)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

// Logout handles POST /api/admin/logout.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout(middleware.BearerToken(r))
	w.WriteHeader(http.StatusNoContent)
}

// Menu handles GET /api/admin/menu.
func (h *AdminHandler) Menu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Menu())
}

// AddCategory handles POST /api/admin/menu/categories.
func (h *AdminHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	c, err := h.service.AddCategory(req.ID, req.Name)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateCategory handles PUT /api/admin/menu/categories/{categoryID}.
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	c, err := h.service.UpdateCategory(pathParam(r, "categoryID"), req.Name)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteCategory handles DELETE /api/admin/menu/categories/{categoryID}.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(pathParam(r, "categoryID")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /api/admin/menu/categories/{categoryID}/items.
func (h *AdminHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var it catalog.Item
	if err := decodeJSON(w, r, &it); err != nil {
		writeError(w, err, h.logger)
		return
	}
	out, err := h.service.AddItem(pathParam(r, "categoryID"), it)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// UpdateItem handles PUT /api/admin/menu/categories/{categoryID}/items/{itemName}.
func (h *AdminHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var it catalog.Item
	if err := decodeJSON(w, r, &it); err != nil {
		writeError(w, err, h.logger)
		return
	}
	out, err := h.service.UpdateItem(pathParam(r, "categoryID"), pathParam(r, "itemName"), it)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteItem handles DELETE /api/admin/menu/categories/{categoryID}/items/{itemName}.
func (h *AdminHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteItem(pathParam(r, "categoryID"), pathParam(r, "itemName")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/admin/menu/export as a file download.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Export()
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+admin.ExportFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Publish handles POST /api/admin/menu/publish.
func (h *AdminHandler) Publish(w http.ResponseWriter, r *http.Request) {
	key, err := h.service.Publish(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, PublishResponse{Key: key})
}
