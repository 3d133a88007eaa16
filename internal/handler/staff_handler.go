package handler

import (
	"net/http"

	"tableside/internal/model"
	"tableside/internal/service"

	"github.com/rs/zerolog"
)

// StaffHandler handles complaints and bill requests, both the customer side
// and the staff queues.
type StaffHandler struct {
	complaints service.ComplaintService
	bills      service.BillService
	logger     zerolog.Logger
}

// NewStaffHandler creates a new staff handler.
func NewStaffHandler(complaints service.ComplaintService, bills service.BillService, logger zerolog.Logger) *StaffHandler {
	return &StaffHandler{
		complaints: complaints,
		bills:      bills,
		logger:     logger.With().Str("handler", "staff").Logger(),
	}
}

// SubmitComplaint handles POST /api/sessions/{sessionID}/complaints.
func (h *StaffHandler) SubmitComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	var req model.ComplaintRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	c, err := h.complaints.Submit(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// RequestBill handles POST /api/sessions/{sessionID}/bill.
func (h *StaffHandler) RequestBill(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	var req model.BillRequestPayload
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	b, err := h.bills.Request(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// ListComplaints handles GET /api/admin/complaints?limit=.
func (h *StaffHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	list, err := h.complaints.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ListBills handles GET /api/admin/bills?limit=.
func (h *StaffHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	list, err := h.bills.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
