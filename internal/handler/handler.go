// Package handler exposes the services over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"tableside/internal/admin"
	"tableside/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultListLimit = 50
	maxBodyBytes     = 1 << 20
)

var statusByCode = map[string]int{
	model.ErrCodeInvalidJSON:           http.StatusBadRequest,
	model.ErrCodeMissingField:          http.StatusBadRequest,
	model.ErrCodeInvalidQuantity:       http.StatusBadRequest,
	model.ErrCodeOptionNotFound:        http.StatusBadRequest,
	model.ErrCodeInvalidTable:          http.StatusBadRequest,
	model.ErrCodeInvalidLanguage:       http.StatusBadRequest,
	model.ErrCodeInvalidScreen:         http.StatusBadRequest,
	model.ErrCodeInvalidLogin:          http.StatusBadRequest,
	model.ErrCodeEmptyCart:             http.StatusBadRequest,
	model.ErrCodeInvalidComplaintType:  http.StatusBadRequest,
	model.ErrCodeInvalidPaymentMethod:  http.StatusBadRequest,
	model.ErrCodeUnknownCategory:       http.StatusBadRequest,
	model.ErrCodeInvalidPrice:          http.StatusBadRequest,
	model.ErrCodeInvalidQueryParameter: http.StatusBadRequest,
	model.ErrCodeItemNotFound:          http.StatusNotFound,
	model.ErrCodeSessionNotFound:       http.StatusNotFound,
	model.ErrCodeOrderNotFound:         http.StatusNotFound,
	model.ErrCodeCategoryNotFound:      http.StatusNotFound,
	model.ErrCodeMenuItemNotFound:      http.StatusNotFound,
	model.ErrCodeItemUnavailable:       http.StatusConflict,
	model.ErrCodeNotLoggedIn:           http.StatusConflict,
	model.ErrCodeCategoryExists:        http.StatusConflict,
	model.ErrCodeMenuItemExists:        http.StatusConflict,
	model.ErrCodeInvalidPassword:       http.StatusUnauthorized,
	model.ErrCodeUnauthorised:          http.StatusUnauthorized,
	model.ErrCodeTooManyAttempts:       http.StatusTooManyRequests,
	model.ErrCodeExportUnavailable:     http.StatusServiceUnavailable,
}

var errInvalidJSON = model.NewDomainError(model.ErrCodeInvalidJSON, "Request body is not valid JSON")

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps err to a status code. Domain errors carry their own code
// and message; anything else is logged and reported as an internal error.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var lockout *admin.LockoutError
	if errors.As(err, &lockout) {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(lockout.RetryAfter.Seconds()))))
		writeJSON(w, http.StatusTooManyRequests, model.ErrorResponse{
			Error:   model.ErrCodeTooManyAttempts,
			Message: lockout.Error(),
		})
		return
	}

	var de *model.DomainError
	if errors.As(err, &de) {
		status, ok := statusByCode[de.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		logger.Debug().Str("code", de.Code).Int("status", status).Msg("request rejected")
		writeJSON(w, status, model.ErrorResponse{Error: de.Code, Message: de.Message})
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "An internal error occurred",
	})
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidJSON
	}
	return nil
}

// uuidParam parses a path parameter as a UUID. Malformed ids are reported as
// not found with the given error.
func uuidParam(r *http.Request, name string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}

// pathParam returns a decoded path parameter. Item ids and names may carry
// spaces, accents or an escaped slash.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// limitParam reads ?limit=, defaulting to 50.
func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.ErrInvalidLimit
	}
	return n, nil
}

// clientAddr identifies the caller for login throttling.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func sessionID(r *http.Request) (uuid.UUID, error) {
	return uuidParam(r, "sessionID", model.ErrSessionNotFound)
}
