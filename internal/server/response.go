package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/billsyncorg/billsync/internal/auth"
	"github.com/billsyncorg/billsync/internal/ledger"
	"github.com/billsyncorg/billsync/internal/service"
	"github.com/billsyncorg/billsync/internal/storage"
)

// envelope is the uniform response body: a status code, a human-readable
// message, and an optional payload.
type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Body    interface{} `json:"body,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, message string, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Status: status, Message: message, Body: body}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError classifies an error onto the client/server fault split and
// writes the envelope. Client faults surface their own message; everything
// else is reported as an internal error with no detail leaked.
func writeError(w http.ResponseWriter, err error) {
	var (
		membership *ledger.MembershipError
		structural *ledger.StructuralError
		validation *service.ValidationError
	)

	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, storage.ErrConflict):
		writeJSON(w, http.StatusConflict, err.Error(), nil)
	case errors.As(err, &membership),
		errors.As(err, &structural),
		errors.As(err, &validation),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidPhone),
		errors.Is(err, auth.ErrEmailExists),
		errors.Is(err, auth.ErrPhoneExists):
		writeJSON(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrTokenBlacklisted):
		writeJSON(w, http.StatusUnauthorized, err.Error(), nil)
	default:
		slog.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

// decode parses the JSON request body into dst.
func decode(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, message, nil)
}
