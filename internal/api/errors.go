package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jaakkos/tourism-cms/internal/app"
	"github.com/jaakkos/tourism-cms/internal/domain"
)

// ErrorDetail is the body of every error response:
// {"error":{"code":"...","message":"..."}}.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Printf("encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

func (h *Handler) notFound(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusNotFound, "not_found", message)
}

// writeStoreError maps a store error to a status code.
func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrDuplicateID):
		h.writeError(w, http.StatusConflict, "duplicate_id", unwrapMessage(err, domain.ErrDuplicateID))
	case errors.Is(err, domain.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		h.writeError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, app.ErrPersist):
		h.logger.Printf("Persist failure: %v", err)
		h.writeError(w, http.StatusInternalServerError, "persist_failed", "change applied but could not be saved")
	default:
		h.logger.Printf("Internal error: %v", err)
		h.writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// unwrapMessage extracts the human-readable part after a wrapped sentinel.
// e.g. "create destination: validation error: destination requires name" → "destination requires name"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
