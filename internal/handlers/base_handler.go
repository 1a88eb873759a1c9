package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eventboard/backend/internal/services"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps a service error to its HTTP status and sends it.
// Unknown errors get a generic body; the wrapped cause stays in the log only.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		h.RespondError(w, status, "internal server error")
		return
	}
	h.RespondError(w, status, err.Error())
}

// statusForError maps the service error taxonomy to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyTitle),
		errors.Is(err, services.ErrMissingFields):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrEventLimit),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrDuplicateUser):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotAdmin),
		errors.Is(err, services.ErrWrongPassword),
		errors.Is(err, services.ErrPendingApproval):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
