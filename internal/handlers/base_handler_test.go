package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eventboard/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "event not found", err: services.ErrEventNotFound, expectedStatus: http.StatusNotFound},
		{name: "empty title", err: services.ErrEmptyTitle, expectedStatus: http.StatusBadRequest},
		{name: "missing signup fields", err: services.ErrMissingFields, expectedStatus: http.StatusBadRequest},
		{name: "event limit", err: services.ErrEventLimit, expectedStatus: http.StatusConflict},
		{name: "duplicate user", err: services.ErrDuplicateUser, expectedStatus: http.StatusConflict},
		{name: "not admin", err: services.ErrNotAdmin, expectedStatus: http.StatusForbidden},
		{name: "wrong password", err: services.ErrWrongPassword, expectedStatus: http.StatusForbidden},
		{name: "invalid credentials", err: services.ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized},
		{name: "wrapped sentinel", err: fmt.Errorf("signup: %w", services.ErrMissingFields), expectedStatus: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("dial tcp: connection refused"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, statusForError(tt.err))
		})
	}
}

func TestBaseHandler_RespondServiceError(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	h := &BaseHandler{Logger: logger}

	t.Run("known errors keep their message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.RespondServiceError(rec, services.ErrMissingFields)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, services.ErrMissingFields.Error(), body["error"])
	})

	t.Run("unknown errors get a generic body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.RespondServiceError(rec, fmt.Errorf("failed to load events: %w", errors.New("dial tcp 10.0.0.5:3306: connect: connection refused")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "internal server error", body["error"])
		assert.NotContains(t, rec.Body.String(), "dial tcp")
	})
}
