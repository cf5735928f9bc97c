package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"cabinet/internal/apperr"
	applog "cabinet/internal/log"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeAppError maps a core error onto its HTTP status. Unclassified errors
// are logged and reported with fallback so internals stay private.
func writeAppError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		writeJSONError(w, http.StatusBadRequest, apperr.Message(err))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, apperr.Message(err))
	case errors.Is(err, apperr.ErrConflict):
		writeJSONError(w, http.StatusConflict, apperr.Message(err))
	default:
		applog.Error(r.Context(), fallback, "error", err)
		writeJSONError(w, http.StatusInternalServerError, fallback)
	}
}

func databaseReady(w http.ResponseWriter, r *http.Request) bool {
	if database != nil {
		return true
	}
	applog.Debug(r.Context(), "request without database", "path", r.URL.Path)
	writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
	return false
}
