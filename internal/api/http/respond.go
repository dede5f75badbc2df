package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"carrental-backend/internal/logger"
	"carrental-backend/internal/service"
	"carrental-backend/internal/utils"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps service and pricing errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrCarNotFound), errors.Is(err, service.ErrClientTypeNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrClientTypeExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidClientType),
		errors.Is(err, service.ErrInvalidQuote),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrRentalTooLong),
		errors.Is(err, utils.ErrInvalidDuration):
		return http.StatusBadRequest
	case errors.Is(err, utils.ErrMissingRate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
