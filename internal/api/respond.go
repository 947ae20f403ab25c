package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"shared-calendar/internal/model"
	"shared-calendar/internal/schedule"
)

// errorResponse is the standard error body.
type errorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{
		Error:   http.StatusText(statusCode),
		Code:    statusCode,
		Message: message,
	})
}

// writeDomainError maps domain errors onto HTTP status codes. An exhausted
// slot search and a lost optimistic-lock race are conflicts (409), which
// keeps them distinguishable from plain bad requests without any string
// matching.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schedule.ErrNoSlot), errors.Is(err, model.ErrStaleVersion):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, schedule.ErrInvalidWindow),
		errors.Is(err, schedule.ErrImpossibleDuration):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("unhandled domain error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
