package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nancruz/blogindex/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error" validate:"required"`
	File  string `json:"file,omitempty"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// writeError maps an index error onto a status code and body.
// Unclassified errors are logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, op string, err error) {
	var pe *apperr.ParseError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.As(err, &pe):
		writeJSON(w, http.StatusUnprocessableEntity, errResponse{Error: pe.Err.Error(), File: pe.File})
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
