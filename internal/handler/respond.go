package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lumenframe/albums/internal/ctxkeys"
	"github.com/lumenframe/albums/internal/repository"
	"github.com/lumenframe/albums/internal/service"
	"github.com/lumenframe/albums/internal/validation"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Debug("failed to write response", "error", err)
	}
}

// writeError maps err onto a status code. Internal details are logged and
// never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, validation.ErrInvalidFilter):
		writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
	case errors.Is(err, service.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorBody{"invalid token"})
	case errors.Is(err, repository.ErrAlbumNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{"album not found"})
	case errors.Is(err, repository.ErrImageNotFound), errors.Is(err, service.ErrStorageDisabled):
		writeJSON(w, http.StatusNotFound, errorBody{"image not found"})
	case errors.Is(err, repository.ErrBusy):
		slog.Warn("database busy",
			"request_id", ctxkeys.RequestID(r.Context()),
			"path", r.URL.Path,
		)
		w.Header().Set("Retry-After", "1")
		writeJSON(w, http.StatusServiceUnavailable, errorBody{"service busy"})
	default:
		slog.Error("request failed",
			"error", err,
			"request_id", ctxkeys.RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{"internal server error"})
	}
}

// aborted reports whether the client went away while the request was being
// served. The response is then dropped; there is no one to send it to.
func aborted(r *http.Request) bool {
	if err := r.Context().Err(); err != nil {
		slog.Debug("client aborted request, discarding response",
			"request_id", ctxkeys.RequestID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		return true
	}
	return false
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{"not found"})
}
