package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/najdi/internal/lifecycle"
	"github.com/erazemk/najdi/internal/notify"
	"github.com/erazemk/najdi/internal/phone"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("error encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// serviceError maps a lifecycle error to an HTTP error response.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrItemNotFound):
		jsonError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, lifecycle.ErrImageNotFound):
		jsonError(w, http.StatusNotFound, "image not found")
	case errors.Is(err, lifecycle.ErrForbidden):
		jsonError(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, lifecycle.ErrInvalidItem),
		errors.Is(err, lifecycle.ErrNoImages),
		errors.Is(err, lifecycle.ErrEmptyMessage):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, lifecycle.ErrUploadFailed):
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, notify.ErrDispatchFailed),
		errors.Is(err, phone.ErrInvalidFormat),
		errors.Is(err, phone.ErrInvalidNumber):
		slog.Warn("notification failed", "error", err)
		jsonError(w, http.StatusBadGateway, "failed to notify owner")
	default:
		slog.Error("request failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
