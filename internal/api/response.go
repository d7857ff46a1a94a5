package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sainikith07/DynoCollect/internal/identity"
	"github.com/sainikith07/DynoCollect/internal/metadata"
	"github.com/sainikith07/DynoCollect/internal/objectstore"
	"github.com/sainikith07/DynoCollect/internal/uploader"
)

// writeJSON encodes v with the given status. Encoding failures are
// logged and otherwise dropped; the header has already gone out.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

// writeError emits the error body shape clients already parse:
// a single "error" field.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeMappedError folds a domain error onto an HTTP status and a
// stable client-facing message.
func writeMappedError(w http.ResponseWriter, err error) {
	status, message := mapError(err)
	writeError(w, status, message)
}

// mapError is the single translation from the domain error taxonomy to
// HTTP. Handlers never pick status codes themselves.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, uploader.ErrUnknownBucket):
		return http.StatusBadRequest, "unknown upload bucket"
	case errors.Is(err, metadata.ErrEmptyText):
		return http.StatusBadRequest, "No text data provided"
	case errors.Is(err, objectstore.ErrInvalidInput):
		return http.StatusBadRequest, "invalid upload request"

	case errors.Is(err, identity.ErrAlreadyRegistered):
		return http.StatusConflict, "User with this email already exists"
	case errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid login credentials"
	case errors.Is(err, identity.ErrUnauthorized):
		return http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, identity.ErrUnavailable):
		return http.StatusServiceUnavailable, "Registration service temporarily unavailable. Please try again later."
	case errors.Is(err, identity.ErrTimeout):
		return http.StatusGatewayTimeout, "authentication service timed out"

	// Transfer failures stay 500: the suggestion is for the user, the
	// cause is in the log.
	case errors.Is(err, objectstore.ErrTimeout):
		return http.StatusInternalServerError, "Upload timed out. Please try again or use a smaller file."
	case errors.Is(err, objectstore.ErrConnection):
		return http.StatusInternalServerError, "Connection error during upload. Please try again or use a smaller file."
	case errors.Is(err, objectstore.ErrRejected):
		return http.StatusInternalServerError, "Upload failed. Please try again."

	case errors.Is(err, metadata.ErrUnavailable):
		return http.StatusServiceUnavailable, "database unavailable"
	}
	return http.StatusInternalServerError, "internal server error"
}
