package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/jobdeck/jobdeck/internal/domain"
	"github.com/jobdeck/jobdeck/internal/repository"
)

// writeJSON writes JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends an error message.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError is the single boundary converting typed domain errors to
// HTTP statuses. Handlers pass errors through untouched; anything unknown
// becomes a generic 500 so internals never leak.
func writeDomainError(logger *slog.Logger, w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, repository.ErrConflict):
		// 409 would be more precise; 400 matches what clients expect.
		writeError(w, http.StatusBadRequest, "duplicate value entered for email, please choose another value")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "job with this id does not exist")
	default:
		logger.Error("unhandled error", "error", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, try again later")
	}
}
