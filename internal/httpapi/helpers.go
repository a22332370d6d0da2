package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/evenup/evenup/internal/auth"
)

// maxBodyBytes bounds request bodies; expense payloads are tiny.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// serviceError maps a service failure onto an HTTP status. Not-found
// wrapping is string-based because the storage layer reports missing rows
// as formatted errors.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, auth.ErrEmailExists):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, auth.ErrWeakPassword):
		writeError(w, http.StatusBadRequest, err)
	case strings.Contains(err.Error(), "not found"):
		writeError(w, http.StatusNotFound, err)
	default:
		writeError(w, http.StatusBadRequest, err)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
