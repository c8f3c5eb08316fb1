package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/doculaw-ai/doculaw/internal/apierr"
	"github.com/doculaw-ai/doculaw/internal/store"
)

// envelope is the response shape every endpoint uses.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Message: message})
}

// writeStoreError maps business-rule failures onto the HTTP taxonomy.
// Anything unrecognized is an infrastructure failure.
func writeStoreError(w http.ResponseWriter, err error) {
	var ae *apierr.Error
	switch {
	case errors.As(err, &ae):
		writeError(w, ae.Status, ae.Error())
	case errors.Is(err, store.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, store.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, store.ErrUserExists):
		writeError(w, http.StatusConflict, "user already exists")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
