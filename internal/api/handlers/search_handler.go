package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/doculaw-ai/doculaw/internal/api/middlewares"
	"github.com/doculaw-ai/doculaw/internal/store"
)

// SearchHandler filters the caller's documents by substring. No ranking.
type SearchHandler struct {
	store store.Store
}

func NewSearchHandler(st store.Store) *SearchHandler {
	return &SearchHandler{store: st}
}

type searchRequest struct {
	Query string `json:"query"`
}

func (h *SearchHandler) Documents(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	sess := middlewares.SessionFromContext(r.Context())
	docs, err := h.store.SearchDocuments(r.Context(), sess, req.Query)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, docs)
}
