package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/doculaw-ai/doculaw/internal/api/middlewares"
	"github.com/doculaw-ai/doculaw/internal/documents"
	"github.com/doculaw-ai/doculaw/internal/logger"
	"github.com/doculaw-ai/doculaw/internal/store"
)

type DocumentHandler struct {
	store store.Store
	docs  *documents.Service
	log   *logger.Logger
}

func NewDocumentHandler(st store.Store, docs *documents.Service, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{store: st, docs: docs, log: log}
}

// Upload accepts one multipart file under the "document" field, bounded by
// the whitelist and size ceiling.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// One slack byte so an oversized file parses and gets the proper error
	// instead of a connection reset.
	if err := r.ParseMultipartForm(documents.MaxUploadSize + 1); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing document file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	data, err := io.ReadAll(io.LimitReader(file, documents.MaxUploadSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}

	sess := middlewares.SessionFromContext(r.Context())
	doc, err := h.docs.Upload(r.Context(), sess, header.Filename, contentType, data)
	if err != nil {
		// Validation errors carry their own status; anything else is an
		// infrastructure failure worth a log line.
		if !errors.Is(err, documents.ErrUnsupportedType) && !errors.Is(err, documents.ErrFileTooLarge) {
			h.log.Error("upload failed", "file", header.Filename, "err", err)
		}
		writeStoreError(w, err)
		return
	}

	writeData(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	docs, err := h.store.ListDocuments(r.Context(), sess)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, docs)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	doc, err := h.store.GetDocument(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	if err := h.docs.Delete(r.Context(), sess, chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *DocumentHandler) Simplify(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	doc, err := h.docs.Simplify(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, doc)
}
