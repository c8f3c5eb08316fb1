package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/doculaw-ai/doculaw/internal/api/middlewares"
	"github.com/doculaw-ai/doculaw/internal/chat"
	"github.com/doculaw-ai/doculaw/internal/models"
	"github.com/doculaw-ai/doculaw/internal/store"
)

type ChatHandler struct {
	store store.Store
	chat  *chat.Service
}

func NewChatHandler(st store.Store, chatSvc *chat.Service) *ChatHandler {
	return &ChatHandler{store: st, chat: chatSvc}
}

type createSessionRequest struct {
	DocumentID string `json:"documentId,omitempty"`
	Title      string `json:"title,omitempty"`
}

func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	sess := middlewares.SessionFromContext(r.Context())
	if req.DocumentID != "" {
		// A session may only be scoped to a document the caller owns.
		if _, err := h.store.GetDocument(r.Context(), sess, req.DocumentID); err != nil {
			writeStoreError(w, err)
			return
		}
	}

	cs := &models.ChatSession{DocumentID: req.DocumentID, Title: req.Title}
	if err := h.store.CreateChatSession(r.Context(), sess, cs); err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusCreated, cs)
}

func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	sessions, err := h.store.ListChatSessions(r.Context(), sess)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, sessions)
}

type sessionDetail struct {
	Session  *models.ChatSession  `json:"session"`
	Messages []models.ChatMessage `json:"messages"`
}

func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	id := chi.URLParam(r, "id")

	cs, err := h.store.GetChatSession(r.Context(), sess, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	messages, err := h.store.ListMessages(r.Context(), sess, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, sessionDetail{Session: cs, Messages: messages})
}

func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	if err := h.store.DeleteChatSession(r.Context(), sess, chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"deleted": true})
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type sendMessageResponse struct {
	Message *models.ChatMessage `json:"message"`
	Reply   *models.ChatMessage `json:"reply"`
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	sess := middlewares.SessionFromContext(r.Context())
	userMsg, aiMsg, err := h.chat.Send(r.Context(), sess, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, sendMessageResponse{Message: userMsg, Reply: aiMsg})
}
