package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/doculaw-ai/doculaw/internal/api/middlewares"
	"github.com/doculaw-ai/doculaw/internal/logger"
	"github.com/doculaw-ai/doculaw/internal/models"
	"github.com/doculaw-ai/doculaw/internal/store"
)

type AuthHandler struct {
	store     store.Store
	jwtSecret string
	log       *logger.Logger
}

func NewAuthHandler(st store.Store, jwtSecret string, log *logger.Logger) *AuthHandler {
	return &AuthHandler{store: st, jwtSecret: jwtSecret, log: log}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	sess, user, err := h.store.SignUp(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	token, err := middlewares.GenerateToken(h.jwtSecret, sess.UserID)
	if err != nil {
		h.log.Error("token signing failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.log.Info("user signed up", "user", sess.UserID)
	writeData(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	sess, user, err := h.store.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	token, err := middlewares.GenerateToken(h.jwtSecret, sess.UserID)
	if err != nil {
		h.log.Error("token signing failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeData(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Logout always succeeds. Tokens are stateless, so the server-side effect is
// the store's bookkeeping hook plus a log line; the client discards its
// credential.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	if err := h.store.SignOut(r.Context(), sess); err != nil {
		writeStoreError(w, err)
		return
	}
	if sess.Valid() {
		h.log.Info("user signed out", "user", sess.UserID)
	}
	writeData(w, http.StatusOK, map[string]bool{"signedOut": true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	user, err := h.store.GetUser(r.Context(), sess)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, user)
}
