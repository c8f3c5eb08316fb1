package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/doculaw-ai/doculaw/internal/api/middlewares"
	"github.com/doculaw-ai/doculaw/internal/logger"
	"github.com/doculaw-ai/doculaw/internal/models"
	"github.com/doculaw-ai/doculaw/internal/onboarding"
	"github.com/doculaw-ai/doculaw/internal/store"
)

// ProfileHandler serves the onboarding profile record.
type ProfileHandler struct {
	store    store.Store
	fallback onboarding.ProfileStore
	log      *logger.Logger
}

// NewProfileHandler takes an optional fallback profile store. When the durable
// write fails, a complete profile is written there instead and the request
// still succeeds: finishing onboarding must never strand the user.
func NewProfileHandler(st store.Store, fallback onboarding.ProfileStore, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{store: st, fallback: fallback, log: log}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	profile, err := h.store.GetProfile(r.Context(), sess)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, profile)
}

// Put stores the profile produced by the onboarding wizard. A profile only
// counts as complete with every field populated, so incomplete submissions
// are rejected rather than partially persisted.
func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !profileComplete(&profile) {
		writeError(w, http.StatusBadRequest, "profile is incomplete")
		return
	}

	sess := middlewares.SessionFromContext(r.Context())
	if err := h.store.SaveProfile(r.Context(), sess, &profile); err != nil {
		if errors.Is(err, store.ErrNotAuthenticated) || h.fallback == nil {
			writeStoreError(w, err)
			return
		}
		h.log.Warn("durable profile write failed, using fallback", "user", sess.UserID, "err", err)
		if ferr := h.fallback.Save(r.Context(), &profile); ferr != nil {
			writeStoreError(w, err)
			return
		}
	}
	writeData(w, http.StatusOK, profile)
}

func profileComplete(p *models.UserProfile) bool {
	return p.Name != "" &&
		p.PrimaryLanguage != "" &&
		p.EnglishProficiency != "" &&
		p.LegalExperience != "" &&
		len(p.PrimaryNeeds) > 0 &&
		p.ReadingPreference != "" &&
		p.CommunicationStyle != "" &&
		p.OnboardingCompleted
}
