// Package onboarding implements the six-step setup wizard that produces a
// persisted UserProfile.
package onboarding

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doculaw-ai/doculaw/internal/models"
)

// Step is the wizard position. Navigation is strictly linear.
type Step int

const (
	StepWelcome Step = iota + 1
	StepLanguageAssessment
	StepLegalExperience
	StepNeeds
	StepPreferences
	StepComplete
)

func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "Welcome"
	case StepLanguageAssessment:
		return "Language Assessment"
	case StepLegalExperience:
		return "Legal Experience"
	case StepNeeds:
		return "Your Needs"
	case StepPreferences:
		return "Preferences"
	case StepComplete:
		return "Complete"
	}
	return "Unknown"
}

var (
	// ErrStepIncomplete means the current step's required fields are empty.
	ErrStepIncomplete = errors.New("current step is incomplete")
	// ErrNotAtFinalStep means Complete was called before the last step.
	ErrNotAtFinalStep = errors.New("wizard has not reached the final step")
)

// Data holds everything collected across the steps. It survives back/forward
// navigation within a wizard session and is only persisted on Complete.
type Data struct {
	Name               string
	PrimaryLanguage    string
	EnglishProficiency string // beginner | intermediate | advanced
	LegalExperience    string // none | some | experienced
	PrimaryNeeds       []string
	ReadingPreference  string // simple | standard | detailed
	CommunicationStyle string // visual | text | audio
}

// ProfileStore persists a completed profile.
type ProfileStore interface {
	Save(ctx context.Context, profile *models.UserProfile) error
}

// Wizard is the onboarding state machine. Not safe for concurrent use; the
// original runs one wizard per interactive session.
type Wizard struct {
	step     Step
	data     Data
	durable  ProfileStore
	fallback ProfileStore
	now      func() time.Time
}

type Option func(*Wizard)

// WithFallback sets the best-effort store used when the durable write fails.
func WithFallback(fs ProfileStore) Option {
	return func(w *Wizard) { w.fallback = fs }
}

// WithClock overrides the timestamp source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

func NewWizard(durable ProfileStore, opts ...Option) *Wizard {
	w := &Wizard{step: StepWelcome, durable: durable, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Step returns the current position.
func (w *Wizard) Step() Step { return w.step }

// Data returns a copy of everything collected so far.
func (w *Wizard) Data() Data {
	d := w.data
	d.PrimaryNeeds = append([]string(nil), w.data.PrimaryNeeds...)
	return d
}

func (w *Wizard) SetIdentity(name, primaryLanguage string) {
	w.data.Name = name
	w.data.PrimaryLanguage = primaryLanguage
}

func (w *Wizard) SetEnglishProficiency(level string) {
	w.data.EnglishProficiency = level
}

func (w *Wizard) SetLegalExperience(level string) {
	w.data.LegalExperience = level
}

// ToggleNeed adds the category if absent and removes it if present, so
// toggling twice is a no-op.
func (w *Wizard) ToggleNeed(category string) {
	for i, need := range w.data.PrimaryNeeds {
		if need == category {
			w.data.PrimaryNeeds = append(w.data.PrimaryNeeds[:i], w.data.PrimaryNeeds[i+1:]...)
			return
		}
	}
	w.data.PrimaryNeeds = append(w.data.PrimaryNeeds, category)
}

func (w *Wizard) SetPreferences(readingPreference, communicationStyle string) {
	w.data.ReadingPreference = readingPreference
	w.data.CommunicationStyle = communicationStyle
}

// StepValid reports whether the current step's required fields are populated.
func (w *Wizard) StepValid() bool {
	switch w.step {
	case StepWelcome:
		return strings.TrimSpace(w.data.Name) != "" && strings.TrimSpace(w.data.PrimaryLanguage) != ""
	case StepLanguageAssessment:
		return w.data.EnglishProficiency != ""
	case StepLegalExperience:
		return w.data.LegalExperience != ""
	case StepNeeds:
		return len(w.data.PrimaryNeeds) > 0
	case StepPreferences:
		return w.data.ReadingPreference != "" && w.data.CommunicationStyle != ""
	case StepComplete:
		return true
	}
	return false
}

// Advance moves to the next step if the current one validates. Past the final
// step it is a no-op.
func (w *Wizard) Advance() error {
	if w.step >= StepComplete {
		return nil
	}
	if !w.StepValid() {
		return ErrStepIncomplete
	}
	w.step++
	return nil
}

// Retreat moves back one step. Entered data is kept. No-op at the first step.
func (w *Wizard) Retreat() {
	if w.step > StepWelcome {
		w.step--
	}
}

// Complete synthesizes the profile and persists it. Only callable from the
// final step. A durable-write failure falls back to the best-effort store and
// still succeeds: onboarding must never block the user on persistence.
func (w *Wizard) Complete(ctx context.Context) (*models.UserProfile, error) {
	if w.step != StepComplete {
		return nil, ErrNotAtFinalStep
	}

	now := w.now()
	profile := &models.UserProfile{
		ID:                  uuid.NewString(),
		Name:                w.data.Name,
		PrimaryLanguage:     w.data.PrimaryLanguage,
		EnglishProficiency:  w.data.EnglishProficiency,
		LegalExperience:     w.data.LegalExperience,
		PrimaryNeeds:        append([]string(nil), w.data.PrimaryNeeds...),
		ReadingPreference:   w.data.ReadingPreference,
		CommunicationStyle:  w.data.CommunicationStyle,
		OnboardingCompleted: true,
		DateCompleted:       now,
		LastUpdated:         now,
	}

	if err := w.durable.Save(ctx, profile); err != nil {
		if w.fallback != nil {
			_ = w.fallback.Save(ctx, profile)
		}
	}
	return profile, nil
}
