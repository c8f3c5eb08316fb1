// Package chat appends user messages and their generated replies to session
// threads.
package chat

import (
	"context"
	"time"

	"github.com/doculaw-ai/doculaw/internal/logger"
	"github.com/doculaw-ai/doculaw/internal/models"
	"github.com/doculaw-ai/doculaw/internal/responder"
	"github.com/doculaw-ai/doculaw/internal/store"
)

// Config tunes reply behavior. The reference defaults reproduce the original
// client, which cited the same section for every reply; override
// ReferenceSection to change that.
type Config struct {
	ThinkDelay          time.Duration
	ReferenceSection    string
	ReferenceConfidence float64
}

func DefaultConfig() Config {
	return Config{
		ThinkDelay:          time.Second,
		ReferenceSection:    "Section 4: Confidentiality",
		ReferenceConfidence: 0.85,
	}
}

type Service struct {
	store    store.Store
	strategy responder.Strategy
	cfg      Config
	log      *logger.Logger
}

func NewService(st store.Store, strategy responder.Strategy, cfg Config, log *logger.Logger) *Service {
	if cfg.ReferenceSection == "" {
		cfg.ReferenceSection = DefaultConfig().ReferenceSection
	}
	if cfg.ReferenceConfidence == 0 {
		cfg.ReferenceConfidence = DefaultConfig().ReferenceConfidence
	}
	return &Service{store: st, strategy: strategy, cfg: cfg, log: log}
}

// Send appends the caller's message, generates the reply and appends it.
// The user message always precedes its reply and every user message gets
// exactly one reply. Cancelling the context during the think delay leaves the
// thread with the user message only and no reply is ever written afterwards.
func (s *Service) Send(ctx context.Context, sess store.Session, chatSessionID, content string) (*models.ChatMessage, *models.ChatMessage, error) {
	cs, err := s.store.GetChatSession(ctx, sess, chatSessionID)
	if err != nil {
		return nil, nil, err
	}
	if cs.DocumentID != "" {
		// Document-scoped sessions require the document to still resolve
		// under the caller's ownership.
		if _, err := s.store.GetDocument(ctx, sess, cs.DocumentID); err != nil {
			return nil, nil, err
		}
	}

	userMsg := &models.ChatMessage{
		SessionID:  cs.ID,
		DocumentID: cs.DocumentID,
		Content:    content,
		Sender:     models.SenderUser,
	}
	if err := s.store.AppendMessage(ctx, sess, userMsg); err != nil {
		return nil, nil, err
	}

	if err := s.think(ctx); err != nil {
		return userMsg, nil, err
	}

	reply, err := s.strategy.Respond(ctx, content)
	if err != nil {
		s.log.Error("reply generation failed", "session", cs.ID, "err", err)
		return userMsg, nil, err
	}

	aiMsg := &models.ChatMessage{
		SessionID:  cs.ID,
		DocumentID: cs.DocumentID,
		Content:    reply,
		Sender:     models.SenderAI,
	}
	if cs.DocumentID != "" {
		aiMsg.References = []models.Reference{{
			ID:              cs.DocumentID,
			Title:           "Document Section",
			RelevantSection: s.cfg.ReferenceSection,
			Confidence:      s.cfg.ReferenceConfidence,
		}}
	}
	if err := s.store.AppendMessage(ctx, sess, aiMsg); err != nil {
		return userMsg, nil, err
	}
	return userMsg, aiMsg, nil
}

// think simulates response latency. It is cancellable so navigating away does
// not leave a timer that mutates state later.
func (s *Service) think(ctx context.Context) error {
	if s.cfg.ThinkDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.cfg.ThinkDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
