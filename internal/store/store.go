package store

import (
	"context"
	"errors"

	"github.com/doculaw-ai/doculaw/internal/models"
)

// Business-rule failures. Callers branch with errors.Is; anything else is an
// infrastructure error.
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrNotFound           = errors.New("not found")
)

// Session identifies the authenticated caller of a store operation. It is
// passed explicitly to every scoped operation instead of living in package
// state, so independent sessions (tests, multiple tokens) cannot contaminate
// each other. The zero Session is unauthenticated.
type Session struct {
	UserID string
}

// Valid reports whether the session carries an identity.
func (s Session) Valid() bool { return s.UserID != "" }

// Store defines all persistence operations the services need. Two
// implementations exist: an in-memory store with simulated latency and a
// Postgres-backed one.
//
// Ownership is enforced uniformly: a record owned by another user is
// indistinguishable from a record that does not exist (ErrNotFound), and any
// scoped operation with an invalid session fails with ErrNotAuthenticated.
type Store interface {
	// SignIn verifies the secret against the stored hash. Failure leaves the
	// store untouched and returns no session.
	SignIn(ctx context.Context, email, secret string) (Session, *models.User, error)
	// SignUp fails with ErrUserExists on a duplicate email (case-sensitive
	// exact match) without mutating anything; success creates the account with
	// default preferences and signs it in.
	SignUp(ctx context.Context, email, secret, fullName string) (Session, *models.User, error)
	// SignOut always succeeds and is idempotent. Sessions are derived per
	// request from the bearer token, so there is no server-side state to clear;
	// backends may use the call for audit bookkeeping.
	SignOut(ctx context.Context, sess Session) error
	GetUser(ctx context.Context, sess Session) (*models.User, error)

	SaveProfile(ctx context.Context, sess Session, profile *models.UserProfile) error
	GetProfile(ctx context.Context, sess Session) (*models.UserProfile, error)

	CreateDocument(ctx context.Context, sess Session, doc *models.Document) error
	// GetDocument returns ErrNotFound for both missing and non-owned ids.
	GetDocument(ctx context.Context, sess Session, id string) (*models.Document, error)
	// ListDocuments returns the caller's documents in insertion order.
	ListDocuments(ctx context.Context, sess Session) ([]models.Document, error)
	UpdateDocument(ctx context.Context, sess Session, doc *models.Document) error
	DeleteDocument(ctx context.Context, sess Session, id string) error
	// SearchDocuments filters the caller's documents by case-insensitive
	// substring match over title, tags and content. No ranking: insertion
	// order is preserved.
	SearchDocuments(ctx context.Context, sess Session, query string) ([]models.Document, error)

	CreateChatSession(ctx context.Context, sess Session, cs *models.ChatSession) error
	GetChatSession(ctx context.Context, sess Session, id string) (*models.ChatSession, error)
	ListChatSessions(ctx context.Context, sess Session) ([]models.ChatSession, error)
	DeleteChatSession(ctx context.Context, sess Session, id string) error
	// AppendMessage adds a message to the end of its session's thread.
	AppendMessage(ctx context.Context, sess Session, msg *models.ChatMessage) error
	// ListMessages returns the thread in strict append order.
	ListMessages(ctx context.Context, sess Session, chatSessionID string) ([]models.ChatMessage, error)

	Close() error
}
