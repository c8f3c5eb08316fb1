// Package memstore is an in-memory Store used when no DATABASE_URL is
// configured. It stands in for a real backend with realistic but artificial
// latency so the rest of the stack can be exercised without infrastructure.
package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/doculaw-ai/doculaw/internal/models"
	"github.com/doculaw-ai/doculaw/internal/store"
)

type Option func(*MemStore)

// WithLatency sets the simulated round-trip delay applied before each
// operation. Zero disables it; tests run with zero.
func WithLatency(d time.Duration) Option {
	return func(m *MemStore) { m.latency = d }
}

// WithoutSeed skips the demo account and demo document.
func WithoutSeed() Option {
	return func(m *MemStore) { m.skipSeed = true }
}

// MemStore keeps everything in slices to preserve insertion order, matching
// the array semantics callers rely on. All access is mutex-guarded.
type MemStore struct {
	mu       sync.Mutex
	latency  time.Duration
	skipSeed bool

	users    []models.User
	profiles map[string]models.UserProfile // keyed by user id
	docs     []models.Document
	sessions []models.ChatSession
	messages []models.ChatMessage
}

func New(opts ...Option) *MemStore {
	m := &MemStore{profiles: make(map[string]models.UserProfile)}
	for _, opt := range opts {
		opt(m)
	}
	if !m.skipSeed {
		m.seed()
	}
	return m
}

func (m *MemStore) Close() error { return nil }

// delay blocks for the configured latency or until the context is cancelled.
// It runs before any state is read or written, so a cancelled operation never
// mutates the store.
func (m *MemStore) delay(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MemStore) SignIn(ctx context.Context, email, secret string) (store.Session, *models.User, error) {
	if err := m.delay(ctx); err != nil {
		return store.Session{}, nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.users {
		if m.users[i].Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(m.users[i].PasswordHash), []byte(secret)) != nil {
			return store.Session{}, nil, store.ErrInvalidCredentials
		}
		u := m.users[i]
		return store.Session{UserID: u.ID}, &u, nil
	}
	return store.Session{}, nil, store.ErrInvalidCredentials
}

func (m *MemStore) SignUp(ctx context.Context, email, secret, fullName string) (store.Session, *models.User, error) {
	if err := m.delay(ctx); err != nil {
		return store.Session{}, nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.users {
		if m.users[i].Email == email {
			return store.Session{}, nil, store.ErrUserExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return store.Session{}, nil, err
	}
	now := time.Now()
	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		Preferences:  models.DefaultPreferences(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users = append(m.users, u)
	return store.Session{UserID: u.ID}, &u, nil
}

// SignOut is a no-op besides the simulated latency; nothing is held per
// session, so signing out an already signed-out caller also succeeds.
func (m *MemStore) SignOut(ctx context.Context, _ store.Session) error {
	return m.delay(ctx)
}

func (m *MemStore) GetUser(ctx context.Context, sess store.Session) (*models.User, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.users {
		if m.users[i].ID == sess.UserID {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemStore) SaveProfile(ctx context.Context, sess store.Session, profile *models.UserProfile) error {
	if !sess.Valid() {
		return store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p := *profile
	p.LastUpdated = time.Now()
	m.profiles[sess.UserID] = p
	return nil
}

func (m *MemStore) GetProfile(ctx context.Context, sess store.Session) (*models.UserProfile, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[sess.UserID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (m *MemStore) CreateDocument(ctx context.Context, sess store.Session, doc *models.Document) error {
	if !sess.Valid() {
		return store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	d := *doc
	d.UserID = sess.UserID
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
	m.docs = append(m.docs, d)
	*doc = d
	return nil
}

func (m *MemStore) GetDocument(ctx context.Context, sess store.Session, id string) (*models.Document, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	// A document owned by someone else must look exactly like a missing one.
	for i := range m.docs {
		if m.docs[i].ID == id && m.docs[i].UserID == sess.UserID {
			d := m.docs[i]
			return &d, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemStore) ListDocuments(ctx context.Context, sess store.Session) ([]models.Document, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Document
	for i := range m.docs {
		if m.docs[i].UserID == sess.UserID {
			out = append(out, m.docs[i])
		}
	}
	return out, nil
}

func (m *MemStore) UpdateDocument(ctx context.Context, sess store.Session, doc *models.Document) error {
	if !sess.Valid() {
		return store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.docs {
		if m.docs[i].ID == doc.ID && m.docs[i].UserID == sess.UserID {
			d := *doc
			d.UserID = sess.UserID
			d.CreatedAt = m.docs[i].CreatedAt
			d.UpdatedAt = time.Now()
			m.docs[i] = d
			*doc = d
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *MemStore) DeleteDocument(ctx context.Context, sess store.Session, id string) error {
	if !sess.Valid() {
		return store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.docs {
		if m.docs[i].ID == id && m.docs[i].UserID == sess.UserID {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *MemStore) SearchDocuments(ctx context.Context, sess store.Session, query string) ([]models.Document, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Document
	for i := range m.docs {
		if m.docs[i].UserID != sess.UserID {
			continue
		}
		if q == "" || docMatches(&m.docs[i], q) {
			out = append(out, m.docs[i])
		}
	}
	return out, nil
}

func docMatches(d *models.Document, q string) bool {
	if strings.Contains(strings.ToLower(d.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(d.OriginalContent), q) {
		return true
	}
	for _, tag := range d.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func (m *MemStore) CreateChatSession(ctx context.Context, sess store.Session, cs *models.ChatSession) error {
	if !sess.Valid() {
		return store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	c := *cs
	c.UserID = sess.UserID
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	m.sessions = append(m.sessions, c)
	*cs = c
	return nil
}

func (m *MemStore) GetChatSession(ctx context.Context, sess store.Session, id string) (*models.ChatSession, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.sessions {
		if m.sessions[i].ID == id && m.sessions[i].UserID == sess.UserID {
			c := m.sessions[i]
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemStore) ListChatSessions(ctx context.Context, sess store.Session) ([]models.ChatSession, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.ChatSession
	for i := range m.sessions {
		if m.sessions[i].UserID == sess.UserID {
			out = append(out, m.sessions[i])
		}
	}
	return out, nil
}

func (m *MemStore) DeleteChatSession(ctx context.Context, sess store.Session, id string) error {
	if !sess.Valid() {
		return store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.sessions {
		if m.sessions[i].ID == id && m.sessions[i].UserID == sess.UserID {
			m.sessions = append(m.sessions[:i], m.sessions[i+1:]...)
			kept := m.messages[:0]
			for j := range m.messages {
				if m.messages[j].SessionID != id {
					kept = append(kept, m.messages[j])
				}
			}
			m.messages = kept
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *MemStore) AppendMessage(ctx context.Context, sess store.Session, msg *models.ChatMessage) error {
	if !sess.Valid() {
		return store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ms := *msg
	ms.UserID = sess.UserID
	if ms.ID == "" {
		ms.ID = uuid.NewString()
	}
	if ms.CreatedAt.IsZero() {
		ms.CreatedAt = time.Now()
	}
	m.messages = append(m.messages, ms)
	*msg = ms
	return nil
}

func (m *MemStore) ListMessages(ctx context.Context, sess store.Session, chatSessionID string) ([]models.ChatMessage, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	if err := m.delay(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.ChatMessage
	for i := range m.messages {
		if m.messages[i].SessionID == chatSessionID && m.messages[i].UserID == sess.UserID {
			out = append(out, m.messages[i])
		}
	}
	return out, nil
}

var _ store.Store = (*MemStore)(nil)
