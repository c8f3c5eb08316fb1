// Package pgstore is the Postgres-backed Store, selected when DATABASE_URL is
// set. Array-ish fields (tags, needs, references) are stored as jsonb.
package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"

	"github.com/doculaw-ai/doculaw/internal/models"
	"github.com/doculaw-ai/doculaw/internal/store"
)

type PgStore struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*PgStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := ensureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &PgStore{db: db}, nil
}

func (s *PgStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PgStore) SignIn(ctx context.Context, email, secret string) (store.Session, *models.User, error) {
	const q = `
		SELECT id, email, full_name, password_hash, preferences, created_at, updated_at
		FROM users WHERE email = $1
	`
	var (
		u     models.User
		prefs []byte
	)
	err := s.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &prefs, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Session{}, nil, store.ErrInvalidCredentials
	}
	if err != nil {
		return store.Session{}, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(secret)) != nil {
		return store.Session{}, nil, store.ErrInvalidCredentials
	}
	if err := json.Unmarshal(prefs, &u.Preferences); err != nil {
		return store.Session{}, nil, fmt.Errorf("decode preferences: %w", err)
	}
	return store.Session{UserID: u.ID}, &u, nil
}

func (s *PgStore) SignUp(ctx context.Context, email, secret, fullName string) (store.Session, *models.User, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return store.Session{}, nil, err
	}
	if exists {
		return store.Session{}, nil, store.ErrUserExists
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
	prefs, err := json.Marshal(u.Preferences)
	if err != nil {
		return store.Session{}, nil, err
	}

	const q = `
		INSERT INTO users (id, email, full_name, password_hash, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := s.db.ExecContext(ctx, q,
		u.ID, u.Email, u.FullName, u.PasswordHash, prefs, u.CreatedAt, u.UpdatedAt); err != nil {
		return store.Session{}, nil, err
	}
	return store.Session{UserID: u.ID}, &u, nil
}

// SignOut holds no server-side session state; the call exists so backends
// that do can hook it.
func (s *PgStore) SignOut(ctx context.Context, _ store.Session) error {
	return ctx.Err()
}

func (s *PgStore) GetUser(ctx context.Context, sess store.Session) (*models.User, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	const q = `
		SELECT id, email, full_name, password_hash, preferences, created_at, updated_at
		FROM users WHERE id = $1
	`
	var (
		u     models.User
		prefs []byte
	)
	err := s.db.QueryRowContext(ctx, q, sess.UserID).Scan(
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &prefs, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(prefs, &u.Preferences); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return &u, nil
}

func (s *PgStore) SaveProfile(ctx context.Context, sess store.Session, profile *models.UserProfile) error {
	if !sess.Valid() {
		return store.ErrNotAuthenticated
	}
	needs, err := json.Marshal(profile.PrimaryNeeds)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO user_profiles
			(user_id, id, name, primary_language, english_proficiency, legal_experience,
			 primary_needs, reading_preference, communication_style, onboarding_completed,
			 date_completed, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			primary_language = EXCLUDED.primary_language,
			english_proficiency = EXCLUDED.english_proficiency,
			legal_experience = EXCLUDED.legal_experience,
			primary_needs = EXCLUDED.primary_needs,
			reading_preference = EXCLUDED.reading_preference,
			communication_style = EXCLUDED.communication_style,
			onboarding_completed = EXCLUDED.onboarding_completed,
			date_completed = EXCLUDED.date_completed,
			last_updated = now()
	`
	_, err = s.db.ExecContext(ctx, q,
		sess.UserID, profile.ID, profile.Name, profile.PrimaryLanguage,
		profile.EnglishProficiency, profile.LegalExperience, needs,
		profile.ReadingPreference, profile.CommunicationStyle,
		profile.OnboardingCompleted, profile.DateCompleted)
	return err
}

func (s *PgStore) GetProfile(ctx context.Context, sess store.Session) (*models.UserProfile, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	const q = `
		SELECT id, name, primary_language, english_proficiency, legal_experience,
		       primary_needs, reading_preference, communication_style,
		       onboarding_completed, date_completed, last_updated
		FROM user_profiles WHERE user_id = $1
	`
	var (
		p     models.UserProfile
		needs []byte
	)
	err := s.db.QueryRowContext(ctx, q, sess.UserID).Scan(
		&p.ID, &p.Name, &p.PrimaryLanguage, &p.EnglishProficiency, &p.LegalExperience,
		&needs, &p.ReadingPreference, &p.CommunicationStyle,
		&p.OnboardingCompleted, &p.DateCompleted, &p.LastUpdated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(needs, &p.PrimaryNeeds); err != nil {
		return nil, fmt.Errorf("decode needs: %w", err)
	}
	return &p, nil
}

const documentColumns = `
	id, user_id, title, original_title, original_content, simplified_content,
	file_type, file_size, page_count, summary, complexity, simplification_level,
	tags, status, type, storage_url, storage_key, created_at, updated_at
`

func scanDocument(row interface{ Scan(...any) error }) (*models.Document, error) {
	var (
		d    models.Document
		tags []byte
	)
	err := row.Scan(
		&d.ID, &d.UserID, &d.Title, &d.OriginalTitle, &d.OriginalContent, &d.SimplifiedContent,
		&d.FileType, &d.FileSize, &d.PageCount, &d.Summary, &d.Complexity, &d.SimplificationLevel,
		&tags, &d.Status, &d.Type, &d.StorageURL, &d.StorageKey, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &d.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	return &d, nil
}

func (s *PgStore) CreateDocument(ctx context.Context, sess store.Session, doc *models.Document) error {
	if !sess.Valid() {
		return store.ErrNotAuthenticated
	}
	doc.UserID = sess.UserID
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	tags, err := json.Marshal(doc.Tags)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err = s.db.ExecContext(ctx, q,
		doc.ID, doc.UserID, doc.Title, doc.OriginalTitle, doc.OriginalContent, doc.SimplifiedContent,
		doc.FileType, doc.FileSize, doc.PageCount, doc.Summary, doc.Complexity, doc.SimplificationLevel,
		tags, doc.Status, doc.Type, doc.StorageURL, doc.StorageKey, doc.CreatedAt, doc.UpdatedAt)
	return err
}

func (s *PgStore) GetDocument(ctx context.Context, sess store.Session, id string) (*models.Document, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	// Scoping by user_id makes a non-owned document indistinguishable from a
	// missing one.
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND user_id = $2`
	d, err := scanDocument(s.db.QueryRowContext(ctx, q, id, sess.UserID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return d, err
}

func (s *PgStore) ListDocuments(ctx context.Context, sess store.Session) ([]models.Document, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 ORDER BY created_at`
	return s.queryDocuments(ctx, q, sess.UserID)
}

func (s *PgStore) SearchDocuments(ctx context.Context, sess store.Session, query string) ([]models.Document, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	// Plain substring filter, no ranking. Ordering mirrors ListDocuments.
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE user_id = $1
		  AND (title ILIKE '%' || $2 || '%'
		   OR original_content ILIKE '%' || $2 || '%'
		   OR tags::text ILIKE '%' || $2 || '%')
		ORDER BY created_at
	`
	return s.queryDocuments(ctx, q, sess.UserID, query)
}

func (s *PgStore) queryDocuments(ctx context.Context, q string, args ...any) ([]models.Document, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (s *PgStore) UpdateDocument(ctx context.Context, sess store.Session, doc *models.Document) error {
	if !sess.Valid() {
		return store.ErrNotAuthenticated
	}
	tags, err := json.Marshal(doc.Tags)
	if err != nil {
		return err
	}
	const q = `
		UPDATE documents SET
			title = $3, original_title = $4, original_content = $5, simplified_content = $6,
			file_type = $7, file_size = $8, page_count = $9, summary = $10, complexity = $11,
			simplification_level = $12, tags = $13, status = $14, type = $15, storage_url = $16,
			storage_key = $17, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`
	res, err := s.db.ExecContext(ctx, q,
		doc.ID, sess.UserID, doc.Title, doc.OriginalTitle, doc.OriginalContent, doc.SimplifiedContent,
		doc.FileType, doc.FileSize, doc.PageCount, doc.Summary, doc.Complexity,
		doc.SimplificationLevel, tags, doc.Status, doc.Type, doc.StorageURL, doc.StorageKey)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *PgStore) DeleteDocument(ctx context.Context, sess store.Session, id string) error {
	if !sess.Valid() {
		return store.ErrNotAuthenticated
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE id = $1 AND user_id = $2`, id, sess.UserID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *PgStore) CreateChatSession(ctx context.Context, sess store.Session, cs *models.ChatSession) error {
	if !sess.Valid() {
		return store.ErrNotAuthenticated
	}
	cs.UserID = sess.UserID
	if cs.ID == "" {
		cs.ID = uuid.NewString()
	}
	if cs.CreatedAt.IsZero() {
		cs.CreatedAt = time.Now()
	}
	const q = `
		INSERT INTO chat_sessions (id, user_id, document_id, title, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, q, cs.ID, cs.UserID, cs.DocumentID, cs.Title, cs.CreatedAt)
	return err
}

func (s *PgStore) GetChatSession(ctx context.Context, sess store.Session, id string) (*models.ChatSession, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	const q = `
		SELECT id, user_id, document_id, title, created_at
		FROM chat_sessions WHERE id = $1 AND user_id = $2
	`
	var cs models.ChatSession
	err := s.db.QueryRowContext(ctx, q, id, sess.UserID).Scan(
		&cs.ID, &cs.UserID, &cs.DocumentID, &cs.Title, &cs.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (s *PgStore) ListChatSessions(ctx context.Context, sess store.Session) ([]models.ChatSession, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	const q = `
		SELECT id, user_id, document_id, title, created_at
		FROM chat_sessions WHERE user_id = $1 ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, q, sess.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ChatSession
	for rows.Next() {
		var cs models.ChatSession
		if err := rows.Scan(&cs.ID, &cs.UserID, &cs.DocumentID, &cs.Title, &cs.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

func (s *PgStore) DeleteChatSession(ctx context.Context, sess store.Session, id string) error {
	if !sess.Valid() {
		return store.ErrNotAuthenticated
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM chat_sessions WHERE id = $1 AND user_id = $2`, id, sess.UserID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return store.ErrNotFound
	}
	// Messages cascade via FK.
	return nil
}

func (s *PgStore) AppendMessage(ctx context.Context, sess store.Session, msg *models.ChatMessage) error {
	if !sess.Valid() {
		return store.ErrNotAuthenticated
	}
	msg.UserID = sess.UserID
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	refs, err := json.Marshal(msg.References)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO chat_messages
			(id, session_id, document_id, user_id, content, sender, refs, created_at, seq)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM chat_messages WHERE session_id = $2))
	`
	_, err = s.db.ExecContext(ctx, q,
		msg.ID, msg.SessionID, msg.DocumentID, msg.UserID, msg.Content, msg.Sender, refs, msg.CreatedAt)
	return err
}

func (s *PgStore) ListMessages(ctx context.Context, sess store.Session, chatSessionID string) ([]models.ChatMessage, error) {
	if !sess.Valid() {
		return nil, store.ErrNotAuthenticated
	}
	// seq, not created_at, carries the ordering contract: two messages written
	// in the same clock tick still list in append order.
	const q = `
		SELECT id, session_id, document_id, user_id, content, sender, refs, created_at
		FROM chat_messages
		WHERE session_id = $1 AND user_id = $2
		ORDER BY seq
	`
	rows, err := s.db.QueryContext(ctx, q, chatSessionID, sess.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ChatMessage
	for rows.Next() {
		var (
			m    models.ChatMessage
			refs []byte
		)
		if err := rows.Scan(&m.ID, &m.SessionID, &m.DocumentID, &m.UserID,
			&m.Content, &m.Sender, &refs, &m.CreatedAt); err != nil {
			return nil, err
		}
		if len(refs) > 0 {
			if err := json.Unmarshal(refs, &m.References); err != nil {
				return nil, fmt.Errorf("decode references: %w", err)
			}
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ store.Store = (*PgStore)(nil)
