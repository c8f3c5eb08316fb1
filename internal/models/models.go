package models

import (
	"time"
)

// User represents an authenticated account of the system.
type User struct {
	ID           string      `db:"id" json:"id"`
	Email        string      `db:"email" json:"email"`
	FullName     string      `db:"full_name" json:"fullName"`
	PasswordHash string      `db:"password_hash" json:"-"`
	Preferences  Preferences `db:"preferences" json:"preferences"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updatedAt"`
}

// Preferences holds per-account display defaults. New accounts start with
// DefaultPreferences.
type Preferences struct {
	Language            string `json:"language"`
	SimplificationLevel string `json:"simplificationLevel"` // basic | intermediate | advanced
	Theme               string `json:"theme"`               // light | dark
	Notifications       bool   `json:"notifications"`
}

// DefaultPreferences returns the preferences assigned at signup.
func DefaultPreferences() Preferences {
	return Preferences{
		Language:            "en",
		SimplificationLevel: "intermediate",
		Theme:               "light",
		Notifications:       true,
	}
}

// UserProfile is the record produced by the onboarding wizard. It is only
// considered complete once every enumerated field is populated and
// OnboardingCompleted is set.
type UserProfile struct {
	ID                  string    `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	PrimaryLanguage     string    `db:"primary_language" json:"primaryLanguage"`
	EnglishProficiency  string    `db:"english_proficiency" json:"englishProficiency"` // beginner | intermediate | advanced
	LegalExperience     string    `db:"legal_experience" json:"legalExperience"`       // none | some | experienced
	PrimaryNeeds        []string  `db:"primary_needs" json:"primaryNeeds"`
	ReadingPreference   string    `db:"reading_preference" json:"readingPreference"`     // simple | standard | detailed
	CommunicationStyle  string    `db:"communication_style" json:"communicationStyle"`   // visual | text | audio
	OnboardingCompleted bool      `db:"onboarding_completed" json:"onboardingCompleted"`
	DateCompleted       time.Time `db:"date_completed" json:"dateCompleted"`
	LastUpdated         time.Time `db:"last_updated" json:"lastUpdated"`
}

// Document statuses.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// Document represents an uploaded legal document together with its
// simplified rendering. Every document belongs to exactly one user.
type Document struct {
	ID                  string    `db:"id" json:"id"`
	UserID              string    `db:"user_id" json:"userId"`
	Title               string    `db:"title" json:"title"`
	OriginalTitle       string    `db:"original_title" json:"originalTitle,omitempty"`
	OriginalContent     string    `db:"original_content" json:"originalContent"`
	SimplifiedContent   string    `db:"simplified_content" json:"simplifiedContent,omitempty"`
	FileType            string    `db:"file_type" json:"fileType"`
	FileSize            int64     `db:"file_size" json:"fileSize"`
	PageCount           int       `db:"page_count" json:"pageCount,omitempty"`
	Summary             string    `db:"summary" json:"summary,omitempty"`
	Complexity          string    `db:"complexity" json:"complexity,omitempty"` // low | medium | high
	SimplificationLevel int       `db:"simplification_level" json:"simplificationLevel,omitempty"`
	Tags                []string  `db:"tags" json:"tags,omitempty"`
	Status              string    `db:"status" json:"status"`       // processing | completed | error
	Type                string    `db:"type" json:"type,omitempty"` // e.g. contract, lease, insurance
	StorageURL          string    `db:"storage_url" json:"-"`
	StorageKey          string    `db:"storage_key" json:"-"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time `db:"updated_at" json:"updatedAt"`
}

// ChatSession groups the messages of one conversation, optionally scoped to a
// document.
type ChatSession struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"userId"`
	DocumentID string    `db:"document_id" json:"documentId,omitempty"`
	Title      string    `db:"title" json:"title,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Message senders.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ChatMessage is one message in a session. Messages are strictly ordered by
// creation time within a session; an AI message is always appended after the
// user message it answers.
type ChatMessage struct {
	ID         string      `db:"id" json:"id"`
	SessionID  string      `db:"session_id" json:"sessionId"`
	DocumentID string      `db:"document_id" json:"documentId,omitempty"`
	UserID     string      `db:"user_id" json:"userId"`
	Content    string      `db:"content" json:"content"`
	Sender     string      `db:"sender" json:"sender"` // user | ai
	References []Reference `db:"references" json:"references,omitempty"`
	CreatedAt  time.Time   `db:"created_at" json:"createdAt"`
}

// Reference is a citation attached to an AI message pointing at a document
// section. Confidence is in [0,1].
type Reference struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	RelevantSection string  `json:"relevantSection"`
	Confidence      float64 `json:"confidence"`
}
