package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doculaw-ai/doculaw/internal/models"
	"github.com/doculaw-ai/doculaw/internal/store"
)

func newTestStore() *MemStore {
	return New(WithoutSeed())
}

func TestSignUpThenSignIn(t *testing.T) {
	m := newTestStore()
	ctx := context.Background()

	sess, user, err := m.SignUp(ctx, "a@b.com", "demo123", "Ada")
	require.NoError(t, err)
	require.True(t, sess.Valid())
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, models.DefaultPreferences(), user.Preferences)

	again, _, err := m.SignIn(ctx, "a@b.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, again.UserID)
}

func TestSignInRejectsWrongSecret(t *testing.T) {
	m := newTestStore()
	ctx := context.Background()

	_, _, err := m.SignUp(ctx, "a@b.com", "demo123", "")
	require.NoError(t, err)

	sess, user, err := m.SignIn(ctx, "a@b.com", "wrong")
	require.ErrorIs(t, err, store.ErrInvalidCredentials)
	assert.False(t, sess.Valid())
	assert.Nil(t, user)

	// Unknown email is the same failure.
	_, _, err = m.SignIn(ctx, "nobody@b.com", "demo123")
	require.ErrorIs(t, err, store.ErrInvalidCredentials)
}

func TestSignUpDuplicateLeavesStoreUntouched(t *testing.T) {
	m := newTestStore()
	ctx := context.Background()

	first, _, err := m.SignUp(ctx, "a@b.com", "demo123", "")
	require.NoError(t, err)

	sess, user, err := m.SignUp(ctx, "a@b.com", "other", "Imposter")
	require.ErrorIs(t, err, store.ErrUserExists)
	assert.False(t, sess.Valid())
	assert.Nil(t, user)

	// The original account still signs in; no second account was created.
	again, _, err := m.SignIn(ctx, "a@b.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, first.UserID, again.UserID)
	assert.Len(t, m.users, 1)
}

func TestDuplicateEmailCheckIsCaseSensitive(t *testing.T) {
	m := newTestStore()
	ctx := context.Background()

	_, _, err := m.SignUp(ctx, "a@b.com", "demo123", "")
	require.NoError(t, err)

	_, _, err = m.SignUp(ctx, "A@b.com", "demo123", "")
	require.NoError(t, err)
}

func TestSignOutIsIdempotent(t *testing.T) {
	m := newTestStore()
	ctx := context.Background()

	sess, _, err := m.SignUp(ctx, "a@b.com", "demo123", "")
	require.NoError(t, err)

	require.NoError(t, m.SignOut(ctx, sess))
	require.NoError(t, m.SignOut(ctx, sess))
	require.NoError(t, m.SignOut(ctx, store.Session{}))

	// Discarding the session is what ends authentication: the zero session
	// fails every scoped operation afterwards.
	_, err = m.ListDocuments(ctx, store.Session{})
	require.ErrorIs(t, err, store.ErrNotAuthenticated)
}

func TestZeroSessionIsNotAuthenticated(t *testing.T) {
	m := newTestStore()
	ctx := context.Background()

	_, err := m.ListDocuments(ctx, store.Session{})
	require.ErrorIs(t, err, store.ErrNotAuthenticated)

	_, err = m.GetDocument(ctx, store.Session{}, "1")
	require.ErrorIs(t, err, store.ErrNotAuthenticated)

	err = m.CreateDocument(ctx, store.Session{}, &models.Document{Title: "x"})
	require.ErrorIs(t, err, store.ErrNotAuthenticated)
}

func TestOwnershipIndistinguishableFromAbsence(t *testing.T) {
	m := newTestStore()
	ctx := context.Background()

	alice, _, err := m.SignUp(ctx, "alice@b.com", "pw1", "")
	require.NoError(t, err)
	bob, _, err := m.SignUp(ctx, "bob@b.com", "pw2", "")
	require.NoError(t, err)

	doc := &models.Document{Title: "Lease"}
	require.NoError(t, m.CreateDocument(ctx, alice, doc))

	// Bob fetching Alice's document and fetching a nonexistent id must be
	// identical failures.
	_, errOwned := m.GetDocument(ctx, bob, doc.ID)
	_, errMissing := m.GetDocument(ctx, bob, "no-such-id")
	require.ErrorIs(t, errOwned, store.ErrNotFound)
	require.ErrorIs(t, errMissing, store.ErrNotFound)
	assert.Equal(t, errOwned, errMissing)

	require.ErrorIs(t, m.DeleteDocument(ctx, bob, doc.ID), store.ErrNotFound)
}

func TestCreateThenDeleteDocument(t *testing.T) {
	m := newTestStore()
	ctx := context.Background()

	sess, _, err := m.SignUp(ctx, "a@b.com", "demo123", "")
	require.NoError(t, err)

	doc := &models.Document{Title: "Lease", Status: models.StatusCompleted}
	require.NoError(t, m.CreateDocument(ctx, sess, doc))

	got, err := m.GetDocument(ctx, sess, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lease", got.Title)

	require.NoError(t, m.DeleteDocument(ctx, sess, doc.ID))

	_, err = m.GetDocument(ctx, sess, doc.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListDocumentsInsertionOrder(t *testing.T) {
	m := newTestStore()
	ctx := context.Background()

	sess, _, err := m.SignUp(ctx, "a@b.com", "demo123", "")
	require.NoError(t, err)

	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, m.CreateDocument(ctx, sess, &models.Document{Title: title}))
	}

	docs, err := m.ListDocuments(ctx, sess)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "first", docs[0].Title)
	assert.Equal(t, "second", docs[1].Title)
	assert.Equal(t, "third", docs[2].Title)
}

func TestSearchDocumentsSubstringNoRanking(t *testing.T) {
	m := newTestStore()
	ctx := context.Background()

	sess, _, err := m.SignUp(ctx, "a@b.com", "demo123", "")
	require.NoError(t, err)

	require.NoError(t, m.CreateDocument(ctx, sess, &models.Document{Title: "Rental Agreement"}))
	require.NoError(t, m.CreateDocument(ctx, sess, &models.Document{
		Title: "Offer Letter", Tags: []string{"employment"},
	}))
	require.NoError(t, m.CreateDocument(ctx, sess, &models.Document{
		Title: "Policy", OriginalContent: "This rental insurance policy...",
	}))

	docs, err := m.SearchDocuments(ctx, sess, "RENTAL")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	// Insertion order preserved, no scoring.
	assert.Equal(t, "Rental Agreement", docs[0].Title)
	assert.Equal(t, "Policy", docs[1].Title)

	docs, err = m.SearchDocuments(ctx, sess, "employment")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Offer Letter", docs[0].Title)
}

func TestMessagesKeepAppendOrder(t *testing.T) {
	m := newTestStore()
	ctx := context.Background()

	sess, _, err := m.SignUp(ctx, "a@b.com", "demo123", "")
	require.NoError(t, err)

	cs := &models.ChatSession{}
	require.NoError(t, m.CreateChatSession(ctx, sess, cs))

	for _, content := range []string{"q1", "a1", "q2", "a2"} {
		require.NoError(t, m.AppendMessage(ctx, sess, &models.ChatMessage{
			SessionID: cs.ID, Content: content, Sender: models.SenderUser,
		}))
	}

	msgs, err := m.ListMessages(ctx, sess, cs.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	for i, want := range []string{"q1", "a1", "q2", "a2"} {
		assert.Equal(t, want, msgs[i].Content)
	}
}

func TestDeleteChatSessionRemovesMessages(t *testing.T) {
	m := newTestStore()
	ctx := context.Background()

	sess, _, err := m.SignUp(ctx, "a@b.com", "demo123", "")
	require.NoError(t, err)

	cs := &models.ChatSession{}
	require.NoError(t, m.CreateChatSession(ctx, sess, cs))
	require.NoError(t, m.AppendMessage(ctx, sess, &models.ChatMessage{
		SessionID: cs.ID, Content: "hello", Sender: models.SenderUser,
	}))

	require.NoError(t, m.DeleteChatSession(ctx, sess, cs.ID))
	_, err = m.GetChatSession(ctx, sess, cs.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, m.messages)
}

func TestCancelledContextAbortsBeforeMutation(t *testing.T) {
	m := New(WithoutSeed(), WithLatency(50*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := m.SignUp(ctx, "a@b.com", "demo123", "")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.users)
}

func TestSeededDemoAccount(t *testing.T) {
	m := New() // seeded
	ctx := context.Background()

	sess, user, err := m.SignIn(ctx, DemoEmail, DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, "Demo User", user.FullName)

	docs, err := m.ListDocuments(ctx, sess)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Employment Contract - Tech Company", docs[0].Title)
	assert.Equal(t, models.StatusCompleted, docs[0].Status)
	assert.NotEmpty(t, docs[0].SimplifiedContent)
}

func TestProfileRoundTrip(t *testing.T) {
	m := newTestStore()
	ctx := context.Background()

	sess, _, err := m.SignUp(ctx, "a@b.com", "demo123", "")
	require.NoError(t, err)

	_, err = m.GetProfile(ctx, sess)
	require.ErrorIs(t, err, store.ErrNotFound)

	profile := &models.UserProfile{
		ID: "p1", Name: "Maria", PrimaryLanguage: "Spanish",
		EnglishProficiency: "beginner", LegalExperience: "none",
		PrimaryNeeds: []string{"rental"}, ReadingPreference: "simple",
		CommunicationStyle: "text", OnboardingCompleted: true,
	}
	require.NoError(t, m.SaveProfile(ctx, sess, profile))

	got, err := m.GetProfile(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, "Maria", got.Name)
	assert.True(t, got.OnboardingCompleted)
	assert.False(t, got.LastUpdated.IsZero())
}
