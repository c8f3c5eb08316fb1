package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doculaw-ai/doculaw/internal/logger"
	"github.com/doculaw-ai/doculaw/internal/models"
	"github.com/doculaw-ai/doculaw/internal/responder"
	"github.com/doculaw-ai/doculaw/internal/store"
	"github.com/doculaw-ai/doculaw/internal/store/memstore"
)

func newTestService(t *testing.T, cfg Config) (*Service, *memstore.MemStore, store.Session) {
	t.Helper()
	m := memstore.New(memstore.WithoutSeed())
	sess, _, err := m.SignUp(context.Background(), "a@b.com", "demo123", "")
	require.NoError(t, err)
	return NewService(m, responder.NewCanned(), cfg, logger.NewNop()), m, sess
}

func TestSendAppendsUserMessageBeforeReply(t *testing.T) {
	svc, m, sess := newTestService(t, Config{})
	ctx := context.Background()

	cs := &models.ChatSession{}
	require.NoError(t, m.CreateChatSession(ctx, sess, cs))

	userMsg, aiMsg, err := svc.Send(ctx, sess, cs.ID, "What about my vacation days?")
	require.NoError(t, err)
	assert.Equal(t, models.SenderUser, userMsg.Sender)
	assert.Equal(t, models.SenderAI, aiMsg.Sender)

	msgs, err := m.ListMessages(ctx, sess, cs.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, userMsg.ID, msgs[0].ID)
	assert.Equal(t, aiMsg.ID, msgs[1].ID)
	assert.Contains(t, msgs[1].Content, "vacation days")
}

func TestSendAttachesReferenceForDocumentSession(t *testing.T) {
	svc, m, sess := newTestService(t, Config{})
	ctx := context.Background()

	doc := &models.Document{Title: "Employment Contract"}
	require.NoError(t, m.CreateDocument(ctx, sess, doc))

	cs := &models.ChatSession{DocumentID: doc.ID}
	require.NoError(t, m.CreateChatSession(ctx, sess, cs))

	_, aiMsg, err := svc.Send(ctx, sess, cs.ID, "Explain the confidentiality clause")
	require.NoError(t, err)
	require.Len(t, aiMsg.References, 1)
	ref := aiMsg.References[0]
	assert.Equal(t, doc.ID, ref.ID)
	assert.Equal(t, "Section 4: Confidentiality", ref.RelevantSection)
	assert.Equal(t, 0.85, ref.Confidence)
}

func TestSendWithoutDocumentHasNoReference(t *testing.T) {
	svc, m, sess := newTestService(t, Config{})
	ctx := context.Background()

	cs := &models.ChatSession{}
	require.NoError(t, m.CreateChatSession(ctx, sess, cs))

	_, aiMsg, err := svc.Send(ctx, sess, cs.ID, "hello")
	require.NoError(t, err)
	assert.Empty(t, aiMsg.References)
}

func TestSendCustomReferenceSection(t *testing.T) {
	svc, m, sess := newTestService(t, Config{
		ReferenceSection:    "Section 2: Compensation",
		ReferenceConfidence: 0.6,
	})
	ctx := context.Background()

	doc := &models.Document{Title: "Offer Letter"}
	require.NoError(t, m.CreateDocument(ctx, sess, doc))
	cs := &models.ChatSession{DocumentID: doc.ID}
	require.NoError(t, m.CreateChatSession(ctx, sess, cs))

	_, aiMsg, err := svc.Send(ctx, sess, cs.ID, "how much do I earn?")
	require.NoError(t, err)
	require.Len(t, aiMsg.References, 1)
	assert.Equal(t, "Section 2: Compensation", aiMsg.References[0].RelevantSection)
	assert.Equal(t, 0.6, aiMsg.References[0].Confidence)
}

func TestSendRejectsUnknownSession(t *testing.T) {
	svc, _, sess := newTestService(t, Config{})

	_, _, err := svc.Send(context.Background(), sess, "no-such-session", "hello")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSendCancelledDuringThinkLeavesOnlyUserMessage(t *testing.T) {
	svc, m, sess := newTestService(t, Config{ThinkDelay: 200 * time.Millisecond})

	cs := &models.ChatSession{}
	require.NoError(t, m.CreateChatSession(context.Background(), sess, cs))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	userMsg, aiMsg, err := svc.Send(ctx, sess, cs.ID, "hello")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotNil(t, userMsg)
	assert.Nil(t, aiMsg)

	// No reply may ever appear after the cancellation.
	time.Sleep(250 * time.Millisecond)
	msgs, err := m.ListMessages(context.Background(), sess, cs.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, models.SenderUser, msgs[0].Sender)
}
