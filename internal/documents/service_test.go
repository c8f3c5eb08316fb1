package documents

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doculaw-ai/doculaw/internal/logger"
	"github.com/doculaw-ai/doculaw/internal/models"
	"github.com/doculaw-ai/doculaw/internal/objectstore"
	"github.com/doculaw-ai/doculaw/internal/store"
	"github.com/doculaw-ai/doculaw/internal/store/memstore"
)

func newUploadService(t *testing.T) (*Service, *memstore.MemStore, *objectstore.LocalStore, store.Session) {
	t.Helper()
	m := memstore.New(memstore.WithoutSeed())
	objects, err := objectstore.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	sess, _, err := m.SignUp(context.Background(), "a@b.com", "demo123", "")
	require.NoError(t, err)
	svc := NewService(m, objects, NewDocconvExtractor(), logger.NewNop())
	return svc, m, objects, sess
}

func TestValidateUpload(t *testing.T) {
	assert.NoError(t, ValidateUpload("application/pdf", 1024))
	assert.NoError(t, ValidateUpload("text/plain", MaxUploadSize))

	assert.ErrorIs(t, ValidateUpload("image/png", 1024), ErrUnsupportedType)
	assert.ErrorIs(t, ValidateUpload("application/zip", 1024), ErrUnsupportedType)
	assert.ErrorIs(t, ValidateUpload("text/plain", MaxUploadSize+1), ErrFileTooLarge)
}

func TestUploadPlainText(t *testing.T) {
	svc, m, objects, sess := newUploadService(t)
	ctx := context.Background()

	content := "This agreement contains a covenant between the tenant and the landlord. " +
		"The tenant shall pay rent monthly."
	doc, err := svc.Upload(ctx, sess, "rental-agreement.txt", "text/plain", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, "rental agreement", doc.Title)
	assert.Equal(t, "rental-agreement.txt", doc.OriginalTitle)
	assert.Equal(t, content, doc.OriginalContent)
	assert.Equal(t, models.StatusCompleted, doc.Status)
	assert.Equal(t, "Text Document", doc.Type)
	assert.NotEmpty(t, doc.Complexity)
	assert.Contains(t, doc.Tags, "tenant")

	// The record is scoped to the uploader and the original is on disk.
	got, err := m.GetDocument(ctx, sess, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Title, got.Title)

	raw, err := objects.Get(ctx, doc.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, content, string(raw))
}

func TestUploadStripsPathFromFileName(t *testing.T) {
	svc, _, _, sess := newUploadService(t)

	doc, err := svc.Upload(context.Background(), sess, "../../etc/passwd.txt", "text/plain", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "passwd.txt", doc.OriginalTitle)
	assert.False(t, strings.Contains(doc.StorageKey, ".."))
}

func TestUploadRejectsBadType(t *testing.T) {
	svc, m, _, sess := newUploadService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, sess, "cat.png", "image/png", []byte("x"))
	require.ErrorIs(t, err, ErrUnsupportedType)

	docs, err := m.ListDocuments(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSimplifyRendersTemplate(t *testing.T) {
	svc, _, _, sess := newUploadService(t)
	ctx := context.Background()

	content := "The employee agrees to work forty hours per week.\n\n" +
		"The employer agrees to pay a monthly salary."
	doc, err := svc.Upload(ctx, sess, "offer_letter.txt", "text/plain", []byte(content))
	require.NoError(t, err)

	doc, err = svc.Simplify(ctx, sess, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, doc.Status)
	assert.Equal(t, 85, doc.SimplificationLevel)
	assert.Contains(t, doc.SimplifiedContent, "OFFER LETTER - SIMPLIFIED VERSION")
	assert.Contains(t, doc.SimplifiedContent, "Part 1:")
	assert.Contains(t, doc.SimplifiedContent, "Part 2:")
	assert.Contains(t, doc.SimplifiedContent, "The employee agrees to work forty hours per week.")
}

func TestDeleteRemovesRecordAndObject(t *testing.T) {
	svc, m, objects, sess := newUploadService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, sess, "lease.txt", "text/plain", []byte("the lease"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, sess, doc.ID))

	_, err = m.GetDocument(ctx, sess, doc.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = objects.Get(ctx, doc.StorageKey)
	require.Error(t, err)
}
