// Package documents runs the upload and simplification pipeline.
package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/doculaw-ai/doculaw/internal/apierr"
	"github.com/doculaw-ai/doculaw/internal/logger"
	"github.com/doculaw-ai/doculaw/internal/models"
	"github.com/doculaw-ai/doculaw/internal/objectstore"
	"github.com/doculaw-ai/doculaw/internal/store"
)

// MaxUploadSize is the upload ceiling. Larger files never enter the store.
const MaxUploadSize = 10 << 20 // 10 MiB

// Validation failures carry their HTTP status so the handler layer maps them
// without special cases.
var (
	ErrUnsupportedType = apierr.New(http.StatusBadRequest, "unsupported_file_type",
		errors.New("unsupported file type"))
	ErrFileTooLarge = apierr.New(http.StatusBadRequest, "file_too_large",
		errors.New("file exceeds the 10MB limit"))
)

// acceptedTypes mirrors the upload surface whitelist.
var acceptedTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"text/plain": {},
}

// ValidateUpload rejects files outside the MIME whitelist or above the size
// ceiling, before any bytes are stored.
func ValidateUpload(contentType string, size int64) error {
	if _, ok := acceptedTypes[contentType]; !ok {
		return ErrUnsupportedType
	}
	if size > MaxUploadSize {
		return ErrFileTooLarge
	}
	return nil
}

type Service struct {
	store   store.Store
	objects objectstore.ObjectStore
	extract Extractor
	log     *logger.Logger
}

func NewService(st store.Store, objects objectstore.ObjectStore, extract Extractor, log *logger.Logger) *Service {
	return &Service{store: st, objects: objects, extract: extract, log: log}
}

// Upload validates the file, stores the original and the extracted text, and
// returns the completed document record. The object write and the text
// extraction run concurrently. Extraction failure marks the document errored
// rather than failing the upload: the original is already safe.
func (s *Service) Upload(ctx context.Context, sess store.Session, fileName, contentType string, data []byte) (*models.Document, error) {
	if err := ValidateUpload(contentType, int64(len(data))); err != nil {
		return nil, err
	}

	// Strip any path components from the client-supplied name.
	cleanName := filepath.Base(fileName)
	docID := uuid.NewString()
	key := fmt.Sprintf("%s/%s/%s", sess.UserID, docID, cleanName)

	var (
		storageURL string
		text       string
		extractErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url, err := s.objects.Put(gctx, key, bytes.NewReader(data), contentType)
		if err != nil {
			return err
		}
		storageURL = url
		return nil
	})
	g.Go(func() error {
		// Extraction failure is recorded on the document, not propagated:
		// it must not abort the object write.
		text, extractErr = s.extract.ExtractText(gctx, data, contentType)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("store original: %w", err)
	}

	doc := &models.Document{
		ID:              docID,
		Title:           titleFromFileName(cleanName),
		OriginalTitle:   cleanName,
		OriginalContent: text,
		FileType:        contentType,
		FileSize:        int64(len(data)),
		Status:          models.StatusCompleted,
		Type:            TypeFromMIME(contentType),
		StorageURL:      storageURL,
		StorageKey:      key,
	}
	if extractErr != nil {
		s.log.Warn("text extraction failed", "doc", docID, "type", contentType, "err", extractErr)
		doc.Status = models.StatusError
	} else {
		doc.Complexity = Complexity(text)
		doc.Tags = Keywords(text)
	}

	if err := s.store.CreateDocument(ctx, sess, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Simplify produces the plain-language rendering for a stored document. No
// model inference happens here; the rendering is a fixed template over the
// extracted text.
func (s *Service) Simplify(ctx context.Context, sess store.Session, id string) (*models.Document, error) {
	doc, err := s.store.GetDocument(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	doc.Status = models.StatusProcessing
	if err := s.store.UpdateDocument(ctx, sess, doc); err != nil {
		return nil, err
	}

	doc.SimplifiedContent = simplifiedRendering(doc)
	doc.SimplificationLevel = 85
	doc.Status = models.StatusCompleted
	if err := s.store.UpdateDocument(ctx, sess, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes the record and then the stored original. The object delete
// is best-effort: the record is already gone and the orphan is harmless.
func (s *Service) Delete(ctx context.Context, sess store.Session, id string) error {
	doc, err := s.store.GetDocument(ctx, sess, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteDocument(ctx, sess, id); err != nil {
		return err
	}
	if doc.StorageKey != "" {
		if err := s.objects.Delete(ctx, doc.StorageKey); err != nil {
			s.log.Warn("object delete failed", "doc", id, "key", doc.StorageKey, "err", err)
		}
	}
	return nil
}

func titleFromFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(base))
}

func simplifiedRendering(doc *models.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - SIMPLIFIED VERSION\n\n", strings.ToUpper(doc.Title))
	b.WriteString("This is a plain-language explanation of your document.\n\nKEY POINTS:\n\n")
	for i, para := range leadingParagraphs(doc.OriginalContent, 5) {
		fmt.Fprintf(&b, "Part %d:\n• %s\n\n", i+1, sentenceSummary(para))
	}
	b.WriteString("IMPORTANT: This is a simplified explanation. The original legal document " +
		"contains more details and specific legal terms that may be important for your situation.")
	return b.String()
}

func leadingParagraphs(text string, n int) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		out = append(out, p)
		if len(out) == n {
			break
		}
	}
	return out
}

func sentenceSummary(paragraph string) string {
	flat := strings.Join(strings.Fields(paragraph), " ")
	if idx := strings.IndexAny(flat, ".!?"); idx > 0 {
		return flat[:idx+1]
	}
	return flat
}
