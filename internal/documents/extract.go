package documents

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
)

// Extractor turns an uploaded file into plain text.
type Extractor interface {
	ExtractText(ctx context.Context, data []byte, contentType string) (string, error)
}

// DocconvExtractor extracts text with docconv. Plain text passes through
// unconverted.
type DocconvExtractor struct {
	useReadability bool
}

func NewDocconvExtractor() *DocconvExtractor {
	return &DocconvExtractor{}
}

func (e *DocconvExtractor) ExtractText(ctx context.Context, data []byte, contentType string) (string, error) {
	if contentType == "text/plain" {
		return strings.TrimSpace(string(data)), nil
	}

	res, err := docconv.Convert(bytes.NewReader(data), contentType, e.useReadability)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", contentType, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Body), nil
}

var _ Extractor = (*DocconvExtractor)(nil)
