// Package objectstore persists uploaded originals. S3 is used when AWS
// credentials are configured, a local directory otherwise.
package objectstore

import (
	"context"
	"io"
)

// ObjectStore abstracts where original files live so the upload pipeline does
// not care about S3 vs local disk.
type ObjectStore interface {
	// Put stores the object and returns a stable URL or path for it.
	Put(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
