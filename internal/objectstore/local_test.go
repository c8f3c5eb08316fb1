package objectstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Put(ctx, "user-1/doc-1/lease.txt", strings.NewReader("the lease"), "text/plain")
	require.NoError(t, err)
	assert.NotEmpty(t, url)

	data, err := s.Get(ctx, "user-1/doc-1/lease.txt")
	require.NoError(t, err)
	assert.Equal(t, "the lease", string(data))

	require.NoError(t, s.Delete(ctx, "user-1/doc-1/lease.txt"))
	_, err = s.Get(ctx, "user-1/doc-1/lease.txt")
	require.Error(t, err)

	// Deleting a missing object is not an error.
	assert.NoError(t, s.Delete(ctx, "user-1/doc-1/lease.txt"))
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Put(ctx, "../escape.txt", strings.NewReader("x"), "text/plain")
	require.Error(t, err)
	_, err = s.Get(ctx, "../../etc/passwd")
	require.Error(t, err)
}
