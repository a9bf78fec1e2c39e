package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "https://cdn.example.com",
	})
	require.NoError(t, err)
	return s
}

func TestLocalStorageSaveGet(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	content := []byte("image bytes")
	require.NoError(t, s.Save(ctx, "properties/p1/images/1_0.jpg", bytes.NewReader(content), "image/jpeg"))

	reader, err := s.Get(ctx, "properties/p1/images/1_0.jpg")
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	size, err := s.GetSize(ctx, "properties/p1/images/1_0.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)
}

func TestLocalStorageExists(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	exists, err := s.Exists(ctx, "missing.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Save(ctx, "present.jpg", bytes.NewReader([]byte("x")), "image/jpeg"))

	exists, err = s.Exists(ctx, "present.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalStorageGetURL(t *testing.T) {
	s := newTestStorage(t)

	url, err := s.GetURL(context.Background(), "properties/p1/images/1_0.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/properties/p1/images/1_0.jpg", url)
}

func TestLocalStorageDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a.jpg", bytes.NewReader([]byte("x")), "image/jpeg"))
	require.NoError(t, s.Delete(ctx, "a.jpg"))

	exists, err := s.Exists(ctx, "a.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing object is not an error.
	assert.NoError(t, s.Delete(ctx, "a.jpg"))
}

func TestLocalStorageDeleteAll(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "properties/p1/images/1_0.jpg", bytes.NewReader([]byte("a")), "image/jpeg"))
	require.NoError(t, s.Save(ctx, "properties/p1/images/1_1.jpg", bytes.NewReader([]byte("b")), "image/jpeg"))
	require.NoError(t, s.Save(ctx, "properties/p2/images/1_0.jpg", bytes.NewReader([]byte("c")), "image/jpeg"))

	deleted, err := s.DeleteAll(ctx, "properties/p1/images/")
	require.NoError(t, err)
	assert.Len(t, deleted, 2)

	exists, err := s.Exists(ctx, "properties/p2/images/1_0.jpg")
	require.NoError(t, err)
	assert.True(t, exists, "other listings' images must survive")
}

func TestLocalStorageDeleteAllMissingPrefix(t *testing.T) {
	s := newTestStorage(t)

	deleted, err := s.DeleteAll(context.Background(), "properties/none/images/")
	require.NoError(t, err)
	assert.Empty(t, deleted)
}
