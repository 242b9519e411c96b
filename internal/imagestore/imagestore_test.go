package imagestore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndOpen(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	imageData := []byte("fake jpeg data")

	path, err := store.Save(ctx, "equipment", "image/jpeg", bytes.NewReader(imageData))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, ".jpg", filepath.Ext(path))
	assert.True(t, store.Exists(path))

	reader, mimeType, err := store.Open(ctx, path)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, "image/jpeg", mimeType)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, imageData, data)
}

func TestSavePNGExtension(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "shoes", "image/png", bytes.NewReader([]byte("png")))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(path))
	assert.Equal(t, "image/png", MimeTypeForPath(path))
}

func TestDelete(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	path, err := store.Save(ctx, "equipment", "image/jpeg", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, path))
	assert.False(t, store.Exists(path))
	assert.ErrorIs(t, store.Delete(ctx, path), ErrImageNotFound)

	_, _, err = store.Open(ctx, path)
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestRejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = store.Open(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrOutsideBase)
	assert.ErrorIs(t, store.Delete(ctx, "/etc/passwd"), ErrOutsideBase)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	store, err := New(filepath.Join(dir, "images"))
	require.NoError(t, err)

	outside := filepath.Join(dir, "outside.jpg")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	assert.True(t, store.Exists(outside), "files outside the base still count")
	assert.False(t, store.Exists(filepath.Join(dir, "missing.jpg")))
	assert.False(t, store.Exists(dir), "directories are not images")
	assert.False(t, store.Exists(""))
}

func TestCanceledContext(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, "equipment", "image/jpeg", bytes.NewReader(nil))
	assert.ErrorIs(t, err, context.Canceled)
}
