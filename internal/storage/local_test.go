package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreLifecycle(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "/media/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "recipes/a.png", []byte("img"), "image/png"))
	assert.FileExists(t, filepath.Join(root, "recipes", "a.png"))
	assert.Equal(t, "/media/recipes/a.png", store.URL("recipes/a.png"))

	require.NoError(t, store.Delete(ctx, "recipes/a.png"))
	assert.NoFileExists(t, filepath.Join(root, "recipes", "a.png"))

	// 重复删除不报错
	assert.NoError(t, store.Delete(ctx, "recipes/a.png"))
	assert.NoError(t, store.Delete(ctx, ""))
	assert.Equal(t, "", store.URL(""))
}

func TestLocalStoreStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(filepath.Join(root, "media"), "/media/")
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), "../escape.png", []byte("x"), "image/png"))
	assert.NoFileExists(t, filepath.Join(root, "escape.png"))
	assert.FileExists(t, filepath.Join(root, "media", "escape.png"))
}
