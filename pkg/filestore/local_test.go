package filestore

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elemental-io/elemental/pkg/apperr"
	"github.com/elemental-io/elemental/pkg/config"
)

func newLocal(t *testing.T) (*Local, string) {
	t.Helper()
	root := t.TempDir()
	return NewLocal(config.FileStoreConfig{
		Path:              root,
		BaseURL:           "http://localhost:8000/files",
		MaxSizeBytes:      1024,
		AllowedExtensions: []string{"png", "pdf"},
	}), root
}

func TestLocalUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores under randomized name", func(t *testing.T) {
		store, root := newLocal(t)
		rel, err := store.Upload(ctx, "avatars", "me.png", []byte("content"))
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(rel, "avatars/"))
		assert.True(t, strings.HasSuffix(rel, ".png"))
		assert.NotContains(t, rel, "me.png")

		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
	})

	t.Run("two uploads never collide", func(t *testing.T) {
		store, _ := newLocal(t)
		a, err := store.Upload(ctx, "", "a.png", []byte("x"))
		require.NoError(t, err)
		b, err := store.Upload(ctx, "", "a.png", []byte("x"))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	rejects := []struct {
		name     string
		dir      string
		filename string
		content  []byte
	}{
		{"disallowed extension", "", "run.exe", []byte("x")},
		{"no extension", "", "README", []byte("x")},
		{"double extension", "", "a.tar.png", []byte("x")},
		{"separator in name", "", "a/b.png", []byte("x")},
		{"empty content", "", "a.png", nil},
		{"oversized content", "", "a.png", make([]byte, 2048)},
	}
	for _, tc := range rejects {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			store, _ := newLocal(t)
			_, err := store.Upload(ctx, tc.dir, tc.filename, tc.content)
			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPStatus())
		})
	}

	t.Run("rejects traversal dir", func(t *testing.T) {
		store, root := newLocal(t)
		_, err := store.Upload(ctx, "../outside", "a.png", []byte("x"))
		require.Error(t, err)
		_, statErr := os.Stat(filepath.Join(filepath.Dir(root), "outside"))
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestLocalUpdate(t *testing.T) {
	ctx := context.Background()
	store, root := newLocal(t)

	rel, err := store.Upload(ctx, "docs", "report.pdf", []byte("v1"))
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, rel, "report.pdf", []byte("v2")))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	t.Run("missing file", func(t *testing.T) {
		err := store.Update(ctx, "docs/nothere.pdf", "report.pdf", []byte("v2"))
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus())
	})

	t.Run("directory target", func(t *testing.T) {
		err := store.Update(ctx, "docs", "report.pdf", []byte("v2"))
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPStatus())
	})
}

func TestLocalRead(t *testing.T) {
	ctx := context.Background()
	store, _ := newLocal(t)

	rel, err := store.Upload(ctx, "docs", "note.pdf", []byte("payload"))
	require.NoError(t, err)

	data, err := store.Read(ctx, rel)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	_, err = store.Read(ctx, "docs/missing.pdf")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus())

	_, err = store.Read(ctx, "../outside.pdf")
	assert.Error(t, err)
}

func TestLocalDelete(t *testing.T) {
	ctx := context.Background()
	store, root := newLocal(t)

	rel, err := store.Upload(ctx, "", "a.png", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, rel))
	_, statErr := os.Stat(filepath.Join(root, rel))
	assert.True(t, os.IsNotExist(statErr))

	t.Run("missing file is silent", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "gone.png"))
	})

	t.Run("accepts full public url", func(t *testing.T) {
		rel, err := store.Upload(ctx, "", "b.png", []byte("x"))
		require.NoError(t, err)
		require.NoError(t, store.Delete(ctx, "http://localhost:8000/files/"+rel))
		ok, err := store.Exists(ctx, rel)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestLocalPublicURL(t *testing.T) {
	ctx := context.Background()
	store, _ := newLocal(t)

	rel, err := store.Upload(ctx, "imgs", "a.png", []byte("x"))
	require.NoError(t, err)

	url, err := store.PublicURL(ctx, rel)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/files/"+rel, url)

	_, err = store.PublicURL(ctx, "imgs/missing.png")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus())
}
