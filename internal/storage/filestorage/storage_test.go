package filestorage_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"imagehub/internal/storage"
	"imagehub/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileStorage(t *testing.T) *filestorage.LocalFileStorage {
	t.Helper()

	fs, err := filestorage.NewLocalFileStorage(t.TempDir(), "http://test.local/media/")
	require.NoError(t, err)

	return fs
}

func TestLocalFileStorage_Save(t *testing.T) {
	fs := setupFileStorage(t)
	ctx := context.Background()

	t.Run("successful save", func(t *testing.T) {
		filePath, size, err := fs.Save(ctx, "uploads/1", "test.png", strings.NewReader("test content"))
		require.NoError(t, err)

		assert.Equal(t, "uploads/1/test.png", filePath)
		assert.Equal(t, int64(12), size)

		data, err := os.ReadFile(fs.GetFullPath(filePath))
		require.NoError(t, err)
		assert.Equal(t, "test content", string(data))
	})

	t.Run("same name does not overwrite", func(t *testing.T) {
		first, _, err := fs.Save(ctx, "uploads/2", "dup.png", strings.NewReader("first"))
		require.NoError(t, err)

		second, _, err := fs.Save(ctx, "uploads/2", "dup.png", strings.NewReader("second"))
		require.NoError(t, err)

		assert.Equal(t, "uploads/2/dup.png", first)
		assert.NotEqual(t, first, second)
		assert.True(t, strings.HasPrefix(second, "uploads/2/dup_"))
		assert.True(t, strings.HasSuffix(second, ".png"))

		data, err := os.ReadFile(fs.GetFullPath(first))
		require.NoError(t, err)
		assert.Equal(t, "first", string(data))
	})

	t.Run("path traversal is stripped", func(t *testing.T) {
		filePath, _, err := fs.Save(ctx, "uploads/3", "../../etc/my photo.png", strings.NewReader("x"))
		require.NoError(t, err)
		assert.Equal(t, "uploads/3/my_photo.png", filePath)
	})

	t.Run("save with context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := fs.Save(ctx, "uploads/1", "cancel.png", strings.NewReader("x"))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("cancel during copy leaves no file", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		content := &cancelingReader{r: strings.NewReader("partial"), cancel: cancel}
		_, _, err := fs.Save(ctx, "uploads/4", "midway.png", content)
		assert.ErrorIs(t, err, context.Canceled)

		entries, err := os.ReadDir(fs.GetFullPath("uploads/4"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("read error removes partial file", func(t *testing.T) {
		content := io.MultiReader(strings.NewReader("head"), iotest.ErrReader(errors.New("connection reset")))
		_, _, err := fs.Save(ctx, "uploads/5", "broken.png", content)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")

		entries, err := os.ReadDir(fs.GetFullPath("uploads/5"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

// cancelingReader отменяет контекст при первом чтении, имитируя обрыв запроса
type cancelingReader struct {
	r      io.Reader
	cancel context.CancelFunc
}

func (c *cancelingReader) Read(p []byte) (int, error) {
	c.cancel()
	return c.r.Read(p)
}

func TestLocalFileStorage_Delete(t *testing.T) {
	fs := setupFileStorage(t)
	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		filePath, _, err := fs.Save(ctx, "", "to_delete.gif", strings.NewReader("content"))
		require.NoError(t, err)

		require.NoError(t, fs.Delete(ctx, filePath))

		_, err = os.Stat(fs.GetFullPath(filePath))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("delete non-existent file", func(t *testing.T) {
		err := fs.Delete(ctx, "nonexistent.png")
		assert.ErrorIs(t, err, storage.ErrFileNotFound)
	})
}

func TestLocalFileStorage_URL(t *testing.T) {
	fs := setupFileStorage(t)

	assert.Equal(t, "http://test.local/media/uploads/1/a.png", fs.URL("uploads/1/a.png"))
	assert.Equal(t, filepath.Join(fs.GetBaseDir(), "uploads", "1", "a.png"), fs.GetFullPath("uploads/1/a.png"))
}

func TestNewLocalFileStorage_InvalidDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := filestorage.NewLocalFileStorage(filepath.Join(file, "sub"), "http://test.local")
	assert.Error(t, err)
}

func TestCleanFilename(t *testing.T) {
	tests := map[string]string{
		"photo.png":         "photo.png",
		"my photo.png":      "my_photo.png",
		"../../secret.jpg":  "secret.jpg",
		`C:\Users\me\a.gif`: "a.gif",
		"привет.png":        "file.png",
		"..":                "file",
	}

	for in, want := range tests {
		assert.Equal(t, want, filestorage.CleanFilename(in), in)
	}
}

func TestConcurrentSaves(t *testing.T) {
	fs := setupFileStorage(t)
	ctx := context.Background()

	var mu sync.Mutex
	paths := map[string]bool{}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			p, _, err := fs.Save(ctx, "concurrent", "same.png", strings.NewReader("data"))
			assert.NoError(t, err)

			mu.Lock()
			paths[p] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, paths, 10)
}
