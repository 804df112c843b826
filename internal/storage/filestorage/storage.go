package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"imagehub/internal/storage"
)

// FileStorage интерфейс для работы с файловым хранилищем.
// Пути всегда относительные и разделены "/": uploads/{folderID}/{filename}.
type FileStorage interface {
	Save(ctx context.Context, subPath, filename string, content io.Reader) (filePath string, fileSize int64, err error)
	Delete(ctx context.Context, filePath string) error
	URL(filePath string) string
}

var invalidNameChars = regexp.MustCompile(`[^\w.-]`)

// CleanFilename убирает каталоги и недопустимые символы из имени файла клиента
func CleanFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), `\`, "/"))
	name = strings.ReplaceAll(name, " ", "_")
	name = invalidNameChars.ReplaceAllString(name, "")

	if name == "" || name == "." || name == ".." {
		return "file"
	}
	if strings.TrimSuffix(name, path.Ext(name)) == "" {
		return "file" + name
	}

	return name
}

// alternativeName добавляет короткий случайный суффикс: a.png -> a_1b2c3d4.png
func alternativeName(filename string) string {
	ext := path.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "_" + uuid.NewString()[:8] + ext
}

func joinURL(baseURL, filePath string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(filePath, "/")
}

// LocalFileStorage реализация для локальной файловой системы
type LocalFileStorage struct {
	baseDir string // Базовый каталог для хранения (например: "./media")
	baseURL string // Базовый URL для доступа к файлам (например: "http://localhost:8080/media")
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: baseURL,
	}, nil
}

// Save записывает файл, не перезаписывая существующий: при совпадении имени
// подбирается альтернативное.
func (s *LocalFileStorage) Save(ctx context.Context, subPath, filename string, content io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	dir := filepath.Join(s.baseDir, filepath.FromSlash(subPath))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directories: %w", err)
	}

	name := CleanFilename(filename)

	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	for attempt := 0; errors.Is(err, os.ErrExist) && attempt < 10; attempt++ {
		name = alternativeName(CleanFilename(filename))
		dst, err = os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to create destination file: %w", err)
	}

	fullPath := dst.Name()

	discard := func() {
		_ = dst.Close()
		_ = os.Remove(fullPath)
	}

	size, err := io.Copy(dst, content)
	if err != nil {
		discard()
		return "", 0, fmt.Errorf("failed to copy file: %w", err)
	}
	// отменённая во время копирования загрузка не оставляет файл на диске
	if err := ctx.Err(); err != nil {
		discard()
		return "", 0, err
	}

	if err := dst.Close(); err != nil {
		_ = os.Remove(fullPath)
		return "", 0, fmt.Errorf("failed to close destination file: %w", err)
	}

	return path.Join(subPath, name), size, nil
}

// Delete удаляет файл из хранилища
func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	err := os.Remove(s.GetFullPath(filePath))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", filePath, storage.ErrFileNotFound)
	}

	return err
}

// GetFullPath возвращает полный путь к файлу на диске
func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(relativePath))
}

func (s *LocalFileStorage) URL(filePath string) string {
	return joinURL(s.baseURL, filePath)
}

func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}
