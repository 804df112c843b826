package shared

import (
	"context"
	"errors"
	"fmt"

	"imagehub/internal/domain/models"
	"imagehub/internal/lib/imageinfo"
	"imagehub/internal/lib/slug"
	"imagehub/internal/storage"
)

// SlugAllocator выдает свободный slug в заданной области
type SlugAllocator interface {
	Allocate(ctx context.Context, name string, scope slug.Scope) (string, error)
}

// Translate приводит ошибки хранилища и библиотек к таксономии models:
// ErrValidation, ErrNotFound, ErrConflict. Исходная ошибка остается в цепочке.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrConflict):
		return err
	case errors.Is(err, imageinfo.ErrInvalidImage):
		return fmt.Errorf("%w: %w", models.ErrValidation, err)
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %w", models.ErrNotFound, err)
	case errors.Is(err, storage.ErrFolderExists),
		errors.Is(err, storage.ErrSlugTaken),
		errors.Is(err, slug.ErrExhausted):
		return fmt.Errorf("%w: %w", models.ErrConflict, err)
	default:
		return err
	}
}

// RetryOnSlugConflict повторяет fn, пока хранилище отвечает ErrSlugTaken,
// но не больше attempts раз. onRetry вызывается перед каждым повтором.
func RetryOnSlugConflict(attempts int, onRetry func(attempt int, err error), fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if !errors.Is(err, storage.ErrSlugTaken) {
			return err
		}

		if attempt < attempts && onRetry != nil {
			onRetry(attempt, err)
		}
	}

	return err
}
