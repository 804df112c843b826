package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"imagehub/internal/domain/models"
	"imagehub/internal/lib/imageinfo"
	"imagehub/internal/lib/logger/sl"
	"imagehub/internal/lib/slug"
	"imagehub/internal/metrics"
	"imagehub/internal/repository"
	"imagehub/internal/services/shared"
	"imagehub/internal/storage/filestorage"
)

type ImageService struct {
	log         *slog.Logger
	folders     repository.FolderRepository
	images      repository.ImageRepository
	tx          repository.Transactor
	slugs       shared.SlugAllocator
	fileStorage filestorage.FileStorage
	slugRetries int
}

func NewImageService(
	log *slog.Logger,
	folders repository.FolderRepository,
	images repository.ImageRepository,
	tx repository.Transactor,
	slugs shared.SlugAllocator,
	fileStorage filestorage.FileStorage,
	slugRetries int,
) *ImageService {
	return &ImageService{
		log:         log,
		folders:     folders,
		images:      images,
		tx:          tx,
		slugs:       slugs,
		fileStorage: fileStorage,
		slugRetries: slugRetries,
	}
}

// CreateImage принимает загруженный файл в папку: проверяет и декодирует его,
// сохраняет файл, в транзакции выделяет slug и создает запись, затем пересчитывает папку.
// Метаданные вычисляются только здесь, изменить их после создания нельзя.
func (s *ImageService) CreateImage(ctx context.Context, folderIdent models.Identifier, upload models.Upload) (models.Image, error) {
	const op = "image_service.CreateImage"

	log := s.log.With(
		slog.String("op", op),
		slog.String("folder", folderIdent.String()),
		slog.String("filename", upload.Filename),
	)

	log.Info("ingesting image")

	folder, err := s.folders.FindFolder(ctx, folderIdent)
	if err != nil {
		metrics.ImagesIngested.WithLabelValues("not_found").Inc()
		return models.Image{}, fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	name := imageinfo.NameFromFilename(upload.Filename)

	info, err := imageinfo.Inspect(upload.Filename, upload.Content)
	if err != nil {
		metrics.ImagesIngested.WithLabelValues("invalid").Inc()
		log.Warn("image validation failed", sl.Err(err))
		return models.Image{}, fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	filePath, _, err := s.fileStorage.Save(ctx, models.UploadDir(folder.ID), upload.Filename, bytes.NewReader(upload.Content))
	if err != nil {
		metrics.ImagesIngested.WithLabelValues("error").Inc()
		log.Error("failed to save file", sl.Err(err))
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	var created models.Image

	err = shared.RetryOnSlugConflict(s.slugRetries,
		func(attempt int, err error) {
			metrics.SlugRetries.WithLabelValues("folder").Inc()
			log.Warn("slug conflict detected, retrying", slog.Int("attempt", attempt), sl.Err(err))
		},
		func() error {
			return s.tx.WithinTx(ctx, func(ctx context.Context) error {
				imageSlug, err := s.slugs.Allocate(ctx, name, slug.InFolder(folder.ID))
				if err != nil {
					return err
				}

				created, err = s.images.CreateImage(ctx, models.Image{
					FolderID:    folder.ID,
					Name:        name,
					Slug:        imageSlug,
					StoragePath: filePath,
					MimeType:    info.MimeType,
					Width:       info.Width,
					Height:      info.Height,
					FileSize:    info.FileSize,
					IsColor:     info.IsColor,
				})
				return err
			})
		},
	)
	if err != nil {
		if delErr := s.fileStorage.Delete(ctx, filePath); delErr != nil {
			log.Warn("failed to remove stored file", slog.String("path", filePath), sl.Err(delErr))
		}

		err = shared.Translate(err)
		if errors.Is(err, models.ErrConflict) {
			metrics.ImagesIngested.WithLabelValues("conflict").Inc()
		} else {
			metrics.ImagesIngested.WithLabelValues("error").Inc()
		}

		log.Error("failed to save image to database", sl.Err(err))
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.ImagesIngested.WithLabelValues("created").Inc()
	metrics.ImageBytesIngested.Add(float64(created.FileSize))

	count, err := s.folders.RecountImages(ctx, folder.ID)
	if err != nil {
		log.Error("failed to recount folder images", sl.Err(err))
		return created, fmt.Errorf("%s: recount: %w", op, shared.Translate(err))
	}

	log.Info("image created",
		slog.Int64("image_id", created.ID),
		slog.String("slug", created.Slug),
		slog.Int("width", created.Width),
		slog.Int("height", created.Height),
		slog.Int("image_count", count),
	)

	return created, nil
}

func (s *ImageService) GetImage(ctx context.Context, folderIdent, imageIdent models.Identifier) (models.Image, error) {
	const op = "image_service.GetImage"

	folder, err := s.folders.FindFolder(ctx, folderIdent)
	if err != nil {
		return models.Image{}, fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	image, err := s.images.FindImage(ctx, folder.ID, imageIdent)
	if err != nil {
		return models.Image{}, fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	return image, nil
}

// ListImages возвращает изображения папки, новые первыми
func (s *ImageService) ListImages(ctx context.Context, folderIdent models.Identifier) ([]models.Image, error) {
	const op = "image_service.ListImages"

	folder, err := s.folders.FindFolder(ctx, folderIdent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	images, err := s.images.ListImages(ctx, folder.ID)
	if err != nil {
		s.log.Error("failed to list images", slog.String("op", op), slog.Int64("folder_id", folder.ID), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return images, nil
}

// DeleteImage удаляет запись и файл изображения, затем пересчитывает папку
func (s *ImageService) DeleteImage(ctx context.Context, folderIdent, imageIdent models.Identifier) error {
	const op = "image_service.DeleteImage"

	log := s.log.With(
		slog.String("op", op),
		slog.String("folder", folderIdent.String()),
		slog.String("image", imageIdent.String()),
	)

	folder, err := s.folders.FindFolder(ctx, folderIdent)
	if err != nil {
		return fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	image, err := s.images.FindImage(ctx, folder.ID, imageIdent)
	if err != nil {
		return fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	if err := s.images.DeleteImage(ctx, folder.ID, image.ID); err != nil {
		log.Error("failed to delete image", sl.Err(err))
		return fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	if err := s.fileStorage.Delete(ctx, image.StoragePath); err != nil {
		log.Warn("failed to delete image file", slog.String("path", image.StoragePath), sl.Err(err))
	}

	count, err := s.folders.RecountImages(ctx, folder.ID)
	if err != nil {
		log.Error("failed to recount folder images", sl.Err(err))
		return fmt.Errorf("%s: recount: %w", op, shared.Translate(err))
	}

	log.Info("image deleted", slog.Int64("image_id", image.ID), slog.Int("image_count", count))

	return nil
}
