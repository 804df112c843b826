package services

import (
	"context"
	"fmt"
	"log/slog"

	"imagehub/internal/domain/models"
	"imagehub/internal/lib/logger/sl"
	"imagehub/internal/lib/slug"
	"imagehub/internal/metrics"
	"imagehub/internal/repository"
	"imagehub/internal/services/shared"
	"imagehub/internal/storage/filestorage"
)

type FolderService struct {
	log         *slog.Logger
	repo        repository.FolderRepository
	images      repository.ImageRepository
	tx          repository.Transactor
	slugs       shared.SlugAllocator
	fileStorage filestorage.FileStorage
	slugRetries int
}

func NewFolderService(
	log *slog.Logger,
	repo repository.FolderRepository,
	images repository.ImageRepository,
	tx repository.Transactor,
	slugs shared.SlugAllocator,
	fileStorage filestorage.FileStorage,
	slugRetries int,
) *FolderService {
	return &FolderService{
		log:         log,
		repo:        repo,
		images:      images,
		tx:          tx,
		slugs:       slugs,
		fileStorage: fileStorage,
		slugRetries: slugRetries,
	}
}

// CreateFolder создает папку с уникальным глобальным slug.
// Дубликат имени сразу дает конфликт, гонка за slug повторяется ограниченное число раз.
func (s *FolderService) CreateFolder(ctx context.Context, name string) (models.Folder, error) {
	const op = "folder_service.CreateFolder"

	log := s.log.With(
		slog.String("op", op),
		slog.String("name", name),
	)

	log.Info("creating folder")

	name, err := models.NormalizeFolderName(name)
	if err != nil {
		log.Warn("invalid folder name", sl.Err(err))
		return models.Folder{}, fmt.Errorf("%s: %w", op, err)
	}

	var folder models.Folder

	err = shared.RetryOnSlugConflict(s.slugRetries,
		func(attempt int, err error) {
			metrics.SlugRetries.WithLabelValues("global").Inc()
			log.Warn("slug conflict detected, retrying", slog.Int("attempt", attempt), sl.Err(err))
		},
		func() error {
			return s.tx.WithinTx(ctx, func(ctx context.Context) error {
				folderSlug, err := s.slugs.Allocate(ctx, name, slug.Global())
				if err != nil {
					return err
				}

				folder, err = s.repo.CreateFolder(ctx, models.Folder{Name: name, Slug: folderSlug})
				return err
			})
		},
	)
	if err != nil {
		log.Error("failed to create folder", sl.Err(err))
		return models.Folder{}, fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	log.Info("folder created", slog.Int64("folder_id", folder.ID), slog.String("slug", folder.Slug))

	return folder, nil
}

func (s *FolderService) GetFolder(ctx context.Context, ident models.Identifier) (models.Folder, error) {
	const op = "folder_service.GetFolder"

	folder, err := s.repo.FindFolder(ctx, ident)
	if err != nil {
		s.log.Debug("folder lookup failed", slog.String("op", op), slog.String("identifier", ident.String()), sl.Err(err))
		return models.Folder{}, fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	return folder, nil
}

func (s *FolderService) ListFolders(ctx context.Context) ([]models.Folder, error) {
	const op = "folder_service.ListFolders"

	folders, err := s.repo.ListFolders(ctx)
	if err != nil {
		s.log.Error("failed to list folders", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return folders, nil
}

// RenameFolder меняет имя папки. Slug при этом не пересчитывается.
func (s *FolderService) RenameFolder(ctx context.Context, ident models.Identifier, name string) (models.Folder, error) {
	const op = "folder_service.RenameFolder"

	log := s.log.With(
		slog.String("op", op),
		slog.String("identifier", ident.String()),
		slog.String("name", name),
	)

	name, err := models.NormalizeFolderName(name)
	if err != nil {
		log.Warn("invalid folder name", sl.Err(err))
		return models.Folder{}, fmt.Errorf("%s: %w", op, err)
	}

	folder, err := s.repo.FindFolder(ctx, ident)
	if err != nil {
		return models.Folder{}, fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	if folder.Name == name {
		return folder, nil
	}

	renamed, err := s.repo.RenameFolder(ctx, folder.ID, name)
	if err != nil {
		log.Warn("failed to rename folder", sl.Err(err))
		return models.Folder{}, fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	log.Info("folder renamed", slog.Int64("folder_id", renamed.ID))

	return renamed, nil
}

// DeleteFolder удаляет папку вместе с изображениями (каскад в БД) и их файлами.
// Ошибки удаления файлов только логируются: записи в БД уже нет.
func (s *FolderService) DeleteFolder(ctx context.Context, ident models.Identifier) error {
	const op = "folder_service.DeleteFolder"

	log := s.log.With(
		slog.String("op", op),
		slog.String("identifier", ident.String()),
	)

	folder, err := s.repo.FindFolder(ctx, ident)
	if err != nil {
		return fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	images, err := s.images.ListImages(ctx, folder.ID)
	if err != nil {
		log.Error("failed to list folder images", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteFolder(ctx, folder.ID); err != nil {
		log.Error("failed to delete folder", sl.Err(err))
		return fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	for _, image := range images {
		if err := s.fileStorage.Delete(ctx, image.StoragePath); err != nil {
			log.Warn("failed to delete image file", slog.String("path", image.StoragePath), sl.Err(err))
		}
	}

	log.Info("folder deleted", slog.Int64("folder_id", folder.ID), slog.Int("images", len(images)))

	return nil
}

// Recount пересчитывает image_count папки и возвращает новое значение
func (s *FolderService) Recount(ctx context.Context, folderID int64) (int, error) {
	const op = "folder_service.Recount"

	count, err := s.repo.RecountImages(ctx, folderID)
	if err != nil {
		s.log.Error("failed to recount images", slog.String("op", op), slog.Int64("folder_id", folderID), sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, shared.Translate(err))
	}

	return count, nil
}
