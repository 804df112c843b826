package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "imagehub/internal/app/http"
	"imagehub/internal/config"
	"imagehub/internal/lib/slug"
	"imagehub/internal/repository"
	folders "imagehub/internal/services/folder_service"
	images "imagehub/internal/services/image_service"
	"imagehub/internal/storage/filestorage"
	"imagehub/internal/storage/postgresql"
	httprouters "imagehub/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	storage    *postgresql.Storage
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fileStorage, mediaDir, err := newFileStorage(ctx, cfg)
	if err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo := repository.NewRepository(storage.Pool())
	allocator := slug.NewAllocator(repo.Slug)

	folderService := folders.NewFolderService(log, repo.Folder, repo.Image, repo.Tx, allocator, fileStorage, cfg.SlugRetries)
	imageService := images.NewImageService(log, repo.Folder, repo.Image, repo.Tx, allocator, fileStorage, cfg.SlugRetries)

	routers := httprouters.NewRouter(log, folderService, imageService, fileStorage, storage, cfg.FileStorage.MaxSize)

	server := httpapp.New(log, cfg.HTTP.Host, cfg.HTTP.Port, cfg.HTTP.Timeout, mediaDir, cfg.FileStorage.MaxSize, routers)
	server.BuildRouters()

	return &App{
		HTTPServer: server,
		storage:    storage,
	}, nil
}

// MustNew то же, что New, но паникует при ошибке
func MustNew(ctx context.Context, log *slog.Logger, cfg *config.Config) *App {
	a, err := New(ctx, log, cfg)
	if err != nil {
		panic(err)
	}

	return a
}

func (a *App) Stop() error {
	err := a.HTTPServer.Stop()
	a.storage.Stop()

	return err
}

func newFileStorage(ctx context.Context, cfg *config.Config) (filestorage.FileStorage, string, error) {
	switch cfg.FileStorage.Provider {
	case config.StorageS3:
		s, err := filestorage.NewS3FileStorage(ctx, filestorage.S3Options{
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PublicURL:       cfg.S3.PublicURL,
			UsePathStyle:    cfg.S3.UsePathStyle,
		})
		if err != nil {
			return nil, "", err
		}

		return s, "", nil
	default:
		s, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL)
		if err != nil {
			return nil, "", err
		}

		return s, s.GetBaseDir(), nil
	}
}
