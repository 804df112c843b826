package repository

import (
	"context"

	"imagehub/internal/domain/models"
	"imagehub/internal/lib/slug"
)

type FolderRepository interface {
	CreateFolder(ctx context.Context, folder models.Folder) (models.Folder, error)
	FindFolder(ctx context.Context, ident models.Identifier) (models.Folder, error)
	ListFolders(ctx context.Context) ([]models.Folder, error)
	RenameFolder(ctx context.Context, folderID int64, name string) (models.Folder, error)
	DeleteFolder(ctx context.Context, folderID int64) error
	RecountImages(ctx context.Context, folderID int64) (int, error)
}

type ImageRepository interface {
	CreateImage(ctx context.Context, image models.Image) (models.Image, error)
	FindImage(ctx context.Context, folderID int64, ident models.Identifier) (models.Image, error)
	ListImages(ctx context.Context, folderID int64) ([]models.Image, error)
	DeleteImage(ctx context.Context, folderID, imageID int64) error
}

type SlugRepository interface {
	SlugExists(ctx context.Context, scope slug.Scope, candidate string) (bool, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
