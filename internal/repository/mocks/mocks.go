// Package mocks содержит testify-моки репозиториев для тестов сервисов.
package mocks

import (
	"context"

	"imagehub/internal/domain/models"
	"imagehub/internal/lib/slug"

	"github.com/stretchr/testify/mock"
)

type FolderRepository struct {
	mock.Mock
}

func (m *FolderRepository) CreateFolder(ctx context.Context, folder models.Folder) (models.Folder, error) {
	args := m.Called(ctx, folder)
	return args.Get(0).(models.Folder), args.Error(1)
}

func (m *FolderRepository) FindFolder(ctx context.Context, ident models.Identifier) (models.Folder, error) {
	args := m.Called(ctx, ident)
	return args.Get(0).(models.Folder), args.Error(1)
}

func (m *FolderRepository) ListFolders(ctx context.Context) ([]models.Folder, error) {
	args := m.Called(ctx)
	folders, _ := args.Get(0).([]models.Folder)
	return folders, args.Error(1)
}

func (m *FolderRepository) RenameFolder(ctx context.Context, folderID int64, name string) (models.Folder, error) {
	args := m.Called(ctx, folderID, name)
	return args.Get(0).(models.Folder), args.Error(1)
}

func (m *FolderRepository) DeleteFolder(ctx context.Context, folderID int64) error {
	args := m.Called(ctx, folderID)
	return args.Error(0)
}

func (m *FolderRepository) RecountImages(ctx context.Context, folderID int64) (int, error) {
	args := m.Called(ctx, folderID)
	return args.Int(0), args.Error(1)
}

type ImageRepository struct {
	mock.Mock
}

func (m *ImageRepository) CreateImage(ctx context.Context, image models.Image) (models.Image, error) {
	args := m.Called(ctx, image)
	return args.Get(0).(models.Image), args.Error(1)
}

func (m *ImageRepository) FindImage(ctx context.Context, folderID int64, ident models.Identifier) (models.Image, error) {
	args := m.Called(ctx, folderID, ident)
	return args.Get(0).(models.Image), args.Error(1)
}

func (m *ImageRepository) ListImages(ctx context.Context, folderID int64) ([]models.Image, error) {
	args := m.Called(ctx, folderID)
	images, _ := args.Get(0).([]models.Image)
	return images, args.Error(1)
}

func (m *ImageRepository) DeleteImage(ctx context.Context, folderID, imageID int64) error {
	args := m.Called(ctx, folderID, imageID)
	return args.Error(0)
}

type SlugRepository struct {
	mock.Mock
}

func (m *SlugRepository) SlugExists(ctx context.Context, scope slug.Scope, candidate string) (bool, error) {
	args := m.Called(ctx, scope, candidate)
	return args.Bool(0), args.Error(1)
}

// Transactor выполняет fn без транзакции и считает вызовы
type Transactor struct {
	Calls int
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}
