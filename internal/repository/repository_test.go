package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"imagehub/internal/domain/models"
	"imagehub/internal/lib/slug"
	"imagehub/internal/repository"
	"imagehub/internal/storage"
	"imagehub/internal/storage/postgresql"
	"imagehub/internal/storage/postgresql/pgtest"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/suite"
)

type RepositorySuite struct {
	suite.Suite
	ctx     context.Context
	storage *postgresql.Storage
	repo    *repository.Repository
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	st, err := postgresql.New(s.ctx, pgtest.DSN(s.T()))
	s.Require().NoError(err)

	s.storage = st
	s.repo = repository.NewRepository(st.Pool())
}

func (s *RepositorySuite) TearDownSuite() {
	if s.storage != nil {
		s.storage.Stop()
	}
}

func (s *RepositorySuite) SetupTest() {
	_, err := s.storage.Pool().Exec(s.ctx, `TRUNCATE folders, images RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *RepositorySuite) createFolder(name, folderSlug string) models.Folder {
	folder, err := s.repo.Folder.CreateFolder(s.ctx, models.Folder{Name: name, Slug: folderSlug})
	s.Require().NoError(err)

	return folder
}

func (s *RepositorySuite) createImage(folderID int64, imageSlug string) models.Image {
	image, err := s.repo.Image.CreateImage(s.ctx, models.Image{
		FolderID:    folderID,
		Name:        imageSlug,
		Slug:        imageSlug,
		StoragePath: models.UploadDir(folderID) + "/" + imageSlug + ".png",
		MimeType:    "image/png",
		Width:       100,
		Height:      100,
		FileSize:    1024,
		IsColor:     true,
	})
	s.Require().NoError(err)

	return image
}

func (s *RepositorySuite) TestFolder_CreateAndFind() {
	name := gofakeit.Company()
	created := s.createFolder(name, "my-folder")

	s.NotZero(created.ID)
	s.Equal(name, created.Name)
	s.Equal(0, created.ImageCount)
	s.WithinDuration(time.Now(), created.CreatedAt, time.Minute)

	byID, err := s.repo.Folder.FindFolder(s.ctx, models.IDIdentifier(created.ID))
	s.Require().NoError(err)

	bySlug, err := s.repo.Folder.FindFolder(s.ctx, models.SlugIdentifier("my-folder"))
	s.Require().NoError(err)

	s.Equal(byID, bySlug)

	_, err = s.repo.Folder.FindFolder(s.ctx, models.SlugIdentifier("missing"))
	s.ErrorIs(err, storage.ErrNotFound)

	_, err = s.repo.Folder.FindFolder(s.ctx, models.IDIdentifier(created.ID+100))
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *RepositorySuite) TestFolder_UniqueConstraints() {
	s.createFolder("Holidays", "holidays")

	_, err := s.repo.Folder.CreateFolder(s.ctx, models.Folder{Name: "Holidays", Slug: "holidays-1"})
	s.ErrorIs(err, storage.ErrFolderExists)

	_, err = s.repo.Folder.CreateFolder(s.ctx, models.Folder{Name: "holidays", Slug: "holidays"})
	s.ErrorIs(err, storage.ErrSlugTaken)
}

func (s *RepositorySuite) TestFolder_ListOrderedByName() {
	s.createFolder("b", "b")
	s.createFolder("c", "c")
	s.createFolder("a", "a")

	folders, err := s.repo.Folder.ListFolders(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(folders, 3)

	s.Equal("a", folders[0].Name)
	s.Equal("b", folders[1].Name)
	s.Equal("c", folders[2].Name)
}

func (s *RepositorySuite) TestFolder_RenameKeepsSlug() {
	folder := s.createFolder("Old name", "old-name")
	s.createFolder("Taken", "taken")

	renamed, err := s.repo.Folder.RenameFolder(s.ctx, folder.ID, "New name")
	s.Require().NoError(err)
	s.Equal("New name", renamed.Name)
	s.Equal("old-name", renamed.Slug)

	_, err = s.repo.Folder.RenameFolder(s.ctx, folder.ID, "Taken")
	s.ErrorIs(err, storage.ErrFolderExists)

	_, err = s.repo.Folder.RenameFolder(s.ctx, folder.ID+100, "Whatever")
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *RepositorySuite) TestImage_SlugScopedPerFolder() {
	first := s.createFolder("first", "first")
	second := s.createFolder("second", "second")

	s.createImage(first.ID, "sunset")
	s.createImage(second.ID, "sunset")

	_, err := s.repo.Image.CreateImage(s.ctx, models.Image{
		FolderID: first.ID, Name: "sunset", Slug: "sunset", StoragePath: "x", Width: 1, Height: 1, FileSize: 1,
	})
	s.ErrorIs(err, storage.ErrSlugTaken)

	found, err := s.repo.Image.FindImage(s.ctx, second.ID, models.SlugIdentifier("sunset"))
	s.Require().NoError(err)
	s.Equal(second.ID, found.FolderID)

	_, err = s.repo.Image.FindImage(s.ctx, first.ID, models.IDIdentifier(found.ID))
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *RepositorySuite) TestImage_CreateInMissingFolder() {
	_, err := s.repo.Image.CreateImage(s.ctx, models.Image{
		FolderID: 9999, Name: "a", Slug: "a", StoragePath: "a.png", Width: 1, Height: 1, FileSize: 1,
	})
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *RepositorySuite) TestImage_ListNewestFirst() {
	folder := s.createFolder("f", "f")
	older := s.createImage(folder.ID, "older")
	newer := s.createImage(folder.ID, "newer")

	images, err := s.repo.Image.ListImages(s.ctx, folder.ID)
	s.Require().NoError(err)
	s.Require().Len(images, 2)

	s.Equal(newer.ID, images[0].ID)
	s.Equal(older.ID, images[1].ID)
}

func (s *RepositorySuite) TestRecount() {
	folder := s.createFolder("count", "count")

	var images []models.Image
	for i := 0; i < 3; i++ {
		images = append(images, s.createImage(folder.ID, gofakeit.UUID()))
	}

	count, err := s.repo.Folder.RecountImages(s.ctx, folder.ID)
	s.Require().NoError(err)
	s.Equal(3, count)

	s.Require().NoError(s.repo.Image.DeleteImage(s.ctx, folder.ID, images[0].ID))

	count, err = s.repo.Folder.RecountImages(s.ctx, folder.ID)
	s.Require().NoError(err)
	s.Equal(2, count)

	again, err := s.repo.Folder.RecountImages(s.ctx, folder.ID)
	s.Require().NoError(err)
	s.Equal(count, again)

	stored, err := s.repo.Folder.FindFolder(s.ctx, models.IDIdentifier(folder.ID))
	s.Require().NoError(err)
	s.Equal(2, stored.ImageCount)

	_, err = s.repo.Folder.RecountImages(s.ctx, folder.ID+100)
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *RepositorySuite) TestDeleteFolder_Cascades() {
	folder := s.createFolder("gone", "gone")
	image := s.createImage(folder.ID, "pic")

	s.Require().NoError(s.repo.Folder.DeleteFolder(s.ctx, folder.ID))

	_, err := s.repo.Image.FindImage(s.ctx, folder.ID, models.IDIdentifier(image.ID))
	s.ErrorIs(err, storage.ErrNotFound)

	s.ErrorIs(s.repo.Folder.DeleteFolder(s.ctx, folder.ID), storage.ErrNotFound)
	s.ErrorIs(s.repo.Image.DeleteImage(s.ctx, folder.ID, image.ID), storage.ErrNotFound)
}

func (s *RepositorySuite) TestSlugExists() {
	folder := s.createFolder("Scope", "scope")
	s.createImage(folder.ID, "pic")

	exists, err := s.repo.Slug.SlugExists(s.ctx, slug.Global(), "scope")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.repo.Slug.SlugExists(s.ctx, slug.Global(), "pic")
	s.Require().NoError(err)
	s.False(exists)

	exists, err = s.repo.Slug.SlugExists(s.ctx, slug.InFolder(folder.ID), "pic")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.repo.Slug.SlugExists(s.ctx, slug.InFolder(folder.ID+1), "pic")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *RepositorySuite) TestAllocatorOverRepository() {
	allocator := slug.NewAllocator(s.repo.Slug)

	var got []string
	for _, name := range []string{"Test Folder", "Test-Folder", "test folder"} {
		folderSlug, err := allocator.Allocate(s.ctx, name, slug.Global())
		s.Require().NoError(err)
		s.createFolder(name, folderSlug)
		got = append(got, folderSlug)
	}

	s.Equal([]string{"test-folder", "test-folder-1", "test-folder-2"}, got)
}

func (s *RepositorySuite) TestWithinTx() {
	boom := errors.New("boom")

	err := s.repo.Tx.WithinTx(s.ctx, func(ctx context.Context) error {
		_, err := s.repo.Folder.CreateFolder(ctx, models.Folder{Name: "rolled back", Slug: "rolled-back"})
		s.Require().NoError(err)

		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.repo.Folder.FindFolder(s.ctx, models.SlugIdentifier("rolled-back"))
	s.ErrorIs(err, storage.ErrNotFound)

	err = s.repo.Tx.WithinTx(s.ctx, func(ctx context.Context) error {
		_, err := s.repo.Folder.CreateFolder(ctx, models.Folder{Name: "committed", Slug: "committed"})
		return err
	})
	s.Require().NoError(err)

	_, err = s.repo.Folder.FindFolder(s.ctx, models.SlugIdentifier("committed"))
	s.NoError(err)
}
