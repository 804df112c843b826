package repository

import (
	"context"
	"fmt"

	"imagehub/internal/domain/models"
	"imagehub/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
)

var imageColumns = []string{
	"id",
	"folder_id",
	"name",
	"slug",
	"storage_path",
	"mime_type",
	"width",
	"height",
	"file_size",
	"is_color",
	"uploaded_at",
}

type ImageRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewImageRepository(db *pgxpool.Pool) *ImageRepo {
	return &ImageRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ImageRepo) CreateImage(ctx context.Context, image models.Image) (models.Image, error) {
	const op = "repository.image_repository.CreateImage"

	query, args, err := r.sb.Insert(imagesTable).
		Columns(
			"folder_id",
			"name",
			"slug",
			"storage_path",
			"mime_type",
			"width",
			"height",
			"file_size",
			"is_color",
		).
		Values(
			image.FolderID,
			image.Name,
			image.Slug,
			image.StoragePath,
			image.MimeType,
			image.Width,
			image.Height,
			image.FileSize,
			image.IsColor,
		).
		Suffix("RETURNING " + joinColumns(imageColumns)).
		ToSql()
	if err != nil {
		return models.Image{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	created, err := scanImage(conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return models.Image{}, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return created, nil
}

func (r *ImageRepo) FindImage(ctx context.Context, folderID int64, ident models.Identifier) (models.Image, error) {
	const op = "repository.image_repository.FindImage"

	where, err := identifierFilter(ident)
	if err != nil {
		return models.Image{}, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select(imageColumns...).
		From(imagesTable).
		Where(sq.Eq{"folder_id": folderID}).
		Where(where).
		ToSql()
	if err != nil {
		return models.Image{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	image, err := scanImage(conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return models.Image{}, fmt.Errorf("%s: image %q: %w", op, ident, mapError(err))
	}

	return image, nil
}

// ListImages возвращает изображения папки, новые первыми
func (r *ImageRepo) ListImages(ctx context.Context, folderID int64) ([]models.Image, error) {
	const op = "repository.image_repository.ListImages"

	query, args, err := r.sb.Select(imageColumns...).
		From(imagesTable).
		Where(sq.Eq{"folder_id": folderID}).
		OrderBy("uploaded_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	images := make([]models.Image, 0)
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan image: %w", op, err)
		}
		images = append(images, image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return images, nil
}

func (r *ImageRepo) DeleteImage(ctx context.Context, folderID, imageID int64) error {
	const op = "repository.image_repository.DeleteImage"

	query, args, err := r.sb.Delete(imagesTable).
		Where(sq.Eq{"id": imageID, "folder_id": folderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func scanImage(row rowScanner) (models.Image, error) {
	var img models.Image
	err := row.Scan(
		&img.ID,
		&img.FolderID,
		&img.Name,
		&img.Slug,
		&img.StoragePath,
		&img.MimeType,
		&img.Width,
		&img.Height,
		&img.FileSize,
		&img.IsColor,
		&img.UploadedAt,
	)

	return img, err
}
