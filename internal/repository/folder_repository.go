package repository

import (
	"context"
	"fmt"

	"imagehub/internal/domain/models"
	"imagehub/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
)

var folderColumns = []string{"id", "name", "slug", "created_at", "image_count"}

type FolderRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewFolderRepository(db *pgxpool.Pool) *FolderRepo {
	return &FolderRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *FolderRepo) CreateFolder(ctx context.Context, folder models.Folder) (models.Folder, error) {
	const op = "repository.folder_repository.CreateFolder"

	query, args, err := r.sb.Insert(foldersTable).
		Columns("name", "slug").
		Values(folder.Name, folder.Slug).
		Suffix("RETURNING " + joinColumns(folderColumns)).
		ToSql()
	if err != nil {
		return models.Folder{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	created, err := scanFolder(conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return models.Folder{}, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return created, nil
}

func (r *FolderRepo) FindFolder(ctx context.Context, ident models.Identifier) (models.Folder, error) {
	const op = "repository.folder_repository.FindFolder"

	where, err := identifierFilter(ident)
	if err != nil {
		return models.Folder{}, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select(folderColumns...).
		From(foldersTable).
		Where(where).
		ToSql()
	if err != nil {
		return models.Folder{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	folder, err := scanFolder(conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return models.Folder{}, fmt.Errorf("%s: folder %q: %w", op, ident, mapError(err))
	}

	return folder, nil
}

func (r *FolderRepo) ListFolders(ctx context.Context) ([]models.Folder, error) {
	const op = "repository.folder_repository.ListFolders"

	query, args, err := r.sb.Select(folderColumns...).
		From(foldersTable).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	folders := make([]models.Folder, 0)
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan folder: %w", op, err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return folders, nil
}

// RenameFolder меняет только имя, slug остается прежним
func (r *FolderRepo) RenameFolder(ctx context.Context, folderID int64, name string) (models.Folder, error) {
	const op = "repository.folder_repository.RenameFolder"

	query, args, err := r.sb.Update(foldersTable).
		Set("name", name).
		Where(sq.Eq{"id": folderID}).
		Suffix("RETURNING " + joinColumns(folderColumns)).
		ToSql()
	if err != nil {
		return models.Folder{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	folder, err := scanFolder(conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return models.Folder{}, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return folder, nil
}

func (r *FolderRepo) DeleteFolder(ctx context.Context, folderID int64) error {
	const op = "repository.folder_repository.DeleteFolder"

	query, args, err := r.sb.Delete(foldersTable).
		Where(sq.Eq{"id": folderID}).
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

// RecountImages пересчитывает image_count по фактическому числу изображений папки.
// Счетчик не инкрементируется, а всегда вычисляется заново.
func (r *FolderRepo) RecountImages(ctx context.Context, folderID int64) (int, error) {
	const op = "repository.folder_repository.RecountImages"

	query, args, err := r.sb.Update(foldersTable).
		Set("image_count", sq.Expr("(SELECT COUNT(*) FROM "+imagesTable+" WHERE folder_id = ?)", folderID)).
		Where(sq.Eq{"id": folderID}).
		Suffix("RETURNING image_count").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var count int
	if err := conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFolder(row rowScanner) (models.Folder, error) {
	var f models.Folder
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Slug,
		&f.CreatedAt,
		&f.ImageCount,
	)

	return f, err
}
