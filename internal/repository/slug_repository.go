package repository

import (
	"context"
	"fmt"

	"imagehub/internal/lib/slug"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
)

type SlugRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewSlugRepository(db *pgxpool.Pool) *SlugRepo {
	return &SlugRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SlugExists проверяет занятость slug в области: среди всех папок
// или среди изображений одной папки.
func (r *SlugRepo) SlugExists(ctx context.Context, scope slug.Scope, candidate string) (bool, error) {
	const op = "repository.slug_repository.SlugExists"

	inner := r.sb.Select("1").From(foldersTable).Where(sq.Eq{"slug": candidate})
	if folderID, ok := scope.FolderID(); ok {
		inner = r.sb.Select("1").From(imagesTable).Where(sq.Eq{"folder_id": folderID, "slug": candidate})
	}

	query, args, err := r.sb.Select().
		Column(sq.Expr("EXISTS (?)", inner)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var exists bool
	if err := conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}
