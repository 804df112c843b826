package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"imagehub/internal/domain/models"
	"imagehub/internal/storage"
)

const (
	foldersTable = "folders"
	imagesTable  = "images"

	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"

	folderNameConstraint = "folders_name_key"
)

// DBTX общий интерфейс пула и транзакции
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Repository struct {
	db     *pgxpool.Pool
	Folder FolderRepository
	Image  ImageRepository
	Slug   SlugRepository
	Tx     Transactor
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:     db,
		Folder: NewFolderRepository(db),
		Image:  NewImageRepository(db),
		Slug:   NewSlugRepository(db),
		Tx:     NewTransactor(db),
	}
}

func (r *Repository) Close() {
	r.db.Close()
}

// conn возвращает транзакцию из контекста, если она открыта, иначе пул
func conn(ctx context.Context, db *pgxpool.Pool) DBTX {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}

	return db
}

// mapError переводит ошибки pgx/PostgreSQL в ошибки пакета storage
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			if pgErr.ConstraintName == folderNameConstraint {
				return fmt.Errorf("%w: %s", storage.ErrFolderExists, pgErr.Detail)
			}
			return fmt.Errorf("%w: %s", storage.ErrSlugTaken, pgErr.Detail)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s", storage.ErrNotFound, pgErr.Detail)
		}
	}

	return err
}

func identifierFilter(ident models.Identifier) (sq.Sqlizer, error) {
	if id, ok := ident.ID(); ok {
		return sq.Eq{"id": id}, nil
	}

	if s, ok := ident.Slug(); ok {
		return sq.Eq{"slug": s}, nil
	}

	return nil, models.NewValidationError("identifier is required")
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
