package slug

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

const maxSuffix = 10000

var ErrExhausted = errors.New("no free slug left for name")

// Scope задает пространство уникальности slug: глобальное для папок,
// отдельное для изображений каждой папки.
type Scope struct {
	folderID int64
	inFolder bool
}

func Global() Scope {
	return Scope{}
}

func InFolder(folderID int64) Scope {
	return Scope{folderID: folderID, inFolder: true}
}

// FolderID возвращает id папки; ok == false для глобальной области.
func (s Scope) FolderID() (id int64, ok bool) {
	return s.folderID, s.inFolder
}

func (s Scope) String() string {
	if !s.inFolder {
		return "global"
	}

	return "folder:" + strconv.FormatInt(s.folderID, 10)
}

type Checker interface {
	SlugExists(ctx context.Context, scope Scope, slug string) (bool, error)
}

type CheckerFunc func(ctx context.Context, scope Scope, slug string) (bool, error)

func (f CheckerFunc) SlugExists(ctx context.Context, scope Scope, slug string) (bool, error) {
	return f(ctx, scope, slug)
}

type Allocator struct {
	checker Checker
}

func NewAllocator(checker Checker) *Allocator {
	return &Allocator{checker: checker}
}

// Allocate подбирает первый свободный slug в области: base, base-1, base-2, ...
// Проверка и последующая вставка не атомарны, гонку ловит уникальный индекс в БД.
func (a *Allocator) Allocate(ctx context.Context, name string, scope Scope) (string, error) {
	const op = "slug.Allocator.Allocate"

	base := Base(name)

	taken, err := a.checker.SlugExists(ctx, scope, base)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !taken {
		return base, nil
	}

	for n := 1; n <= maxSuffix; n++ {
		suffix := "-" + strconv.Itoa(n)
		candidate := truncate(base, MaxLength-len(suffix)) + suffix

		taken, err := a.checker.SlugExists(ctx, scope, candidate)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%s: %q in %s: %w", op, base, scope, ErrExhausted)
}
