package models

import (
	"strconv"
	"strings"
)

type IdentifierKind int

const (
	IdentifierID IdentifierKind = iota + 1
	IdentifierSlug
)

// Identifier адресует папку или изображение либо по числовому id, либо по slug.
// Разбирается один раз на границе HTTP.
type Identifier struct {
	kind IdentifierKind
	id   int64
	slug string
}

func IDIdentifier(id int64) Identifier {
	return Identifier{kind: IdentifierID, id: id}
}

func SlugIdentifier(slug string) Identifier {
	return Identifier{kind: IdentifierSlug, slug: slug}
}

// ParseIdentifier трактует строку из одних ASCII-цифр как id, все остальное как slug.
func ParseIdentifier(raw string) (Identifier, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identifier{}, NewValidationError("identifier is required")
	}

	if !isDigits(raw) {
		return SlugIdentifier(raw), nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Identifier{}, NewValidationError("identifier " + raw + " is out of range")
	}

	return IDIdentifier(id), nil
}

func (i Identifier) Kind() IdentifierKind {
	return i.kind
}

func (i Identifier) ID() (int64, bool) {
	return i.id, i.kind == IdentifierID
}

func (i Identifier) Slug() (string, bool) {
	return i.slug, i.kind == IdentifierSlug
}

func (i Identifier) IsZero() bool {
	return i.kind == 0
}

func (i Identifier) String() string {
	switch i.kind {
	case IdentifierID:
		return strconv.FormatInt(i.id, 10)
	case IdentifierSlug:
		return i.slug
	default:
		return ""
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
