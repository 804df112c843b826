package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxLength соответствует размеру колонки slug в БД
	MaxLength = 255

	// Fallback используется, когда имя не содержит ни одного допустимого символа
	Fallback = "untitled"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9\s_-]`)
	separators = regexp.MustCompile(`[\s_-]+`)
)

// Slugify приводит имя к виду, пригодному для URL: только латиница в нижнем
// регистре, цифры и одиночные дефисы между словами.
func Slugify(name string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)

	s, _, err := transform.String(t, name)
	if err != nil {
		s = name
	}

	s = strings.ToLower(s)
	s = disallowed.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// Base возвращает базовый slug для имени с учетом fallback и ограничения длины.
func Base(name string) string {
	s := Slugify(name)
	if s == "" {
		return Fallback
	}

	return truncate(s, MaxLength)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return strings.TrimRight(s[:n], "-")
}
