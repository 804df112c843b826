package models

import (
	"fmt"
	"strings"
	"time"
)

const MaxFolderNameLength = 255

// Folder представляет именованную папку с изображениями
type Folder struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Slug       string    `json:"slug" db:"slug"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	ImageCount int       `json:"image_count" db:"image_count"`
}

// NormalizeFolderName обрезает пробелы по краям и проверяет длину имени.
func NormalizeFolderName(name string) (string, error) {
	name = strings.TrimSpace(name)

	var validationErrors []string

	if name == "" {
		validationErrors = append(validationErrors, "folder name is required")
	}
	if len([]rune(name)) > MaxFolderNameLength {
		validationErrors = append(validationErrors,
			fmt.Sprintf("folder name must be %d characters or less", MaxFolderNameLength))
	}

	if len(validationErrors) > 0 {
		return "", NewValidationError(validationErrors...)
	}

	return name, nil
}
