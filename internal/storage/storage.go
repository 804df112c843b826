package storage

import "errors"

var (
	ErrNotFound     = errors.New("record not found")
	ErrFolderExists = errors.New("folder with this name already exists")
	ErrSlugTaken    = errors.New("slug already taken")
)

var (
	ErrFileTooLarge = errors.New("file size exceeds limit")
	ErrFileNotFound = errors.New("file not found")
)
