package models

import (
	"path"
	"strconv"
	"time"
)

const uploadsRoot = "uploads"

// Image представляет загруженное изображение. Метаданные и slug
// вычисляются один раз при создании и больше не меняются.
type Image struct {
	ID          int64     `json:"id" db:"id"`
	FolderID    int64     `json:"folder_id" db:"folder_id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	StoragePath string    `json:"storage_path" db:"storage_path"`
	MimeType    string    `json:"mime_type" db:"mime_type"`
	Width       int       `json:"width" db:"width"`
	Height      int       `json:"height" db:"height"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	IsColor     bool      `json:"is_color" db:"is_color"`
	UploadedAt  time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// Upload входные данные загрузки: имя файла от клиента и его содержимое
type Upload struct {
	Filename string
	Content  []byte
}

// UploadDir возвращает каталог хранения файлов папки: uploads/{folderID}
func UploadDir(folderID int64) string {
	return path.Join(uploadsRoot, strconv.FormatInt(folderID, 10))
}
