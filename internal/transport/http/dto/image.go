package dto

import (
	"fmt"
	"time"

	"imagehub/internal/domain/models"
)

const (
	uploadDateLayout = "January 02, 2006"
	uploadTimeLayout = "03:04 PM"
)

type ImageResponse struct {
	ID                int64     `json:"id"`
	FolderID          int64     `json:"folder_id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	URL               string    `json:"url"`
	MimeType          string    `json:"mime_type"`
	Width             int       `json:"width"`
	Height            int       `json:"height"`
	FileSize          int64     `json:"file_size"`
	FormattedFileSize string    `json:"formatted_file_size" example:"9.8 KB"`
	IsColor           bool      `json:"is_color"`
	UploadedAt        time.Time `json:"uploaded_at"`
	UploadDate        string    `json:"upload_date" example:"March 05, 2024"`
	UploadTime        string    `json:"upload_time" example:"02:15 PM"`
}

// URLResolver превращает путь файла в хранилище в публичный URL
type URLResolver interface {
	URL(filePath string) string
}

func NewImageResponse(image models.Image, urls URLResolver) ImageResponse {
	return ImageResponse{
		ID:                image.ID,
		FolderID:          image.FolderID,
		Name:              image.Name,
		Slug:              image.Slug,
		URL:               urls.URL(image.StoragePath),
		MimeType:          image.MimeType,
		Width:             image.Width,
		Height:            image.Height,
		FileSize:          image.FileSize,
		FormattedFileSize: FormatFileSize(image.FileSize),
		IsColor:           image.IsColor,
		UploadedAt:        image.UploadedAt,
		UploadDate:        image.UploadedAt.Format(uploadDateLayout),
		UploadTime:        image.UploadedAt.Format(uploadTimeLayout),
	}
}

func NewImageListResponse(images []models.Image, urls URLResolver) []ImageResponse {
	res := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		res = append(res, NewImageResponse(img, urls))
	}

	return res
}

// FormatFileSize печатает размер в байтах, KB или MB с одним знаком после
// запятой, основание 1024: 500 -> "500 bytes", 1536 -> "1.5 KB".
func FormatFileSize(size int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
	)

	switch {
	case size < 0:
		return "0 bytes"
	case size < kb:
		return fmt.Sprintf("%d bytes", size)
	case size < mb:
		return fmt.Sprintf("%.1f KB", float64(size)/kb)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/mb)
	}
}
