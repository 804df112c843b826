package dto

import (
	"time"

	"imagehub/internal/domain/models"
)

type CreateFolderRequest struct {
	Name string `json:"name" validate:"required,max=255" example:"Holidays"`
}

type RenameFolderRequest struct {
	Name string `json:"name" validate:"required,max=255" example:"Holidays 2024"`
}

type FolderResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	CreatedAt  time.Time `json:"created_at"`
	ImageCount int       `json:"image_count"`
}

// FolderDetailResponse папка вместе с изображениями, новые первыми
type FolderDetailResponse struct {
	FolderResponse
	Images []ImageResponse `json:"images"`
}

func NewFolderResponse(folder models.Folder) FolderResponse {
	return FolderResponse{
		ID:         folder.ID,
		Name:       folder.Name,
		Slug:       folder.Slug,
		CreatedAt:  folder.CreatedAt,
		ImageCount: folder.ImageCount,
	}
}

func NewFolderListResponse(folders []models.Folder) []FolderResponse {
	res := make([]FolderResponse, 0, len(folders))
	for _, f := range folders {
		res = append(res, NewFolderResponse(f))
	}

	return res
}
