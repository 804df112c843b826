package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"imagehub/internal/domain/models"
	"imagehub/internal/lib/logger/sl"
	"imagehub/internal/storage"
	"imagehub/internal/transport/http/dto"
	"imagehub/internal/transport/http/dto/response"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"

	_ "imagehub/docs"
)

const imageFileField = "image_file"

type FolderService interface {
	CreateFolder(ctx context.Context, name string) (models.Folder, error)
	GetFolder(ctx context.Context, ident models.Identifier) (models.Folder, error)
	ListFolders(ctx context.Context) ([]models.Folder, error)
	RenameFolder(ctx context.Context, ident models.Identifier, name string) (models.Folder, error)
	DeleteFolder(ctx context.Context, ident models.Identifier) error
}

type ImageService interface {
	CreateImage(ctx context.Context, folderIdent models.Identifier, upload models.Upload) (models.Image, error)
	GetImage(ctx context.Context, folderIdent, imageIdent models.Identifier) (models.Image, error)
	ListImages(ctx context.Context, folderIdent models.Identifier) ([]models.Image, error)
	DeleteImage(ctx context.Context, folderIdent, imageIdent models.Identifier) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Routers struct {
	log           *slog.Logger
	FolderService FolderService
	ImageService  ImageService
	files         dto.URLResolver
	db            Pinger
	maxUploadSize int64
}

func NewRouter(
	log *slog.Logger,
	folderService FolderService,
	imageService ImageService,
	files dto.URLResolver,
	db Pinger,
	maxUploadSize int64,
) *Routers {
	return &Routers{
		log:           log,
		FolderService: folderService,
		ImageService:  imageService,
		files:         files,
		db:            db,
		maxUploadSize: maxUploadSize,
	}
}

// ListFolders godoc
// @Summary Список папок
// @Description Возвращает все папки, отсортированные по имени
// @Tags Папки
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.FolderResponse}
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/folders [get]
func (r *Routers) ListFolders(c echo.Context) error {
	const op = "http.routers.ListFolders"

	log := r.log.With(
		slog.String("op", op),
	)

	folders, err := r.FolderService.ListFolders(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewFolderListResponse(folders)))
}

// CreateFolder godoc
// @Summary Создание папки
// @Description Создает папку. Slug выдается автоматически и не меняется при переименовании.
// @Tags Папки
// @Accept json
// @Produce json
// @Param request body dto.CreateFolderRequest true "Имя папки"
// @Success 201 {object} response.Response{data=dto.FolderResponse} "Папка создана"
// @Failure 400 {object} response.ErrorResponse "Некорректное имя"
// @Failure 409 {object} response.ErrorResponse "Папка с таким именем уже существует"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/folders [post]
func (r *Routers) CreateFolder(c echo.Context) error {
	const op = "http.routers.CreateFolder"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateFolderRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("validation_failed", err.Error()))
	}

	folder, err := r.FolderService.CreateFolder(c.Request().Context(), req.Name)
	if err != nil {
		return r.fail(c, log, err)
	}

	log.Info("folder created", slog.Int64("folder_id", folder.ID), slog.String("slug", folder.Slug))

	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.NewFolderResponse(folder)))
}

// GetFolder godoc
// @Summary Получить папку
// @Description Возвращает папку по id или slug вместе с ее изображениями
// @Tags Папки
// @Produce json
// @Param folder path string true "id или slug папки"
// @Success 200 {object} response.Response{data=dto.FolderDetailResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Папка не найдена"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/folders/{folder} [get]
func (r *Routers) GetFolder(c echo.Context) error {
	const op = "http.routers.GetFolder"

	log := r.log.With(
		slog.String("op", op),
		slog.String("folder", c.Param("folder")),
	)

	ident, err := models.ParseIdentifier(c.Param("folder"))
	if err != nil {
		return r.fail(c, log, err)
	}

	ctx := c.Request().Context()

	folder, err := r.FolderService.GetFolder(ctx, ident)
	if err != nil {
		return r.fail(c, log, err)
	}

	images, err := r.ImageService.ListImages(ctx, models.IDIdentifier(folder.ID))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.FolderDetailResponse{
		FolderResponse: dto.NewFolderResponse(folder),
		Images:         dto.NewImageListResponse(images, r.files),
	}))
}

// RenameFolder godoc
// @Summary Переименовать папку
// @Description Меняет имя папки. Slug остается прежним.
// @Tags Папки
// @Accept json
// @Produce json
// @Param folder path string true "id или slug папки"
// @Param request body dto.RenameFolderRequest true "Новое имя"
// @Success 200 {object} response.Response{data=dto.FolderResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Имя уже занято"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/folders/{folder} [patch]
// @Router /api/v1/folders/{folder} [put]
func (r *Routers) RenameFolder(c echo.Context) error {
	const op = "http.routers.RenameFolder"

	log := r.log.With(
		slog.String("op", op),
		slog.String("folder", c.Param("folder")),
	)

	ident, err := models.ParseIdentifier(c.Param("folder"))
	if err != nil {
		return r.fail(c, log, err)
	}

	req := new(dto.RenameFolderRequest)
	if err := c.Bind(req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("validation_failed", err.Error()))
	}

	folder, err := r.FolderService.RenameFolder(c.Request().Context(), ident, req.Name)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewFolderResponse(folder)))
}

// DeleteFolder godoc
// @Summary Удалить папку
// @Description Удаляет папку вместе со всеми изображениями и их файлами
// @Tags Папки
// @Param folder path string true "id или slug папки"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/folders/{folder} [delete]
func (r *Routers) DeleteFolder(c echo.Context) error {
	const op = "http.routers.DeleteFolder"

	log := r.log.With(
		slog.String("op", op),
		slog.String("folder", c.Param("folder")),
	)

	ident, err := models.ParseIdentifier(c.Param("folder"))
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.FolderService.DeleteFolder(c.Request().Context(), ident); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListImages godoc
// @Summary Изображения папки
// @Description Возвращает изображения папки, новые первыми
// @Tags Изображения
// @Produce json
// @Param folder path string true "id или slug папки"
// @Success 200 {object} response.Response{data=[]dto.ImageResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/folders/{folder}/images [get]
func (r *Routers) ListImages(c echo.Context) error {
	const op = "http.routers.ListImages"

	log := r.log.With(
		slog.String("op", op),
		slog.String("folder", c.Param("folder")),
	)

	ident, err := models.ParseIdentifier(c.Param("folder"))
	if err != nil {
		return r.fail(c, log, err)
	}

	images, err := r.ImageService.ListImages(c.Request().Context(), ident)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewImageListResponse(images, r.files)))
}

// UploadImage godoc
// @Summary Загрузка изображения
// @Description Загружает изображение в папку. Размеры, размер файла и признак цветности вычисляются на сервере.
// @Tags Изображения
// @Accept multipart/form-data
// @Produce json
// @Param folder path string true "id или slug папки"
// @Param image_file formData file true "Изображение png, jpg, jpeg или gif"
// @Success 201 {object} response.Response{data=dto.ImageResponse} "Изображение загружено"
// @Failure 400 {object} response.ErrorResponse "Файл не является изображением"
// @Failure 404 {object} response.ErrorResponse "Папка не найдена"
// @Failure 409 {object} response.ErrorResponse "Не удалось выделить slug"
// @Failure 413 {object} response.ErrorResponse "Превышен максимальный размер файла"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/folders/{folder}/images [post]
func (r *Routers) UploadImage(c echo.Context) error {
	const op = "http.routers.UploadImage"

	log := r.log.With(
		slog.String("op", op),
		slog.String("folder", c.Param("folder")),
	)

	ident, err := models.ParseIdentifier(c.Param("folder"))
	if err != nil {
		return r.fail(c, log, err)
	}

	file, err := c.FormFile(imageFileField)
	if err != nil {
		log.Warn("image file is missing", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrImageFileRequired)
	}

	log.Debug("got file for upload",
		slog.String("filename", file.Filename),
		slog.Int64("size", file.Size),
	)

	if r.maxUploadSize > 0 && file.Size > r.maxUploadSize {
		return r.fail(c, log, fmt.Errorf("%s: %w", op, storage.ErrFileTooLarge))
	}

	src, err := file.Open()
	if err != nil {
		log.Error("failed to open uploaded file", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}
	defer src.Close()

	var reader io.Reader = src
	if r.maxUploadSize > 0 {
		reader = io.LimitReader(src, r.maxUploadSize+1)
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		log.Error("failed to read uploaded file", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if r.maxUploadSize > 0 && int64(len(content)) > r.maxUploadSize {
		return r.fail(c, log, fmt.Errorf("%s: %w", op, storage.ErrFileTooLarge))
	}

	image, err := r.ImageService.CreateImage(c.Request().Context(), ident, models.Upload{
		Filename: file.Filename,
		Content:  content,
	})
	if err != nil {
		return r.fail(c, log, err)
	}

	log.Info("upload successful",
		slog.Int64("image_id", image.ID),
		slog.String("slug", image.Slug),
		slog.Int64("file_size", image.FileSize),
	)

	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.NewImageResponse(image, r.files)))
}

// GetImage godoc
// @Summary Получить изображение
// @Description Возвращает изображение папки по id или slug
// @Tags Изображения
// @Produce json
// @Param folder path string true "id или slug папки"
// @Param image path string true "id или slug изображения"
// @Success 200 {object} response.Response{data=dto.ImageResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/folders/{folder}/images/{image} [get]
func (r *Routers) GetImage(c echo.Context) error {
	const op = "http.routers.GetImage"

	log := r.log.With(
		slog.String("op", op),
		slog.String("folder", c.Param("folder")),
		slog.String("image", c.Param("image")),
	)

	folderIdent, imageIdent, err := parseImagePath(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	image, err := r.ImageService.GetImage(c.Request().Context(), folderIdent, imageIdent)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewImageResponse(image, r.files)))
}

// DeleteImage godoc
// @Summary Удалить изображение
// @Description Удаляет изображение и его файл, количество изображений папки пересчитывается
// @Tags Изображения
// @Param folder path string true "id или slug папки"
// @Param image path string true "id или slug изображения"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/folders/{folder}/images/{image} [delete]
func (r *Routers) DeleteImage(c echo.Context) error {
	const op = "http.routers.DeleteImage"

	log := r.log.With(
		slog.String("op", op),
		slog.String("folder", c.Param("folder")),
		slog.String("image", c.Param("image")),
	)

	folderIdent, imageIdent, err := parseImagePath(c)
	if err != nil {
		return r.fail(c, log, err)
	}

	if err := r.ImageService.DeleteImage(c.Request().Context(), folderIdent, imageIdent); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Health godoc
// @Summary Проверка состояния
// @Description Проверяет доступность базы данных
// @Tags Служебные
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	if r.db != nil {
		if err := r.db.Ping(c.Request().Context()); err != nil {
			r.log.Error("health check failed", slog.String("op", "http.routers.Health"), sl.Err(err))
			return c.JSON(http.StatusServiceUnavailable, response.ErrUnavailable)
		}
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "ok"})
}

func parseImagePath(c echo.Context) (models.Identifier, models.Identifier, error) {
	folderIdent, err := models.ParseIdentifier(c.Param("folder"))
	if err != nil {
		return models.Identifier{}, models.Identifier{}, err
	}

	imageIdent, err := models.ParseIdentifier(c.Param("image"))
	if err != nil {
		return models.Identifier{}, models.Identifier{}, err
	}

	return folderIdent, imageIdent, nil
}

// fail отображает ошибку сервиса в HTTP-статус
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, models.ErrValidation):
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("validation_failed", err.Error()))
	case errors.Is(err, models.ErrNotFound):
		log.Warn("not found", sl.Err(err))
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", err.Error()))
	case errors.Is(err, models.ErrConflict):
		log.Warn("conflict", sl.Err(err))
		return c.JSON(http.StatusConflict, response.ErrorResponseWithDetails("conflict", err.Error()))
	case errors.Is(err, storage.ErrFileTooLarge):
		log.Warn("file too large", sl.Err(err))
		resp := response.ErrFileTooLarge
		resp.Details = fmt.Sprintf("max upload size is %s", humanize.IBytes(uint64(r.maxUploadSize)))
		return c.JSON(http.StatusRequestEntityTooLarge, resp)
	default:
		log.Error("request failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}
}
