package imageinfo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

var ErrInvalidImage = errors.New("invalid image file")

var AllowedExtensions = []string{"png", "jpg", "jpeg", "gif"}

// MaxPixels ограничивает width*height до полного декодирования: маленький файл
// с огромными заявленными размерами иначе потребует гигабайты памяти.
const MaxPixels = 178_956_970

// allowedFormats сопоставляет формат по расширению с именем декодера из image.Decode
var allowedFormats = map[imaging.Format]string{
	imaging.PNG:  "png",
	imaging.JPEG: "jpeg",
	imaging.GIF:  "gif",
}

type Info struct {
	Width    int
	Height   int
	IsColor  bool
	FileSize int64
	Format   string
	MimeType string
}

// NameFromFilename отбрасывает каталог и расширение: "a/b/sunset.png" -> "sunset".
func NameFromFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Extension возвращает расширение файла в нижнем регистре без точки.
// Ведущие точки имени расширением не считаются: у ".png" расширения нет.
func Extension(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))

	stem := strings.TrimLeft(base, ".")
	if !strings.Contains(stem, ".") {
		return ""
	}

	return strings.ToLower(strings.TrimPrefix(filepath.Ext(stem), "."))
}

func IsAllowedExtension(filename string) bool {
	ext := Extension(filename)
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}

	return false
}

// Inspect проверяет расширение, полностью декодирует содержимое и извлекает метаданные.
// Любая ошибка оборачивает ErrInvalidImage.
func Inspect(filename string, content []byte) (Info, error) {
	if !IsAllowedExtension(filename) {
		return Info{}, fmt.Errorf("%w: file extension %q is not allowed, allowed extensions are: %s",
			ErrInvalidImage, Extension(filename), strings.Join(AllowedExtensions, ", "))
	}

	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	expected := allowedFormats[format]

	if len(content) == 0 {
		return Info{}, fmt.Errorf("%w: the submitted file is empty", ErrInvalidImage)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > MaxPixels {
		return Info{}, fmt.Errorf("%w: image size %dx%d exceeds limit of %d pixels",
			ErrInvalidImage, cfg.Width, cfg.Height, MaxPixels)
	}

	img, decoded, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	if decoded != expected {
		return Info{}, fmt.Errorf("%w: content is %s but extension says %s", ErrInvalidImage, decoded, expected)
	}

	bounds := img.Bounds()

	return Info{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		IsColor:  isColor(img.ColorModel()),
		FileSize: int64(len(content)),
		Format:   decoded,
		MimeType: mimetype.Detect(content).String(),
	}, nil
}

// isColor ложно только для одноканальных моделей в оттенках серого.
func isColor(m color.Model) bool {
	switch m {
	case color.GrayModel, color.Gray16Model:
		return false
	default:
		return true
	}
}
