package vision

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"carnet-ocr/internal/domain/entity"
)

// decodeImage декодирует байты любого поддерживаемого растрового формата.
// Ориентация из EXIF применяется сразу: телефоны часто сохраняют кадр повёрнутым.
func decodeImage(imageData []byte) (image.Image, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("%w: empty input", entity.ErrDecode)
	}
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", entity.ErrDecode)
	}
	return img, nil
}
