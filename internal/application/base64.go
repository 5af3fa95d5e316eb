package app

import (
	"encoding/base64"
	"fmt"
	"strings"

	"carnet-ocr/internal/domain/entity"
)

const (
	// MinBase64Length изображения короче этого считаются пустыми
	MinBase64Length = 1000
	// MaxImageBytes предельный размер изображения после декодирования
	MaxImageBytes = 10 << 20
	// MaxBase64Length предельная длина строки base64 для MaxImageBytes
	MaxBase64Length = MaxImageBytes * 4 / 3
)

// DecodeBase64Image декодирует изображение из base64, снимая префикс data URL
// вида "data:image/png;base64,".
func DecodeBase64Image(data string) ([]byte, error) {
	clean := strings.TrimSpace(data)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty payload", entity.ErrInvalidBase64Image)
	}

	if strings.HasPrefix(clean, "data:") {
		header, payload, ok := strings.Cut(clean, ",")
		if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
			return nil, fmt.Errorf("%w: unsupported data url", entity.ErrInvalidBase64Image)
		}
		clean = payload
	}

	switch {
	case len(clean) < MinBase64Length:
		return nil, fmt.Errorf("%w: image too small (%d chars)", entity.ErrInvalidBase64Image, len(clean))
	case len(clean) > MaxBase64Length:
		return nil, fmt.Errorf("%w: image too large (max %d MiB)", entity.ErrInvalidBase64Image, MaxImageBytes>>20)
	}

	image, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidBase64Image, err)
	}
	return image, nil
}
