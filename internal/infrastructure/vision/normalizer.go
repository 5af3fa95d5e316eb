package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"carnet-ocr/internal/domain/entity"
	"carnet-ocr/internal/domain/port"
)

var errEmptyImage = errors.New("empty image")

// step один шаг цепочки нормализации
type step struct {
	name  string
	apply func(image.Image) (image.Image, error)
}

// Normalizer готовит фотографию к распознаванию на чистом Go
type Normalizer struct {
	steps  []step
	logger zerolog.Logger
}

// NewNormalizer создаёт нормализатор с фиксированной цепочкой шагов
func NewNormalizer(logger zerolog.Logger) *Normalizer {
	return &Normalizer{
		steps: []step{
			{name: "upscale", apply: upscale},
			{name: "contrast", apply: func(img image.Image) (image.Image, error) { return stretchContrast(img), nil }},
			{name: "sharpen", apply: func(img image.Image) (image.Image, error) { return imaging.Sharpen(img, sharpenSigma), nil }},
			{name: "denoise", apply: func(img image.Image) (image.Image, error) { return medianFilter(img, medianRadius), nil }},
			{name: "normalize", apply: func(img image.Image) (image.Image, error) { return autoLevels(img), nil }},
			{name: "greyscale", apply: toGray},
		},
		logger: logger,
	}
}

// Normalize прогоняет изображение через цепочку. Упавший шаг пропускается,
// при ошибке декодирования или кодирования возвращаются исходные байты.
func (n *Normalizer) Normalize(ctx context.Context, imageData []byte) *entity.NormalizedImage {
	img, err := decodeImage(imageData)
	if err != nil {
		n.logger.Debug().Err(err).Msg("normalize: using original image")
		return entity.PassthroughImage(imageData)
	}

	for _, s := range n.steps {
		if ctx.Err() != nil {
			n.logger.Debug().Str("step", s.name).Msg("normalize: context done, stopping chain")
			break
		}
		out, err := runStep(s, img)
		if err != nil {
			n.logger.Warn().Err(err).Str("step", s.name).Msg("normalize: step skipped")
			continue
		}
		img = out
	}

	var buf bytes.Buffer
	// PNG без сжатия: никаких артефактов перекодирования перед распознаванием
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.NoCompression)); err != nil {
		n.logger.Warn().Err(err).Msg("normalize: encode failed, using original image")
		return entity.PassthroughImage(imageData)
	}
	return entity.NewNormalizedImage(buf.Bytes())
}

func runStep(s step, img image.Image) (out image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", s.name, r)
		}
	}()
	out, err = s.apply(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	if out == nil || out.Bounds().Empty() {
		return nil, fmt.Errorf("%s: %w", s.name, errEmptyImage)
	}
	return out, nil
}

// upscale увеличивает снимок до целевой ширины ядром Lanczos.
func upscale(img image.Image) (image.Image, error) {
	w := img.Bounds().Dx()
	if w == 0 {
		return nil, errEmptyImage
	}
	return imaging.Resize(img, TargetWidth(w), 0, imaging.Lanczos), nil
}

// toGray переводит изображение в одноканальное серое.
func toGray(img image.Image) (image.Image, error) {
	g := imaging.Grayscale(img)
	gray := image.NewGray(g.Bounds())
	draw.Draw(gray, gray.Bounds(), g, g.Bounds().Min, draw.Src)
	return gray, nil
}

// Проверка реализации интерфейса
var _ port.ImageNormalizer = (*Normalizer)(nil)
