//go:build !tesseract
// +build !tesseract

package recognition

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"carnet-ocr/internal/domain/entity"
	"carnet-ocr/internal/domain/port"
)

// TesseractRecognizer заглушка для сборки без libtesseract
type TesseractRecognizer struct {
	logger zerolog.Logger
}

// NewTesseractRecognizer создаёт заглушку, которая сообщает о недоступности движка.
func NewTesseractRecognizer(logger zerolog.Logger) *TesseractRecognizer {
	logger.Warn().Msg("built without tesseract tag, recognition is unavailable")
	return &TesseractRecognizer{logger: logger}
}

// Name имя движка
func (r *TesseractRecognizer) Name() string { return "tesseract (unavailable)" }

// Recognize возвращает ошибку, если сборка без тега tesseract.
func (r *TesseractRecognizer) Recognize(ctx context.Context, _ []byte, _ entity.LanguageProfile) (entity.RecognizedText, error) {
	if err := ctx.Err(); err != nil {
		return entity.RecognizedText{}, wrapContextErr(err)
	}
	return entity.RecognizedText{}, fmt.Errorf("%w: built without tesseract support", entity.ErrRecognitionUnavailable)
}

// Проверка реализации интерфейса
var _ port.TextRecognizer = (*TesseractRecognizer)(nil)
