package port

//go:generate mockgen -source=recognizer.go -destination=mocks/recognizer_mock.go -package=mocks TextRecognizer

import (
	"context"

	"carnet-ocr/internal/domain/entity"
)

// TextRecognizer интерфейс внешнего движка распознавания текста
type TextRecognizer interface {
	// Recognize распознаёт текст на изображении и возвращает уверенность 0..100
	Recognize(ctx context.Context, image []byte, profile entity.LanguageProfile) (entity.RecognizedText, error)
}
