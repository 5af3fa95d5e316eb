package port

import (
	"context"

	"carnet-ocr/internal/domain/entity"
)

// QualityAssessor интерфейс оценки качества фотографии
type QualityAssessor interface {
	// Assess оценивает изображение; при ошибке декодирования возвращает нулевой балл
	Assess(image []byte) entity.QualityReport
}

// ImageNormalizer интерфейс подготовки изображения к распознаванию
type ImageNormalizer interface {
	// Normalize никогда не падает: в худшем случае возвращает исходные байты
	Normalize(ctx context.Context, image []byte) *entity.NormalizedImage
}
