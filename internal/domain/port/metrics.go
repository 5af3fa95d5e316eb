package port

import (
	"time"

	"carnet-ocr/internal/domain/entity"
)

// DocumentMetrics интерфейс сбора метрик обработки документов
type DocumentMetrics interface {
	// FaceProcessed фиксирует завершение конвейера одной стороны
	FaceProcessed(report *entity.FaceReport)

	// DocumentProcessed фиксирует итог обработки документа; result равен nil при ошибке
	DocumentProcessed(result *entity.DocumentResult, duration time.Duration, err error)
}
