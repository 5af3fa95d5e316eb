package vision

import "carnet-ocr/internal/domain/port"

// Backend реализация оценки качества и нормализации
type Backend struct {
	Name       string
	Assessor   port.QualityAssessor
	Normalizer port.ImageNormalizer
}
