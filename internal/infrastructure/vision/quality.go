package vision

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"carnet-ocr/internal/domain/entity"
	"carnet-ocr/internal/domain/port"
)

// QualityAssessor оценивает пригодность фотографии для распознавания на чистом Go
type QualityAssessor struct{}

// NewQualityAssessor создаёт оценщик качества
func NewQualityAssessor() *QualityAssessor {
	return &QualityAssessor{}
}

// Assess снимает метрики и считает балл. Ошибка декодирования даёт нулевой балл.
func (a *QualityAssessor) Assess(imageData []byte) entity.QualityReport {
	img, err := decodeImage(imageData)
	if err != nil {
		return entity.DecodeFailureReport()
	}
	return entity.ScoreQuality(measure(img))
}

// measure считает статистику интенсивности первого (красного) канала.
func measure(img image.Image) entity.ImageMetrics {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	m := entity.ImageMetrics{Width: w, Height: h}

	total := float64(w * h)
	if total == 0 {
		return m
	}

	lo, hi := 255.0, 0.0
	var sum, sumSq float64
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			v := float64(row[x])
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			sum += v
			sumSq += v * v
		}
	}

	mean := sum / total
	variance := sumSq/total - mean*mean
	if variance < 0 {
		variance = 0
	}

	m.Min = lo
	m.Max = hi
	m.Mean = mean
	m.StdDev = math.Sqrt(variance)
	return m
}

// Проверка реализации интерфейса
var _ port.QualityAssessor = (*QualityAssessor)(nil)
