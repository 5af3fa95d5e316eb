package entity

// IssueTag код проблемы качества изображения
type IssueTag string

const (
	IssueLowResolution IssueTag = "LOW_RESOLUTION"
	IssueLowContrast   IssueTag = "LOW_CONTRAST"
	IssueBlur          IssueTag = "BLUR"
	IssueBadLighting   IssueTag = "BAD_LIGHTING"
	IssueDecodeError   IssueTag = "DECODE_ERROR"
)

// Пороги оценки качества. Яркостные метрики считаются по первому каналу.
const (
	MinQualityWidth  = 600
	MinQualityHeight = 400
	MinContrastRange = 100
	MinSharpnessStd  = 30
	MinBrightness    = 50
	MaxBrightness    = 200

	penaltyLowResolution = 30
	penaltyLowContrast   = 20
	penaltyBlur          = 20
	penaltyBadLighting   = 15
)

var recommendations = map[IssueTag]string{
	IssueLowResolution: "Tomar foto más cerca del carnet o usar mejor cámara",
	IssueLowContrast:   "Mejorar iluminación y evitar sombras",
	IssueBlur:          "Mantener la cámara estable y enfocar bien",
	IssueBadLighting:   "Ajustar iluminación - evitar luz muy fuerte o muy tenue",
	IssueDecodeError:   "Verificar que el archivo sea una imagen válida",
}

// Recommendation возвращает совет пользователю для проблемы
func (t IssueTag) Recommendation() string {
	return recommendations[t]
}

// ImageMetrics сырые замеры изображения, которые снимает бэкенд обработки
type ImageMetrics struct {
	Width  int     // ширина в пикселях
	Height int     // высота в пикселях
	Min    float64 // минимальная интенсивность
	Max    float64 // максимальная интенсивность
	Mean   float64 // средняя интенсивность (яркость)
	StdDev float64 // стандартное отклонение интенсивности
}

// QualityReport оценка готовности изображения к распознаванию
type QualityReport struct {
	Score           int        `json:"score"`
	Width           int        `json:"width"`
	Height          int        `json:"height"`
	Issues          []IssueTag `json:"issues"`
	Recommendations []string   `json:"recommendations"`
}

// HasIssue проверяет наличие проблемы в отчёте
func (r QualityReport) HasIssue(tag IssueTag) bool {
	for _, issue := range r.Issues {
		if issue == tag {
			return true
		}
	}
	return false
}

// ScoreQuality считает оценку по замерам. Каждая проблема снижает балл, минимум 0.
func ScoreQuality(m ImageMetrics) QualityReport {
	report := QualityReport{Score: 100, Width: m.Width, Height: m.Height}

	add := func(tag IssueTag, penalty int) {
		report.Score -= penalty
		report.Issues = append(report.Issues, tag)
	}

	if m.Width < MinQualityWidth || m.Height < MinQualityHeight {
		add(IssueLowResolution, penaltyLowResolution)
	}
	if m.Max-m.Min < MinContrastRange {
		add(IssueLowContrast, penaltyLowContrast)
	}
	if m.StdDev < MinSharpnessStd {
		add(IssueBlur, penaltyBlur)
	}
	if m.Mean < MinBrightness || m.Mean > MaxBrightness {
		add(IssueBadLighting, penaltyBadLighting)
	}

	if report.Score < 0 {
		report.Score = 0
	}
	report.Recommendations = RecommendationsFor(report.Issues)
	return report
}

// DecodeFailureReport отчёт для нечитаемого изображения
func DecodeFailureReport() QualityReport {
	issues := []IssueTag{IssueDecodeError}
	return QualityReport{
		Score:           0,
		Issues:          issues,
		Recommendations: RecommendationsFor(issues),
	}
}

// RecommendationsFor строит по одному совету на каждый класс проблемы.
func RecommendationsFor(issues []IssueTag) []string {
	seen := make(map[IssueTag]struct{}, len(issues))
	out := make([]string, 0, len(issues))
	for _, tag := range issues {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		if rec := tag.Recommendation(); rec != "" {
			out = append(out, rec)
		}
	}
	return out
}
