package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"carnet-ocr/internal/domain/entity"
	"carnet-ocr/internal/domain/port"
)

// Metrics метрики обработки документов
type Metrics struct {
	// Длительность конвейера стороны по стороне и исходу
	FaceDuration *prometheus.HistogramVec

	// Уверенность распознавания по стороне
	FaceConfidence *prometheus.HistogramVec

	// Оценка качества фотографии по стороне
	QualityScore *prometheus.HistogramVec

	// Найденные проблемы качества
	QualityIssues *prometheus.CounterVec

	// Итоги обработки документов: valid, invalid, failed, cancelled
	Documents *prometheus.CounterVec

	// Полнота записи
	Completeness prometheus.Histogram

	// Заполненность отдельных полей
	FieldsExtracted *prometheus.CounterVec

	// Полная длительность обработки документа
	DocumentDuration prometheus.Histogram
}

// New регистрирует метрики в reg. nil означает регистратор по умолчанию.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		FaceDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "carnet_ocr_face_duration_seconds",
			Help:    "Duration of a single face pipeline (assess, normalize, recognize, extract)",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"face", "outcome"}),

		FaceConfidence: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "carnet_ocr_face_confidence",
			Help:    "Recognition confidence per face (0-100)",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}, []string{"face"}),

		QualityScore: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "carnet_ocr_quality_score",
			Help:    "Photo quality score per face (0-100)",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}, []string{"face"}),

		QualityIssues: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "carnet_ocr_quality_issues_total",
			Help: "Quality issues detected by tag",
		}, []string{"face", "issue"}),

		Documents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "carnet_ocr_documents_total",
			Help: "Processed documents by outcome",
		}, []string{"outcome"}),

		Completeness: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "carnet_ocr_record_completeness",
			Help:    "Completeness of extracted records (0-100)",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),

		FieldsExtracted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "carnet_ocr_fields_extracted_total",
			Help: "Extracted fields by name and presence",
		}, []string{"field", "present"}),

		DocumentDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "carnet_ocr_document_duration_seconds",
			Help:    "Duration of complete document processing",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
}

// FaceProcessed записывает метрики конвейера стороны
func (m *Metrics) FaceProcessed(report *entity.FaceReport) {
	if m == nil || report == nil {
		return
	}
	face := string(report.Face)

	m.FaceDuration.WithLabelValues(face, faceOutcome(report.Err)).Observe(report.Duration().Seconds())
	m.QualityScore.WithLabelValues(face).Observe(float64(report.Quality.Score))
	for _, issue := range report.Quality.Issues {
		m.QualityIssues.WithLabelValues(face, string(issue)).Inc()
	}
	if !report.Failed() {
		m.FaceConfidence.WithLabelValues(face).Observe(report.Recognition.Confidence)
	}
}

// DocumentProcessed записывает итог обработки документа
func (m *Metrics) DocumentProcessed(result *entity.DocumentResult, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.DocumentDuration.Observe(d.Seconds())
	m.Documents.WithLabelValues(documentOutcome(result, err)).Inc()

	if result == nil {
		return
	}
	m.Completeness.Observe(float64(result.Record.Validation.Completeness))
	for _, name := range entity.AllFields {
		present := result.Record.Fields.Present(name)
		m.FieldsExtracted.WithLabelValues(string(name), strconv.FormatBool(present)).Inc()
	}
}

func faceOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, entity.ErrRecognitionTimeout):
		return "timeout"
	case errors.Is(err, entity.ErrRecognitionUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

func documentOutcome(result *entity.DocumentResult, err error) string {
	var procErr *entity.ProcessingError
	switch {
	case errors.As(err, &procErr):
		return "failed"
	case err != nil:
		return "cancelled"
	case result != nil && result.Record.Validation.IsValid:
		return "valid"
	default:
		return "invalid"
	}
}

// Проверка реализации интерфейса
var _ port.DocumentMetrics = (*Metrics)(nil)
