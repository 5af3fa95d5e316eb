package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"carnet-ocr/internal/domain/entity"
	"carnet-ocr/internal/domain/port"
)

const (
	// DefaultFaceTimeout время на конвейер одной стороны
	DefaultFaceTimeout = 60 * time.Second
	// DefaultLanguage язык движка распознавания
	DefaultLanguage = "spa"
	// LowAverageConfidence ниже этой средней уверенности добавляется предупреждение
	LowAverageConfidence = 50
)

// Options настройки обработки, задаются при создании сервиса
type Options struct {
	Profile             entity.LanguageProfile
	ConfidenceThreshold float64
	FaceTimeout         time.Duration
}

func (o Options) withDefaults() Options {
	if o.Profile.Language == "" {
		o.Profile.Language = DefaultLanguage
	}
	if o.Profile.Whitelist == "" {
		o.Profile.Whitelist = entity.DefaultWhitelist
	}
	if o.FaceTimeout <= 0 {
		o.FaceTimeout = DefaultFaceTimeout
	}
	return o
}

// Pipeline компоненты конвейера
type Pipeline struct {
	Assessor   port.QualityAssessor
	Normalizer port.ImageNormalizer
	Recognizer port.TextRecognizer
	Extractor  *Extractor
	Merger     *Merger
	Validator  *Validator
}

// DocumentService обрабатывает фотографии удостоверения: обе стороны
// проходят конвейер параллельно, затем результаты объединяются и проверяются.
type DocumentService struct {
	pipeline Pipeline
	opts     Options
	logger   zerolog.Logger
	metrics  port.DocumentMetrics
	now      func() time.Time
	newID    func() string
}

// NewDocumentService создаёт сервис обработки документов. metrics может быть nil.
func NewDocumentService(p Pipeline, opts Options, logger zerolog.Logger, metrics port.DocumentMetrics) *DocumentService {
	if p.Extractor == nil {
		p.Extractor = NewExtractor()
	}
	if p.Merger == nil {
		p.Merger = NewMerger(p.Extractor)
	}
	if p.Validator == nil {
		p.Validator = NewValidator()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &DocumentService{
		pipeline: p,
		opts:     opts.withDefaults(),
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// ProcessCompleteDocument обрабатывает обе стороны удостоверения.
// Ошибка *entity.ProcessingError возвращается, только если распознавание
// не удалось на обеих сторонах; отмена ctx возвращает ошибку контекста.
func (s *DocumentService) ProcessCompleteDocument(ctx context.Context, front, back []byte) (*entity.DocumentResult, error) {
	started := s.now()
	requestID := s.newID()
	logger := s.logger.With().Str("request_id", requestID).Logger()
	logger.Info().Int("front_bytes", len(front)).Int("back_bytes", len(back)).Msg("document processing started")

	var frontReport, backReport *entity.FaceReport
	var g errgroup.Group
	g.Go(func() error {
		frontReport = s.runFace(ctx, entity.FaceFront, front, logger)
		return nil
	})
	g.Go(func() error {
		backReport = s.runFace(ctx, entity.FaceBack, back, logger)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		logger.Warn().Err(err).Msg("document processing cancelled")
		s.metrics.DocumentProcessed(nil, s.now().Sub(started), err)
		return nil, err
	}

	if frontReport.Failed() && backReport.Failed() {
		err := &entity.ProcessingError{Front: frontReport.Err, Back: backReport.Err}
		logger.Error().Err(err).Msg("recognition failed on both faces")
		s.metrics.DocumentProcessed(nil, s.now().Sub(started), err)
		return nil, err
	}

	fields := s.pipeline.Merger.Merge(
		FaceExtraction{RawText: frontReport.Recognition.RawText, Fields: frontReport.Fields},
		FaceExtraction{RawText: backReport.Recognition.RawText, Fields: backReport.Fields},
	)
	average := int(math.Round((frontReport.Recognition.Confidence + backReport.Recognition.Confidence) / 2))

	result := &entity.DocumentResult{
		RequestID: requestID,
		Record: entity.IdentityRecord{
			Fields:            fields,
			AverageConfidence: average,
			Validation:        s.pipeline.Validator.Validate(fields),
		},
		AverageConfidence: average,
		Quality:           entity.QualityPair{Front: frontReport.Quality, Back: backReport.Quality},
		Faces:             entity.FacePair{Front: frontReport, Back: backReport},
		Diagnostics:       s.diagnose(frontReport, backReport, average),
		ProcessedAt:       s.now(),
	}

	logger.Info().
		Int("average_confidence", average).
		Int("completeness", result.Record.Validation.Completeness).
		Bool("valid", result.Record.Validation.IsValid).
		Strs("diagnostics", result.Diagnostics).
		Dur("duration", s.now().Sub(started)).
		Msg("document processed")
	s.metrics.DocumentProcessed(result, s.now().Sub(started), nil)
	return result, nil
}

// ProcessFace обрабатывает одну сторону. Отчёт возвращается и при ошибке
// распознавания: оценка качества в нём остаётся заполненной.
func (s *DocumentService) ProcessFace(ctx context.Context, image []byte, face entity.Face) (*entity.FaceReport, error) {
	logger := s.logger.With().Str("request_id", s.newID()).Logger()
	report := s.runFace(ctx, face, image, logger)
	if report.Err != nil {
		return report, report.Err
	}
	return report, nil
}

// AssessImage только оценивает качество фотографии
func (s *DocumentService) AssessImage(image []byte) entity.QualityReport {
	return s.pipeline.Assessor.Assess(image)
}

// ProcessBase64Document принимает обе стороны в base64 или data URL
func (s *DocumentService) ProcessBase64Document(ctx context.Context, front, back string) (*entity.DocumentResult, error) {
	frontImage, err := DecodeBase64Image(front)
	if err != nil {
		return nil, fmt.Errorf("front image: %w", err)
	}
	backImage, err := DecodeBase64Image(back)
	if err != nil {
		return nil, fmt.Errorf("back image: %w", err)
	}
	return s.ProcessCompleteDocument(ctx, frontImage, backImage)
}

// runFace конвейер одной стороны: качество, нормализация, распознавание, извлечение.
func (s *DocumentService) runFace(ctx context.Context, face entity.Face, image []byte, parent zerolog.Logger) *entity.FaceReport {
	logger := parent.With().Str("face", string(face)).Logger()
	report := &entity.FaceReport{
		Face:        face,
		Recognition: entity.RecognitionResult{Face: face},
		StartedAt:   s.now(),
	}
	defer func() {
		report.FinishedAt = s.now()
		s.metrics.FaceProcessed(report)
	}()

	// таймаут стороны покрывает и декодирование при оценке качества
	faceCtx, cancel := context.WithTimeout(ctx, s.opts.FaceTimeout)
	defer cancel()

	report.Quality = s.pipeline.Assessor.Assess(image)
	logger.Debug().Int("score", report.Quality.Score).Interface("issues", report.Quality.Issues).Msg("quality assessed")

	normalized := s.pipeline.Normalizer.Normalize(faceCtx, image)
	defer normalized.Release()

	text, err := s.pipeline.Recognizer.Recognize(faceCtx, normalized.Bytes(), s.opts.Profile)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, entity.ErrRecognitionTimeout) {
			err = fmt.Errorf("%w: %w", entity.ErrRecognitionTimeout, err)
		}
		report.Err = fmt.Errorf("recognize %s: %w", face, err)
		logger.Warn().Err(err).Msg("recognition failed")
		return report
	}

	report.Recognition.RawText = text.Text
	report.Recognition.Confidence = clampConfidence(text.Confidence)
	report.Fields = s.pipeline.Extractor.Extract(text.Text, face)
	logger.Debug().
		Float64("confidence", report.Recognition.Confidence).
		Int("text_length", len(text.Text)).
		Bool("normalized", normalized.Transformed()).
		Msg("face recognized")
	return report
}

func (s *DocumentService) diagnose(front, back *entity.FaceReport, average int) []string {
	diagnostics := make([]string, 0)
	for _, r := range []*entity.FaceReport{front, back} {
		switch {
		case r.Failed():
			diagnostics = append(diagnostics, fmt.Sprintf("%s: no se pudo reconocer el texto (%v)", r.Face.Label(), r.Err))
		case s.opts.ConfidenceThreshold > 0 && r.Recognition.Confidence < s.opts.ConfidenceThreshold:
			diagnostics = append(diagnostics, fmt.Sprintf("%s: confianza baja (%.0f < %.0f)", r.Face.Label(), r.Recognition.Confidence, s.opts.ConfidenceThreshold))
		}
	}
	if average < LowAverageConfidence {
		diagnostics = append(diagnostics, fmt.Sprintf("confianza promedio baja (%d%%): verifique los datos extraídos", average))
	}
	return diagnostics
}

func clampConfidence(c float64) float64 {
	switch {
	case math.IsNaN(c) || c < 0:
		return 0
	case c > 100:
		return 100
	default:
		return c
	}
}

type noopMetrics struct{}

func (noopMetrics) FaceProcessed(*entity.FaceReport) {}

func (noopMetrics) DocumentProcessed(*entity.DocumentResult, time.Duration, error) {}
