//go:build tesseract
// +build tesseract

package recognition

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog"

	"carnet-ocr/internal/domain/entity"
	"carnet-ocr/internal/domain/port"
)

// TesseractRecognizer распознаёт текст через libtesseract (gosseract)
type TesseractRecognizer struct {
	clientFactory func() *gosseract.Client
	logger        zerolog.Logger
}

// NewTesseractRecognizer создаёт адаптер Tesseract.
func NewTesseractRecognizer(logger zerolog.Logger) *TesseractRecognizer {
	logger.Debug().Str("tesseract_version", gosseract.Version()).Msg("tesseract recognizer initialized")
	return &TesseractRecognizer{
		clientFactory: gosseract.NewClient,
		logger:        logger,
	}
}

// Name имя движка
func (r *TesseractRecognizer) Name() string { return "tesseract" }

type outcome struct {
	text entity.RecognizedText
	err  error
}

// Recognize запускает распознавание и ждёт его не дольше, чем живёт ctx.
// Вызов движка блокирующий, поэтому идёт в отдельной горутине; она сама
// освобождает клиента, даже если ответ уже никому не нужен.
func (r *TesseractRecognizer) Recognize(ctx context.Context, image []byte, profile entity.LanguageProfile) (entity.RecognizedText, error) {
	if err := ctx.Err(); err != nil {
		return entity.RecognizedText{}, wrapContextErr(err)
	}

	done := make(chan outcome, 1)
	go func() {
		text, err := r.recognize(image, profile)
		done <- outcome{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return entity.RecognizedText{}, wrapContextErr(ctx.Err())
	case out := <-done:
		return out.text, out.err
	}
}

func (r *TesseractRecognizer) recognize(image []byte, profile entity.LanguageProfile) (entity.RecognizedText, error) {
	if len(image) == 0 {
		return entity.RecognizedText{}, fmt.Errorf("%w: empty image", entity.ErrRecognitionUnavailable)
	}

	client := r.clientFactory()
	defer client.Close()

	if err := client.SetLanguage(profile.Language); err != nil {
		return entity.RecognizedText{}, fmt.Errorf("%w: set language: %w", entity.ErrRecognitionUnavailable, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return entity.RecognizedText{}, fmt.Errorf("%w: set page segmentation: %w", entity.ErrRecognitionUnavailable, err)
	}
	if profile.Whitelist != "" {
		if err := client.SetWhitelist(profile.Whitelist); err != nil {
			return entity.RecognizedText{}, fmt.Errorf("%w: set whitelist: %w", entity.ErrRecognitionUnavailable, err)
		}
	}
	if err := client.SetVariable("preserve_interword_spaces", "1"); err != nil {
		return entity.RecognizedText{}, fmt.Errorf("%w: set variable: %w", entity.ErrRecognitionUnavailable, err)
	}
	// изображение передаётся движку из памяти, на диск ничего не пишется
	if err := client.SetImageFromBytes(image); err != nil {
		return entity.RecognizedText{}, fmt.Errorf("%w: set image: %w", entity.ErrRecognitionUnavailable, err)
	}

	text, err := client.Text()
	if err != nil {
		return entity.RecognizedText{}, fmt.Errorf("%w: recognize text: %w", entity.ErrRecognitionUnavailable, err)
	}

	return entity.RecognizedText{
		Text:       strings.TrimSpace(text),
		Confidence: meanWordConfidence(client),
	}, nil
}

// meanWordConfidence средняя уверенность по словам, 0..100.
func meanWordConfidence(c *gosseract.Client) float64 {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	return sum / float64(len(boxes))
}

// Проверка реализации интерфейса
var _ port.TextRecognizer = (*TesseractRecognizer)(nil)
