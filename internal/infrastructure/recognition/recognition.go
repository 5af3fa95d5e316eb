package recognition

import (
	"context"
	"errors"
	"fmt"

	"carnet-ocr/internal/domain/entity"
)

// wrapContextErr приводит ошибку контекста к ошибкам домена: истёкший дедлайн
// означает таймаут распознавания, отмена возвращается как есть.
func wrapContextErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", entity.ErrRecognitionTimeout, err)
	}
	return err
}
