package recognition

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"carnet-ocr/internal/domain/entity"
)

func TestWrapContextErr(t *testing.T) {
	err := wrapContextErr(context.DeadlineExceeded)
	require.ErrorIs(t, err, entity.ErrRecognitionTimeout)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	err = wrapContextErr(context.Canceled)
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, errors.Is(err, entity.ErrRecognitionTimeout))
}
