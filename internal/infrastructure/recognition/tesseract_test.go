//go:build tesseract
// +build tesseract

package recognition

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"carnet-ocr/internal/domain/entity"
)

func whitePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 200, 80))
	for i := range img.Pix {
		img.Pix[i] = color.White.Y
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestTesseract_EmptyImage(t *testing.T) {
	r := NewTesseractRecognizer(zerolog.Nop())
	_, err := r.Recognize(context.Background(), nil, entity.LanguageProfile{Language: "eng"})
	require.ErrorIs(t, err, entity.ErrRecognitionUnavailable)
}

func TestTesseract_ImageStaysInMemory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)

	r := NewTesseractRecognizer(zerolog.Nop())
	// результат на пустом листе не важен, важно, что на диске ничего не появилось
	_, _ = r.Recognize(context.Background(), whitePNG(t), entity.LanguageProfile{Language: "eng"})

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
