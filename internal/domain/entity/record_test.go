package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFields_GetSet(t *testing.T) {
	var f Fields
	for _, name := range AllFields {
		require.Nil(t, f.Get(name))
		v := string(name) + "-value"
		f.Set(name, &v)
		require.Equal(t, v, *f.Get(name))
		require.True(t, f.Present(name))
	}
	require.Equal(t, "ci-value", *f.CI)
	require.Equal(t, "serie-value", *f.Serie)
}

func TestFields_PresentIgnoresBlank(t *testing.T) {
	var f Fields
	blank := "   "
	f.Set(FieldPadre, &blank)
	require.False(t, f.Present(FieldPadre))
	require.Nil(t, f.Get(FieldName("unknown")))
}

func TestProcessingError_Unwrap(t *testing.T) {
	err := error(&ProcessingError{Front: ErrRecognitionTimeout, Back: ErrRecognitionUnavailable})
	require.ErrorIs(t, err, ErrRecognitionTimeout)
	require.ErrorIs(t, err, ErrRecognitionUnavailable)

	var perr *ProcessingError
	require.True(t, errors.As(err, &perr))
	require.Contains(t, err.Error(), "front")
}

func TestNormalizedImage_Release(t *testing.T) {
	buf := []byte{1, 2, 3}
	img := NewNormalizedImage(buf)
	require.True(t, img.Transformed())
	img.Release()
	require.Nil(t, img.Bytes())
	require.Equal(t, []byte{0, 0, 0}, buf)

	orig := []byte{4, 5, 6}
	pass := PassthroughImage(orig)
	require.False(t, pass.Transformed())
	pass.Release()
	require.Equal(t, []byte{4, 5, 6}, orig)
}
