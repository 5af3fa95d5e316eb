package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// unsetEnv убирает переменную на время теста
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "OCR_LANGUAGE", "OCR_CONFIDENCE_THRESHOLD", "OCR_FACE_TIMEOUT", "OCR_SERIAL_DENYLIST")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "spa", cfg.OCR.Language)
	require.Equal(t, float64(60), cfg.OCR.ConfidenceThreshold)
	require.Equal(t, 60*time.Second, cfg.OCR.FaceTimeout)
	require.Equal(t, []string{"8446290", "21222", "2026", "2002"}, cfg.OCR.SerialDenylist)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("DEBUG", "true")
	t.Setenv("METRICS_ADDRESS", ":9090")
	t.Setenv("OCR_LANGUAGE", "spa+eng")
	t.Setenv("OCR_CONFIDENCE_THRESHOLD", "75")
	t.Setenv("OCR_FACE_TIMEOUT", "30s")
	t.Setenv("OCR_SERIAL_DENYLIST", "111,222")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "token", cfg.TelegramToken)
	require.True(t, cfg.Debug)
	require.Equal(t, ":9090", cfg.MetricsAddress)
	require.Equal(t, "spa+eng", cfg.OCR.Language)
	require.Equal(t, float64(75), cfg.OCR.ConfidenceThreshold)
	require.Equal(t, 30*time.Second, cfg.OCR.FaceTimeout)
	require.Equal(t, []string{"111", "222"}, cfg.OCR.SerialDenylist)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("OCR_CONFIDENCE_THRESHOLD", "150")
	t.Setenv("OCR_FACE_TIMEOUT", "-1s")

	_, err := Load()
	require.ErrorContains(t, err, "confidence_threshold")
	require.ErrorContains(t, err, "face_timeout")
}

func TestLoad_EmptySerialDenylistDisablesFilter(t *testing.T) {
	unsetEnv(t, "OCR_LANGUAGE", "OCR_CONFIDENCE_THRESHOLD", "OCR_FACE_TIMEOUT")
	t.Setenv("OCR_SERIAL_DENYLIST", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Empty(t, cfg.OCR.SerialDenylist)
	require.Equal(t, "spa", cfg.OCR.Language)
}

func TestLoad_EmptyValuesKeepDefaults(t *testing.T) {
	t.Setenv("OCR_LANGUAGE", "")
	t.Setenv("OCR_FACE_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "spa", cfg.OCR.Language)
	require.Equal(t, 60*time.Second, cfg.OCR.FaceTimeout)
}
