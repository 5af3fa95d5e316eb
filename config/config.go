package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const serialDenylistEnv = "OCR_SERIAL_DENYLIST"

type Config struct {
	TelegramToken  string    `mapstructure:"telegram_token"`
	Debug          bool      `mapstructure:"debug"`
	MetricsAddress string    `mapstructure:"metrics_address"`
	OCR            OCRConfig `mapstructure:"ocr"`
}

// OCRConfig настройки конвейера распознавания
type OCRConfig struct {
	Language            string        `mapstructure:"language"`
	Whitelist           string        `mapstructure:"whitelist"`
	ConfidenceThreshold float64       `mapstructure:"confidence_threshold"`
	FaceTimeout         time.Duration `mapstructure:"face_timeout"`
	SerialDenylist      []string      `mapstructure:"serial_denylist"`
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	// OCR_FACE_TIMEOUT -> ocr.face_timeout
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Пустой OCR_SERIAL_DENYLIST отключает фильтр серий, остальные пустые переменные игнорируются
	if raw, ok := os.LookupEnv(serialDenylistEnv); ok && strings.TrimSpace(raw) == "" {
		v.Set("ocr.serial_denylist", []string{})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("telegram_token", "")
	v.SetDefault("debug", false)
	v.SetDefault("metrics_address", "")

	v.SetDefault("ocr.language", "spa")
	v.SetDefault("ocr.whitelist", "")
	v.SetDefault("ocr.confidence_threshold", 60)
	v.SetDefault("ocr.face_timeout", "60s")
	v.SetDefault("ocr.serial_denylist", []string{"8446290", "21222", "2026", "2002"})
}

// Validate проверяет значения после загрузки
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.OCR.Language) == "" {
		errs = append(errs, errors.New("ocr.language is required"))
	}
	if c.OCR.ConfidenceThreshold < 0 || c.OCR.ConfidenceThreshold > 100 {
		errs = append(errs, fmt.Errorf("ocr.confidence_threshold must be within [0,100], got %v", c.OCR.ConfidenceThreshold))
	}
	if c.OCR.FaceTimeout <= 0 {
		errs = append(errs, fmt.Errorf("ocr.face_timeout must be positive, got %s", c.OCR.FaceTimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
