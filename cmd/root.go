package main

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"carnet-ocr/config"
	app "carnet-ocr/internal/application"
	"carnet-ocr/internal/container"
	"carnet-ocr/internal/domain/entity"
	"carnet-ocr/internal/infrastructure/metrics"
	"carnet-ocr/internal/infrastructure/recognition"
	"carnet-ocr/internal/infrastructure/storage"
	"carnet-ocr/internal/infrastructure/vision"
)

// application собранное приложение, общее для всех команд
type application struct {
	cfg      *config.Config
	registry *prometheus.Registry
	app      *container.Container
}

func newRootCmd() *cobra.Command {
	rt := &application{}

	root := &cobra.Command{
		Use:           "carnet-ocr",
		Short:         "Extract identity fields from photos of a Bolivian carnet",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			setupLogger(cfg.Debug)
			rt.cfg = cfg
			rt.registry, rt.app = build(cfg)
			return nil
		},
	}

	root.AddCommand(
		newBotCmd(rt),
		newScanCmd(rt),
		newFaceCmd(rt),
		newAssessCmd(rt),
	)
	return root
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

func build(cfg *config.Config) (*prometheus.Registry, *container.Container) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	backend := vision.DefaultBackend(log.Logger)
	log.Info().Str("backend", backend.Name).Msg("image backend selected")

	recognizer := recognition.NewTesseractRecognizer(log.Logger)
	log.Info().Str("engine", recognizer.Name()).Msg("recognition engine selected")

	c := container.New(container.Deps{
		UserRepo:   storage.NewMemoryUserRepository(),
		Assessor:   backend.Assessor,
		Normalizer: backend.Normalizer,
		Recognizer: recognizer,
		Metrics:    metrics.New(registry),
		Options: app.Options{
			Profile: entity.LanguageProfile{
				Language:  cfg.OCR.Language,
				Whitelist: cfg.OCR.Whitelist,
			},
			ConfidenceThreshold: cfg.OCR.ConfidenceThreshold,
			FaceTimeout:         cfg.OCR.FaceTimeout,
		},
		SerialDenylist: cfg.OCR.SerialDenylist,
		Logger:         log.Logger,
	})
	return registry, c
}
