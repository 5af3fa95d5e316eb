package container

import (
	"github.com/rs/zerolog"

	app "carnet-ocr/internal/application"
	"carnet-ocr/internal/domain/port"
)

// Deps внешние зависимости, из которых собираются сервисы
type Deps struct {
	UserRepo       port.UserRepository
	Assessor       port.QualityAssessor
	Normalizer     port.ImageNormalizer
	Recognizer     port.TextRecognizer
	Metrics        port.DocumentMetrics
	Options        app.Options
	SerialDenylist []string
	Logger         zerolog.Logger
}

type Container struct {
	UserService     *app.UserService
	DocumentService *app.DocumentService
	ScanService     *app.ScanService
}

func New(deps Deps) *Container {
	extractor := app.NewExtractor(app.WithSerialDenylist(deps.SerialDenylist...))
	documentService := app.NewDocumentService(app.Pipeline{
		Assessor:   deps.Assessor,
		Normalizer: deps.Normalizer,
		Recognizer: deps.Recognizer,
		Extractor:  extractor,
		Merger:     app.NewMerger(extractor),
		Validator:  app.NewValidator(),
	}, deps.Options, deps.Logger, deps.Metrics)

	userService := app.NewUserService(deps.UserRepo)
	scanService := app.NewScanService(userService, documentService)

	return &Container{
		UserService:     userService,
		DocumentService: documentService,
		ScanService:     scanService,
	}
}
