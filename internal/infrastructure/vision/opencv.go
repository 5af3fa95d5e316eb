//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"carnet-ocr/internal/domain/entity"
	"carnet-ocr/internal/domain/port"
)

// CVQualityAssessor оценка качества на OpenCV
type CVQualityAssessor struct{}

// NewCVQualityAssessor создаёт оценщик качества на OpenCV.
func NewCVQualityAssessor() *CVQualityAssessor {
	return &CVQualityAssessor{}
}

// Assess снимает метрики первого канала и считает балл.
func (a *CVQualityAssessor) Assess(imageData []byte) entity.QualityReport {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return entity.DecodeFailureReport()
	}
	defer mat.Close()

	channels := gocv.Split(mat)
	for i := range channels {
		defer channels[i].Close()
	}
	if len(channels) == 0 {
		return entity.DecodeFailureReport()
	}
	// OpenCV хранит каналы в порядке BGR, первый канал RGB — последний.
	first := channels[len(channels)-1]

	minVal, maxVal, _, _ := gocv.MinMaxLoc(first)

	mean := gocv.NewMat()
	defer mean.Close()
	stddev := gocv.NewMat()
	defer stddev.Close()
	gocv.MeanStdDev(first, &mean, &stddev)

	return entity.ScoreQuality(entity.ImageMetrics{
		Width:  mat.Cols(),
		Height: mat.Rows(),
		Min:    float64(minVal),
		Max:    float64(maxVal),
		Mean:   mean.GetDoubleAt(0, 0),
		StdDev: stddev.GetDoubleAt(0, 0),
	})
}

type cvStep struct {
	name  string
	apply func(src gocv.Mat, dst *gocv.Mat) error
}

// CVNormalizer цепочка нормализации на OpenCV
type CVNormalizer struct {
	steps  []cvStep
	logger zerolog.Logger
}

// NewCVNormalizer создаёт нормализатор на OpenCV с той же цепочкой шагов, что и Normalizer.
func NewCVNormalizer(logger zerolog.Logger) *CVNormalizer {
	return &CVNormalizer{
		steps: []cvStep{
			{name: "upscale", apply: cvUpscale},
			{name: "contrast", apply: func(src gocv.Mat, dst *gocv.Mat) error {
				src.ConvertToWithParams(dst, src.Type(), contrastGain, contrastBias)
				return nil
			}},
			{name: "sharpen", apply: cvSharpen},
			{name: "denoise", apply: func(src gocv.Mat, dst *gocv.Mat) error {
				gocv.MedianBlur(src, dst, 2*medianRadius+1)
				return nil
			}},
			{name: "normalize", apply: func(src gocv.Mat, dst *gocv.Mat) error {
				gocv.Normalize(src, dst, 0, 255, gocv.NormMinMax)
				return nil
			}},
			{name: "greyscale", apply: func(src gocv.Mat, dst *gocv.Mat) error {
				gocv.CvtColor(src, dst, gocv.ColorBGRToGray)
				return nil
			}},
		},
		logger: logger,
	}
}

// Normalize прогоняет изображение через цепочку OpenCV. Упавший шаг пропускается.
func (n *CVNormalizer) Normalize(ctx context.Context, imageData []byte) *entity.NormalizedImage {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return entity.PassthroughImage(imageData)
	}
	defer func() { mat.Close() }()

	for _, s := range n.steps {
		if ctx.Err() != nil {
			break
		}
		out, err := runCVStep(s, mat)
		if err != nil {
			n.logger.Warn().Err(err).Str("step", s.name).Msg("normalize: step skipped")
			continue
		}
		mat.Close()
		mat = out
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		n.logger.Warn().Err(err).Msg("normalize: encode failed, using original image")
		return entity.PassthroughImage(imageData)
	}
	defer buf.Close()

	return entity.NewNormalizedImage(append([]byte(nil), buf.GetBytes()...))
}

func runCVStep(s cvStep, src gocv.Mat) (out gocv.Mat, err error) {
	dst := gocv.NewMat()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", s.name, r)
		}
		if err != nil {
			dst.Close()
		}
	}()
	if err = s.apply(src, &dst); err != nil {
		return dst, fmt.Errorf("%s: %w", s.name, err)
	}
	if dst.Empty() {
		err = fmt.Errorf("%s: %w", s.name, errEmptyImage)
		return dst, err
	}
	return dst, nil
}

func cvUpscale(src gocv.Mat, dst *gocv.Mat) error {
	if src.Cols() == 0 {
		return errEmptyImage
	}
	w := TargetWidth(src.Cols())
	h := int(math.Round(float64(src.Rows()) * float64(w) / float64(src.Cols())))
	gocv.Resize(src, dst, image.Pt(w, h), 0, 0, gocv.InterpolationLanczos4)
	return nil
}

// cvSharpen повышает резкость классическим ядром 3x3.
func cvSharpen(src gocv.Mat, dst *gocv.Mat) error {
	kernel := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	defer kernel.Close()
	weights := [3][3]float32{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	}
	for r := range weights {
		for c := range weights[r] {
			kernel.SetFloatAt(r, c, weights[r][c])
		}
	}
	gocv.Filter2D(src, dst, gocv.MatType(-1), kernel, image.Pt(-1, -1), 0, gocv.BorderDefault)
	return nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	if len(imageData) == 0 {
		return gocv.Mat{}, fmt.Errorf("%w: empty input", entity.ErrDecode)
	}
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil {
		return gocv.Mat{}, errors.Join(entity.ErrDecode, err)
	}
	if mat.Empty() {
		// пустая матрица тоже владеет нативным хэндлом
		mat.Close()
		return gocv.Mat{}, fmt.Errorf("%w: unsupported image data", entity.ErrDecode)
	}
	return mat, nil
}

// Проверка реализации интерфейсов
var (
	_ port.QualityAssessor = (*CVQualityAssessor)(nil)
	_ port.ImageNormalizer = (*CVNormalizer)(nil)
)
