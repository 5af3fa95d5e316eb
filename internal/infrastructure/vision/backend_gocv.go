//go:build gocv
// +build gocv

package vision

import "github.com/rs/zerolog"

// DefaultBackend возвращает бэкенд на OpenCV (сборка с тегом gocv).
func DefaultBackend(logger zerolog.Logger) Backend {
	return Backend{
		Name:       "opencv",
		Assessor:   NewCVQualityAssessor(),
		Normalizer: NewCVNormalizer(logger),
	}
}
