//go:build !gocv
// +build !gocv

package vision

import "github.com/rs/zerolog"

// DefaultBackend возвращает бэкенд на чистом Go (сборка без тега gocv).
func DefaultBackend(logger zerolog.Logger) Backend {
	return Backend{
		Name:       "imaging",
		Assessor:   NewQualityAssessor(),
		Normalizer: NewNormalizer(logger),
	}
}
