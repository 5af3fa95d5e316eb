package vision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"carnet-ocr/internal/domain/entity"
)

func TestQualityAssessor_DecodeFailure(t *testing.T) {
	a := NewQualityAssessor()
	for _, data := range [][]byte{nil, []byte("definitely not an image")} {
		r := a.Assess(data)
		require.Equal(t, 0, r.Score)
		require.Equal(t, []entity.IssueTag{entity.IssueDecodeError}, r.Issues)
		require.Len(t, r.Recommendations, 1)
	}
}

func TestQualityAssessor_LowResolution(t *testing.T) {
	r := NewQualityAssessor().Assess(encodePNG(t, checkerboard(300, 200, 8)))
	require.True(t, r.HasIssue(entity.IssueLowResolution))
	require.LessOrEqual(t, r.Score, 70)
	require.Equal(t, 300, r.Width)
	require.Equal(t, 200, r.Height)
}

func TestQualityAssessor_GoodImage(t *testing.T) {
	r := NewQualityAssessor().Assess(encodePNG(t, checkerboard(800, 600, 8)))
	require.Equal(t, 100, r.Score)
	require.Empty(t, r.Issues)
}

func TestQualityAssessor_FlatImages(t *testing.T) {
	grey := NewQualityAssessor().Assess(encodePNG(t, uniform(800, 600, 128)))
	require.Equal(t, []entity.IssueTag{entity.IssueLowContrast, entity.IssueBlur}, grey.Issues)
	require.Equal(t, 60, grey.Score)

	black := NewQualityAssessor().Assess(encodePNG(t, uniform(800, 600, 0)))
	require.Equal(t, []entity.IssueTag{entity.IssueLowContrast, entity.IssueBlur, entity.IssueBadLighting}, black.Issues)
	require.Equal(t, 45, black.Score)
	require.Len(t, black.Recommendations, 3)
}

func TestMeasure(t *testing.T) {
	m := measure(checkerboard(16, 16, 4))
	require.Equal(t, 0.0, m.Min)
	require.Equal(t, 255.0, m.Max)
	require.InDelta(t, 127.5, m.Mean, 0.001)
	require.InDelta(t, 127.5, m.StdDev, 0.001)
}
