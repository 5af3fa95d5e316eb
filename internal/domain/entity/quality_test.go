package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func goodMetrics() ImageMetrics {
	return ImageMetrics{Width: 1200, Height: 800, Min: 0, Max: 255, Mean: 128, StdDev: 60}
}

func TestScoreQuality_Clean(t *testing.T) {
	r := ScoreQuality(goodMetrics())
	require.Equal(t, 100, r.Score)
	require.Empty(t, r.Issues)
	require.Empty(t, r.Recommendations)
	require.Equal(t, 1200, r.Width)
	require.Equal(t, 800, r.Height)
}

func TestScoreQuality_LowResolution(t *testing.T) {
	for _, size := range [][2]int{{599, 800}, {1200, 399}, {100, 100}} {
		m := goodMetrics()
		m.Width, m.Height = size[0], size[1]
		r := ScoreQuality(m)
		require.True(t, r.HasIssue(IssueLowResolution), "size %v", size)
		require.LessOrEqual(t, r.Score, 70)
	}
}

func TestScoreQuality_EachIssue(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ImageMetrics)
		tag    IssueTag
		score  int
	}{
		{"contrast", func(m *ImageMetrics) { m.Min, m.Max = 100, 199 }, IssueLowContrast, 80},
		{"blur", func(m *ImageMetrics) { m.StdDev = 29.9 }, IssueBlur, 80},
		{"dark", func(m *ImageMetrics) { m.Mean = 49 }, IssueBadLighting, 85},
		{"bright", func(m *ImageMetrics) { m.Mean = 201 }, IssueBadLighting, 85},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := goodMetrics()
			tc.mutate(&m)
			r := ScoreQuality(m)
			require.Equal(t, []IssueTag{tc.tag}, r.Issues)
			require.Equal(t, tc.score, r.Score)
			require.Equal(t, []string{tc.tag.Recommendation()}, r.Recommendations)
		})
	}
}

func TestScoreQuality_AllIssues(t *testing.T) {
	r := ScoreQuality(ImageMetrics{Width: 10, Height: 10, Min: 0, Max: 0, Mean: 0, StdDev: 0})
	require.Equal(t, []IssueTag{IssueLowResolution, IssueLowContrast, IssueBlur, IssueBadLighting}, r.Issues)
	require.Equal(t, 15, r.Score)
	require.Len(t, r.Recommendations, 4)
	require.GreaterOrEqual(t, r.Score, 0)
}

func TestDecodeFailureReport(t *testing.T) {
	r := DecodeFailureReport()
	require.Equal(t, 0, r.Score)
	require.Equal(t, []IssueTag{IssueDecodeError}, r.Issues)
	require.Equal(t, []string{"Verificar que el archivo sea una imagen válida"}, r.Recommendations)
}

func TestRecommendationsFor_Dedup(t *testing.T) {
	recs := RecommendationsFor([]IssueTag{IssueBlur, IssueBlur, IssueLowContrast})
	require.Equal(t, []string{IssueBlur.Recommendation(), IssueLowContrast.Recommendation()}, recs)
}
