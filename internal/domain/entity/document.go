package entity

import "time"

// FaceReport результат конвейера одной стороны
type FaceReport struct {
	Face        Face              `json:"face"`
	Quality     QualityReport     `json:"quality"`
	Recognition RecognitionResult `json:"recognition"`
	Fields      Fields            `json:"fields"`
	Err         error             `json:"-"`
	StartedAt   time.Time         `json:"startedAt"`
	FinishedAt  time.Time         `json:"finishedAt"`
}

// Failed сообщает, что распознавание стороны не удалось
func (r *FaceReport) Failed() bool {
	return r.Err != nil
}

// Duration длительность конвейера стороны
func (r *FaceReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// QualityPair отчёты качества обеих сторон
type QualityPair struct {
	Front QualityReport `json:"front"`
	Back  QualityReport `json:"back"`
}

// FacePair отчёты конвейеров обеих сторон
type FacePair struct {
	Front *FaceReport `json:"front"`
	Back  *FaceReport `json:"back"`
}

// DocumentResult полный ответ по двум фотографиям удостоверения
type DocumentResult struct {
	RequestID         string         `json:"requestId"`
	Record            IdentityRecord `json:"record"`
	AverageConfidence int            `json:"averageConfidence"`
	Quality           QualityPair    `json:"quality"`
	Faces             FacePair       `json:"faces"`
	Diagnostics       []string       `json:"diagnostics"`
	ProcessedAt       time.Time      `json:"processedAt"`
}
