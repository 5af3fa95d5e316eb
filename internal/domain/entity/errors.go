package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode изображение не удалось декодировать
	ErrDecode = errors.New("image decode failed")
	// ErrRecognitionUnavailable движок распознавания недоступен
	ErrRecognitionUnavailable = errors.New("recognition engine unavailable")
	// ErrRecognitionTimeout движок не уложился в отведённое время
	ErrRecognitionTimeout = errors.New("recognition timed out")
	// ErrInvalidBase64Image некорректные данные изображения в base64
	ErrInvalidBase64Image = errors.New("invalid base64 image")
)

// ProcessingError обе стороны не прошли распознавание
type ProcessingError struct {
	Front error
	Back  error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("document processing failed: front: %v; back: %v", e.Front, e.Back)
}

// Unwrap отдаёт ошибки обеих сторон для errors.Is / errors.As
func (e *ProcessingError) Unwrap() []error {
	return []error{e.Front, e.Back}
}
