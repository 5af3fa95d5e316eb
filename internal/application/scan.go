package app

import (
	"context"
	"errors"
	"sync"

	"carnet-ocr/internal/domain/entity"
)

// ErrFrontMissing лицевая сторона ещё не получена
var ErrFrontMissing = errors.New("front photo is not found")

// DocumentProcessor обработчик пары фотографий удостоверения
type DocumentProcessor interface {
	ProcessCompleteDocument(ctx context.Context, front, back []byte) (*entity.DocumentResult, error)
}

// ScanService ведёт пользователя по сценарию сканирования: лицевая сторона, затем оборот.
type ScanService struct {
	users     *UserService
	documents DocumentProcessor
	fronts    map[int64][]byte
	mu        sync.Mutex
}

// NewScanService создаёт сервис сценария сканирования.
func NewScanService(users *UserService, documents DocumentProcessor) *ScanService {
	return &ScanService{
		users:     users,
		documents: documents,
		fronts:    make(map[int64][]byte),
	}
}

// BeginScan начинает сканирование и ждёт фото лицевой стороны.
func (s *ScanService) BeginScan(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	s.dropFront(userID)
	return s.users.BeginScan(ctx, userID, chatID)
}

// AcceptFrontPhoto сохраняет лицевую сторону до прихода оборота.
// Принимается только одна лицевая сторона: остальные получают ErrStateChanged.
func (s *ScanService) AcceptFrontPhoto(ctx context.Context, userID, chatID int64, photo []byte) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.Transition(ctx, userID, chatID, entity.StateAwaitingFront, entity.StateAwaitingBack)
	if err != nil {
		return user, err
	}
	s.fronts[userID] = photo
	return user, nil
}

// AcceptBackPhoto обрабатывает документ и возвращает пользователя в главное меню.
// Лицевая сторона забирается из памяти до обработки, поэтому документ обрабатывается один раз.
func (s *ScanService) AcceptBackPhoto(ctx context.Context, userID, chatID int64, photo []byte) (*entity.DocumentResult, error) {
	if s.documents == nil {
		return nil, errors.New("document processor is not configured")
	}

	front, ok := s.takeFront(userID)
	if !ok {
		return nil, ErrFrontMissing
	}

	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		return nil, err
	}

	result, err := s.documents.ProcessCompleteDocument(ctx, front, photo)
	if _, stateErr := s.users.SetState(context.WithoutCancel(ctx), userID, chatID, entity.StateMainMenu); stateErr != nil && err == nil {
		err = stateErr
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel прерывает сценарий и забывает присланную лицевую сторону.
func (s *ScanService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	s.dropFront(userID)
	return s.users.Cancel(ctx, userID, chatID)
}

// takeFront достаёт и удаляет лицевую сторону за один шаг.
func (s *ScanService) takeFront(userID int64) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	front, ok := s.fronts[userID]
	delete(s.fronts, userID)
	return front, ok && len(front) > 0
}

func (s *ScanService) dropFront(userID int64) {
	s.mu.Lock()
	delete(s.fronts, userID)
	s.mu.Unlock()
}
