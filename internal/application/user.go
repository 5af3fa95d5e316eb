package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"carnet-ocr/internal/domain/entity"
	"carnet-ocr/internal/domain/port"
)

// ErrStateChanged состояние пользователя уже сменилось другим сообщением
var ErrStateChanged = errors.New("user state has changed")

// UserService хранит шаг сценария для каждого пользователя.
// Чтение и запись состояния идут под одним мьютексом: сообщения обрабатываются параллельно.
type UserService struct {
	repo port.UserRepository
	mu   sync.Mutex
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

// SetState безусловно переводит пользователя в состояние state.
func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store(ctx, userID, chatID, state)
}

// Transition переводит пользователя из from в to.
// Если пользователь уже не в from, возвращает ErrStateChanged и текущее состояние.
func (s *UserService) Transition(ctx context.Context, userID, chatID int64, from, to entity.UserState) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	if user.State != from {
		return user, fmt.Errorf("%w: want %s, got %s", ErrStateChanged, from, user.State)
	}

	user.SetState(to)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) store(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetState(state)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// BeginScan ждёт лицевую сторону; идущая обработка не прерывается.
func (s *UserService) BeginScan(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	if user.State == entity.StateProcessing {
		return user, fmt.Errorf("%w: document is being processed", ErrStateChanged)
	}
	return s.store(ctx, userID, chatID, entity.StateAwaitingFront)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}
