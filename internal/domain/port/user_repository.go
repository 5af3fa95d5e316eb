package port

import (
	"context"

	"carnet-ocr/internal/domain/entity"
)

// UserRepository интерфейс хранилища состояний диалога
type UserRepository interface {
	// Get возвращает пользователя по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние пользователя
	Save(ctx context.Context, user *entity.User) error
}
