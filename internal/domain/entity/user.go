package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingFront UserState = "awaiting_front" // Ожидание фото лицевой стороны
	StateAwaitingBack  UserState = "awaiting_back"  // Ожидание фото оборота
	StateProcessing    UserState = "processing"     // Обработка документа
)

// User представляет пользователя бота
type User struct {
	ID     int64     // Telegram User ID
	ChatID int64     // Telegram Chat ID
	State  UserState // Текущее состояние пользователя
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// AwaitingPhoto сообщает, ждёт ли бот от пользователя фотографию
func (u *User) AwaitingPhoto() bool {
	return u.State == StateAwaitingFront || u.State == StateAwaitingBack
}
