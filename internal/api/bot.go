package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	app "carnet-ocr/internal/application"
	"carnet-ocr/internal/container"
	"carnet-ocr/internal/domain/entity"
)

const (
	msgStart = `👋 ¡Hola! Soy un bot que lee carnets de identidad.

📸 Envíeme una foto del anverso y luego otra del reverso, y le devolveré los datos del carnet.

📋 Comandos:
/scan — escanear un carnet
/help — ayuda
/cancel — cancelar la operación actual`

	msgHelp = `ℹ️ Cómo usar el bot:

1️⃣ Envíe /scan
2️⃣ Envíe la foto del anverso del carnet
3️⃣ Envíe la foto del reverso
4️⃣ Recibirá los datos extraídos y la evaluación de calidad

💡 Recomendaciones:
• Fotografíe con buena luz y sin reflejos
• El carnet debe ocupar toda la foto
• La foto debe ser nítida

📋 Comandos:
/scan — escanear un carnet
/cancel — cancelar la operación`

	msgAwaitingFront   = "📸 Envíe la foto del anverso del carnet."
	msgAwaitingBack    = "📸 Ahora envíe la foto del reverso del carnet."
	msgCancelled       = "❌ Operación cancelada. Envíe /scan para empezar de nuevo."
	msgSendScan        = "📸 Envíe /scan para escanear un carnet."
	msgUnknownCommand  = "❓ Comando desconocido. Use /help para ver la ayuda."
	msgProcessing      = "⏳ Procesando el carnet..."
	msgBusy            = "⏳ Todavía estoy procesando su carnet, espere un momento."
	msgProcessingError = "⚠️ No se pudo procesar el carnet. Intente con otras fotos."
	msgNotAnImage      = "⚠️ El archivo no es una imagen."
)

// Bot представляет Telegram-бота
type Bot struct {
	api    *tgbotapi.BotAPI
	users  *app.UserService
	scans  *app.ScanService
	client *http.Client
	logger zerolog.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, logger zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("account", api.Self.UserName).Msg("authorized on telegram")

	return &Bot{
		api:    api,
		users:  c.UserService,
		scans:  c.ScanService,
		client: http.DefaultClient,
		logger: logger,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	// Обработка документа занимает секунды, поэтому каждое сообщение в своей горутине
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			wg.Add(1)
			go func(msg *tgbotapi.Message) {
				defer wg.Done()
				b.handleMessage(ctx, msg)
			}(update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	logger := b.logger.With().Int64("user_id", msg.From.ID).Int64("chat_id", msg.Chat.ID).Logger()

	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		logger.Error().Err(err).Msg("get user")
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user, logger)
		return
	}

	// Обработка фото или изображения, отправленного файлом
	if fileID, ok := imageFileID(msg); ok {
		b.handleImage(ctx, msg, user, fileID, logger)
		return
	}
	if msg.Document != nil {
		b.sendMessage(msg.Chat.ID, msgNotAnImage)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, promptFor(user.State))
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User, logger zerolog.Logger) {
	switch msg.Command() {
	case "start":
		if _, err := b.scans.Cancel(ctx, user.ID, user.ChatID); err != nil {
			logger.Error().Err(err).Msg("reset user")
		}
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "scan":
		if _, err := b.scans.BeginScan(ctx, user.ID, user.ChatID); err != nil {
			if errors.Is(err, app.ErrStateChanged) {
				b.sendMessage(msg.Chat.ID, msgBusy)
				return
			}
			logger.Error().Err(err).Msg("begin scan")
			b.sendMessage(msg.Chat.ID, msgProcessingError)
			return
		}
		b.sendMessage(msg.Chat.ID, msgAwaitingFront)

	case "cancel":
		if _, err := b.scans.Cancel(ctx, user.ID, user.ChatID); err != nil {
			logger.Error().Err(err).Msg("cancel scan")
		}
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handleImage принимает сторону карнета в зависимости от шага сценария
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, user *entity.User, fileID string, logger zerolog.Logger) {
	switch user.State {
	case entity.StateAwaitingFront, entity.StateAwaitingBack:
	case entity.StateProcessing:
		b.sendMessage(msg.Chat.ID, msgBusy)
		return
	default:
		b.sendMessage(msg.Chat.ID, msgSendScan)
		return
	}

	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		logger.Error().Err(err).Msg("download photo")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	if user.State == entity.StateAwaitingFront {
		current, err := b.scans.AcceptFrontPhoto(ctx, user.ID, user.ChatID, imageData)
		if err != nil {
			// пока фото скачивалось, пришла другая лицевая сторона
			if errors.Is(err, app.ErrStateChanged) && current != nil {
				b.sendMessage(msg.Chat.ID, promptFor(current.State))
				return
			}
			logger.Error().Err(err).Msg("accept front photo")
			b.sendMessage(msg.Chat.ID, msgProcessingError)
			return
		}
		b.sendMessage(msg.Chat.ID, msgAwaitingBack)
		return
	}

	b.sendMessage(msg.Chat.ID, msgProcessing)

	result, err := b.scans.AcceptBackPhoto(ctx, user.ID, user.ChatID, imageData)
	if err != nil {
		logger.Error().Err(err).Msg("process document")
		var procErr *entity.ProcessingError
		switch {
		case errors.As(err, &procErr):
			b.sendMessage(msg.Chat.ID, msgProcessingError)
		case errors.Is(err, app.ErrFrontMissing):
			b.sendMessage(msg.Chat.ID, msgSendScan)
		default:
			b.sendMessage(msg.Chat.ID, msgProcessingError)
		}
		return
	}

	logger.Info().Str("request_id", result.RequestID).Int("completeness", result.Record.Validation.Completeness).Msg("document sent")
	b.sendMessage(msg.Chat.ID, FormatResult(result))
}

// imageFileID возвращает файл наибольшего разрешения из фото или документ-изображение
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

func promptFor(state entity.UserState) string {
	switch state {
	case entity.StateAwaitingFront:
		return msgAwaitingFront
	case entity.StateAwaitingBack:
		return msgAwaitingBack
	case entity.StateProcessing:
		return msgBusy
	default:
		return msgSendScan
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, app.MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) > app.MaxImageBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", app.MaxImageBytes)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send message")
	}
}
