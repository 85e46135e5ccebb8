package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Handler drives quiz sessions for a single chat. Updates from any other
// chat are ignored.
type Handler struct {
	bot        Bot
	logger     *zap.Logger
	chatID     int64
	newSession SessionFactory

	mu        sync.Mutex
	session   QuizSession
	messageID int // message holding the current quiz screen
}

func NewHandler(bot Bot, logger *zap.Logger, chatID int64, newSession SessionFactory) *Handler {
	return &Handler{
		bot:        bot,
		logger:     logger,
		chatID:     chatID,
		newSession: newSession,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started", zap.Int64("chat_id", h.chatID))
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	if chatID != h.chatID {
		h.logger.Debug("update from foreign chat ignored", zap.Int64("chat_id", chatID))
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if !update.Message.IsCommand() {
		h.send(newPlainMessage(chatID, msgUseQuiz))
		return
	}

	switch update.Message.Command() {
	case "start", "help":
		h.send(newPlainMessage(chatID, msgWelcome))
	case "quiz":
		_ = h.withErrorHandling(h.startQuiz)(ctx, chatID)
	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	h.send(newPlainMessage(chatID, err))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
