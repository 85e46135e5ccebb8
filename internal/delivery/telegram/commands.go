package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizrunner/internal/service"
)

// startQuiz replaces the current session with a new one and loads it. The
// loading message is edited in place into the first question, or into the
// error when loading fails.
func (h *Handler) startQuiz(ctx context.Context, chatID int64) error {
	session := h.newSession()

	msg, err := h.bot.Send(newPlainMessage(chatID, msgLoading))
	if err != nil {
		return fmt.Errorf("send loading message: %w", err)
	}

	h.mu.Lock()
	h.session = session
	h.messageID = msg.MessageID
	h.mu.Unlock()

	h.logger.Debug("starting quiz session",
		zap.Int64("chat_id", chatID),
		zap.Int("message_id", msg.MessageID),
	)

	if err := session.Start(ctx); err != nil {
		h.logger.Warn("quiz load failed", zap.Int64("chat_id", chatID), zap.Error(err))
		h.send(tgbotapi.NewEditMessageText(chatID, msg.MessageID, formatLoadError(err)))
		return nil
	}

	h.showView(chatID, msg.MessageID, session.View())
	return nil
}

func (h *Handler) showView(chatID int64, msgID int, v service.View) {
	text, kb := renderView(v)

	edit := newEdit(chatID, msgID, text)
	edit.ReplyMarkup = kb

	h.send(edit)
}
