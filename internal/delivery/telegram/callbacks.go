package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizrunner/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil || cb.Message.Chat.ID != h.chatID {
		h.answerCallback(cb.ID, "")
		return
	}
	chatID := cb.Message.Chat.ID

	qc, ok := parseQuizCallback(decodeCallback(cb.Data))
	if !ok {
		h.logger.Warn("invalid callback data", zap.String("data", cb.Data))
		h.answerCallback(cb.ID, "")
		return
	}

	if qc.Sub == quizStart {
		h.answerCallback(cb.ID, "")
		_ = h.withErrorHandling(h.startQuiz)(ctx, chatID)
		return
	}

	h.mu.Lock()
	session, msgID := h.session, h.messageID
	h.mu.Unlock()

	if session == nil || cb.Message.MessageID != msgID {
		h.answerCallback(cb.ID, msgStaleQuiz)
		return
	}

	v := session.View()
	if v.State != service.StateActive || v.Position != qc.Position {
		h.answerCallback(cb.ID, msgStaleQuiz)
		return
	}

	var (
		err       error
		unchanged bool
	)
	switch qc.Sub {
	case quizOption:
		if qc.Option >= len(v.Question.Options) {
			h.answerCallback(cb.ID, msgStaleQuiz)
			return
		}
		option := v.Question.Options[qc.Option]
		unchanged = v.Selected != nil && *v.Selected == option
		err = session.SelectOption(option)

	case quizNext:
		err = session.Advance(ctx)
	}

	switch {
	case errors.Is(err, service.ErrSubmission):
		h.logger.Warn("quiz submission failed", zap.Int64("chat_id", chatID), zap.Error(err))
	case errors.Is(err, service.ErrBusy):
		h.answerCallback(cb.ID, msgBusy)
		return
	case err != nil:
		h.logger.Error("quiz callback failed",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		h.answerCallback(cb.ID, msgInternalError)
		return
	}

	h.answerCallback(cb.ID, "")
	if unchanged {
		// Telegram rejects edits that change nothing.
		return
	}
	h.showView(chatID, msgID, session.View())
}

// answerCallback removes the loading indicator from the pressed button.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
