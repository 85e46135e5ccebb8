package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quizrunner/internal/service"
)

// buildQuizQuestionKeyboard builds one row per option plus the Next/Submit row.
func buildQuizQuestionKeyboard(v service.View) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range v.Question.Options {
		label := option
		if v.Selected != nil && *v.Selected == option {
			label = "✅ " + option
		}
		button := tgbotapi.NewInlineKeyboardButtonData(label, buildQuizOptionCallback(v.Position, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}

	next := "Next ▶️"
	if v.IsLast() {
		next = "Submit 📨"
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(next, buildQuizNextCallback(v.Position)),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New quiz", buildQuizStartCallback()),
		),
	)
}
