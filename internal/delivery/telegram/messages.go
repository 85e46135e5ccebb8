// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quizrunner/internal/service"
)

const (
	msgWelcome        = "Welcome! Send /quiz to start a new quiz."
	msgUseQuiz        = "Send /quiz to start a new quiz."
	msgUnknownCommand = "Unknown command. Available commands:\n\n/quiz start a new quiz\n/help show this message"
	msgLoading        = "Loading..."
	msgStaleQuiz      = "This quiz screen is out of date."
	msgBusy           = "Please wait..."
	msgInternalError  = "Something went wrong. Please try again later."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// formatQuizQuestion formats the current question (MarkdownV2 safe).
func formatQuizQuestion(v service.View) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("Question %d/%d", v.Position+1, v.Total)))
	sb.WriteString("\n\n")
	sb.WriteString(bold("Q. " + v.Question.Text))

	if v.Revealed {
		sb.WriteString("\n\n")
		sb.WriteString(md("Correct answer: "))
		sb.WriteString(bold(v.CorrectAnswer))
	}

	return sb.String()
}

// formatQuizResult formats the result screen (MarkdownV2 safe).
func formatQuizResult(v service.View) string {
	score := fmt.Sprintf("Your score: %d out of %d", v.DisplayScore(), v.Total)
	if !v.Confirmed() {
		score += " (unconfirmed)"
	}

	return fmt.Sprintf("%s\n\n%s", bold("Quiz Completed!"), md(score))
}

func formatLoadError(err error) string {
	return "Error: " + err.Error()
}

// renderView builds the text and keyboard for the session state.
func renderView(v service.View) (string, *tgbotapi.InlineKeyboardMarkup) {
	if v.Complete() {
		kb := buildQuizResultKeyboard()
		return formatQuizResult(v), &kb
	}

	kb := buildQuizQuestionKeyboard(v)
	return formatQuizQuestion(v), &kb
}
