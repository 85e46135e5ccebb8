package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quizrunner/internal/service"
)

// Bot is the part of *tgbotapi.BotAPI the handler talks to.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type QuizSession interface {
	Start(ctx context.Context) error
	SelectOption(option string) error
	Advance(ctx context.Context) error
	View() service.View
}

// SessionFactory creates a fresh session for every /quiz.
type SessionFactory func() QuizSession
