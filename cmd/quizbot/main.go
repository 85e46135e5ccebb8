package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizrunner/internal/config"
	"github.com/aliskhannn/quizrunner/internal/delivery/telegram"
	"github.com/aliskhannn/quizrunner/internal/gateway"
	"github.com/aliskhannn/quizrunner/internal/logger"
	"github.com/aliskhannn/quizrunner/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	token, err := cfg.Telegram.BotToken()
	if err != nil {
		lg.Fatal("telegram token is not set", zap.Error(err))
	}
	if cfg.Telegram.ChatID == 0 {
		lg.Fatal("telegram chat id is not set", zap.Error(config.ErrMissingEnvironmentVariables))
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		lg.Fatal("failed to create telegram bot", zap.Error(err))
	}
	bot.Debug = cfg.Env != "production"

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "quiz",
			Description: "Start a new quiz",
		},
		{
			Command:     "help",
			Description: "Help",
		},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scoring, err := service.ParseScoringMode(cfg.Quiz.Scoring)
	if err != nil {
		lg.Fatal("invalid quiz config", zap.Error(err))
	}

	client := gateway.New(gateway.Config{
		BaseURL: cfg.Gateway.BaseURL,
		Timeout: cfg.Gateway.Timeout,
	}, lg.Named("gateway"))

	newSession := func() telegram.QuizSession {
		return service.NewSession(client, lg.Named("session"), service.WithScoring(scoring))
	}

	handler := telegram.NewHandler(bot, lg.Named("telegram"), cfg.Telegram.ChatID, newSession)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("telegram handler failed", zap.Error(err))
	}

	bot.StopReceivingUpdates()
	lg.Info("shutdown signal received")
}
