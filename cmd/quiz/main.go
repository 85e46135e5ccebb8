package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizrunner/internal/config"
	"github.com/aliskhannn/quizrunner/internal/delivery/cli"
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

	scoring, err := service.ParseScoringMode(cfg.Quiz.Scoring)
	if err != nil {
		lg.Fatal("invalid quiz config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := gateway.New(gateway.Config{
		BaseURL: cfg.Gateway.BaseURL,
		Timeout: cfg.Gateway.Timeout,
	}, lg.Named("gateway"))

	session := service.NewSession(client, lg.Named("session"), service.WithScoring(scoring))

	runner := cli.NewRunner(session, os.Stdin, os.Stdout, lg)
	if err := runner.Run(ctx); err != nil {
		if errors.Is(err, cli.ErrAborted) || errors.Is(err, context.Canceled) {
			lg.Info("quiz aborted")
			return
		}
		lg.Fatal("quiz failed", zap.Error(err))
	}
}
