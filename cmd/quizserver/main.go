package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/quizrunner/internal/config"
	"github.com/aliskhannn/quizrunner/internal/delivery/httpapi"
	"github.com/aliskhannn/quizrunner/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/quizrunner/internal/infra/postgres/repository"
	"github.com/aliskhannn/quizrunner/internal/logger"
	"github.com/aliskhannn/quizrunner/internal/metrics"
	"github.com/aliskhannn/quizrunner/internal/repository"
	"github.com/aliskhannn/quizrunner/internal/storage"
)

const shutdownTimeout = 10 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bank, err := repository.NewQuestionBank(cfg.Server.QuestionsPath)
	if err != nil {
		lg.Fatal("failed to load question bank",
			zap.String("path", cfg.Server.QuestionsPath),
			zap.Error(err),
		)
	}

	store, closeStore, err := newSubmissionStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to init submission store", zap.Error(err))
	}
	defer closeStore()

	handler := httpapi.NewHandler(
		lg.Named("http"),
		bank,
		store,
		metrics.New(),
		cfg.Server.CORSOrigins,
		uuid.NewString,
	)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lg.Info("quiz server listening",
			zap.String("addr", srv.Addr),
			zap.Int("questions", bank.Len()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutting down quiz server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		lg.Error("quiz server stopped with error", zap.Error(err))
	}
}

// newSubmissionStore uses PostgreSQL when a database URL is configured and an
// in-memory store otherwise.
func newSubmissionStore(ctx context.Context, cfg *config.Config, lg *zap.Logger) (httpapi.SubmissionStore, func(), error) {
	if !cfg.DB.Enabled() {
		lg.Info("database not configured, keeping submissions in memory")
		return storage.NewSubmissionStorage(), func() {}, nil
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	lg.Info("submissions stored in postgres")
	return pgrepo.NewSubmissionRepository(pool, postgres.NewTransactor(pool)), pool.Close, nil
}
