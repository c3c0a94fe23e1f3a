package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"punchline/internal/config"
	"punchline/internal/db"
	"punchline/internal/game"
	"punchline/internal/logging"
	"punchline/internal/server"
	"punchline/internal/store"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn("failed to load .env", "err", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, "punchline")
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	repo, opts, err := openStorage(cfg, logger)
	if err != nil {
		logger.Fatal("storage setup failed", "err", err)
	}
	srv := server.New(repo, cfg, append(opts, server.WithLogger(logger))...)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("punchline server listening", "addr", cfg.Addr())
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if err := group.Wait(); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}

// openStorage uses Postgres when DATABASE_URL is set and keeps games in
// memory otherwise.
func openStorage(cfg config.Config, logger *log.Logger) (store.Repository, []server.Option, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL is not set; games are kept in memory")
		return store.NewMemoryRepository(), nil, nil
	}
	conn, err := db.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(conn); err != nil {
		return nil, nil, err
	}
	logger.Info("connected to database")
	deck := func(ctx context.Context) (game.Deck, error) {
		return db.LoadDeck(ctx, conn)
	}
	return store.NewGormRepository(conn), []server.Option{server.WithDeck(deck)}, nil
}
