// Package app wires configuration, logging, persistence, the tracker service
// and the HTTP server into a runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/striketrack/backend/internal/adapter/postgres"
	"github.com/striketrack/backend/internal/adapter/postgres/goal"
	"github.com/striketrack/backend/internal/adapter/postgres/user"
	"github.com/striketrack/backend/internal/auth"
	"github.com/striketrack/backend/internal/config"
	"github.com/striketrack/backend/internal/notify/telegram"
	"github.com/striketrack/backend/internal/tracker"
	"github.com/striketrack/backend/internal/transport/middleware"
)

// Run is the application entry point. It loads configuration, initializes
// the logger and the database, wires the tracker service and serves HTTP
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	loc, err := cfg.Report.Location()
	if err != nil {
		return fmt.Errorf("resolve report timezone: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	notifier := telegram.NewClient(cfg.Telegram, logger)
	if !cfg.Telegram.NotificationsEnabled() {
		logger.Warn("telegram notifications disabled: no token configured")
	}

	svc := tracker.NewService(
		logger,
		user.New(pool),
		goal.New(pool),
		notifier,
		postgres.NewTxManager(pool),
		loc,
		nil,
	)

	authMgr := auth.NewManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.JWTIssuer,
		cfg.Auth.TokenTTL,
		cfg.Auth.AdminPasswordHash,
	)

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      newRouter(cfg, logger, pool, svc, authMgr, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("http server listening", slog.String("addr", srv.Addr))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
