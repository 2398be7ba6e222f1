// Command strike-report builds the strike report and posts it to the
// configured Telegram chat. Intended to run on a schedule (e.g. weekly).
//
// Usage:
//
//	strike-report
//
// Requires DATABASE_DSN; TELEGRAM_TOKEN, TELEGRAM_CHAT_ID and
// REPORT_TIMEZONE are optional.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/striketrack/backend/internal/adapter/postgres/goal"
	"github.com/striketrack/backend/internal/adapter/postgres/user"
	"github.com/striketrack/backend/internal/config"
	"github.com/striketrack/backend/internal/notify/telegram"
	"github.com/striketrack/backend/internal/tracker"
)

func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	tz := os.Getenv("REPORT_TIMEZONE")
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Fatalf("load timezone %q: %v", tz, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	notifier := telegram.NewClient(config.TelegramConfig{
		BaseURL: envOr("TELEGRAM_BASE_URL", "https://api.telegram.org"),
		Token:   os.Getenv("TELEGRAM_TOKEN"),
		ChatID:  os.Getenv("TELEGRAM_CHAT_ID"),
		Timeout: 10 * time.Second,
	}, logger)

	svc := tracker.NewService(logger, user.New(pool), goal.New(pool), notifier, nil, loc, nil)

	text, err := svc.SendReport(ctx)
	if err != nil {
		log.Fatalf("send strike report: %v", err)
	}

	fmt.Println(text)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
