package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/coach-sommeil-bot/internal/bot"
	"github.com/Spok95/coach-sommeil-bot/internal/config"
	"github.com/Spok95/coach-sommeil-bot/internal/dialog"
	"github.com/Spok95/coach-sommeil-bot/internal/domain/premium"
	"github.com/Spok95/coach-sommeil-bot/internal/domain/users"
	"github.com/Spok95/coach-sommeil-bot/internal/infra/db"
	httpx "github.com/Spok95/coach-sommeil-bot/internal/infra/http"
	"github.com/Spok95/coach-sommeil-bot/internal/infra/logger"
	"github.com/Spok95/coach-sommeil-bot/internal/infra/payments"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	// единственные фатальные условия — отсутствие обязательной конфигурации
	if cfg.Telegram.Token == "" {
		log.Error("telegram token is required")
		return
	}
	if cfg.Postgres.DSN == "" {
		log.Error("postgres DSN is required")
		return
	}

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	usersRepo := users.NewRepo(pool)
	premiumSvc := premium.NewService(usersRepo, log)
	sessions := dialog.NewStore()
	checkout := payments.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.PriceID, cfg.Telegram.Username)
	webhook := payments.NewHandler(log, premiumSvc, cfg.Stripe.WebhookSecret)

	srv := httpx.New(cfg.HTTP.Addr, webhook, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram init failed", "err", err)
		return
	}
	log.Info("telegram authorized", slog.String("bot", api.Self.UserName))

	b := bot.New(api, log, usersRepo, sessions, premiumSvc, checkout, cfg.Telegram.AdminChatID)
	go func() {
		if err := b.Run(ctx, 30); err != nil && ctx.Err() == nil {
			log.Error("bot stopped", "err", err)
		}
	}()
	log.Info("bot started")

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
