package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abc123denny/cryptocurrency-app/internal/app"
	"github.com/abc123denny/cryptocurrency-app/internal/config"
	"github.com/abc123denny/cryptocurrency-app/internal/infra/db"
	"github.com/abc123denny/cryptocurrency-app/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("config load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(&cfg.Logger)

	// context + signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// postgres нужен только для настроек чатов бота
	var pool *pgxpool.Pool
	if cfg.Postgres.Enabled {
		pool, err = db.NewPool(&cfg.Postgres)
		if err != nil {
			log.Error("postgres init failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// build application
	application, err := app.NewApp(*cfg, log, pool)
	if err != nil {
		log.Error("app init failed", slog.String("error", err.Error()))
		if pool != nil {
			pool.Close()
		}
		os.Exit(1)
	}

	// run application
	if err := application.Run(ctx); err != nil {
		log.Error("application stopped with error", slog.String("error", err.Error()))
	}

	log.Info("cryptocurrency-app stopped")
}
