package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/abc123denny/cryptocurrency-app/internal/config"
	"github.com/abc123denny/cryptocurrency-app/internal/domain"
	"github.com/abc123denny/cryptocurrency-app/internal/infra/coingecko"
	"github.com/abc123denny/cryptocurrency-app/internal/repository/memory"
	repopg "github.com/abc123denny/cryptocurrency-app/internal/repository/postgres"
	"github.com/abc123denny/cryptocurrency-app/internal/scheduler"
	"github.com/abc123denny/cryptocurrency-app/internal/service/coinlist"
	"github.com/abc123denny/cryptocurrency-app/internal/service/screens"
	botpkg "github.com/abc123denny/cryptocurrency-app/internal/transport/bot"
	"github.com/abc123denny/cryptocurrency-app/internal/transport/httptransport"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

type App struct {
	cfg config.Config
	log *slog.Logger

	db   *pgxpool.Pool
	e    *echo.Echo
	serv *http.Server

	client  *coingecko.Client
	screens *screens.Registry
	janitor *scheduler.Scheduler

	bot *botpkg.Bot
}

// NewApp — сборка приложения. db может быть nil: тогда настройки чатов хранятся в памяти.
func NewApp(cfg config.Config, log *slog.Logger, db *pgxpool.Pool) (*App, error) {
	app := &App{cfg: cfg, log: log, db: db}

	app.client = coingecko.NewClient(coingecko.Config{
		BaseURL:   cfg.CoinGecko.BaseURL,
		Timeout:   cfg.CoinGecko.Timeout,
		UserAgent: cfg.CoinGecko.UserAgent,
	})

	defaults := listDefaults(cfg.List)
	app.screens = screens.NewRegistry(app.client, screens.Config{
		Defaults: defaults,
		IdleTTL:  cfg.Screens.IdleTTL,
	}, log)
	app.janitor = scheduler.NewScheduler(app.screens, cfg.Screens.SweepInterval, log)

	e := httptransport.NewEcho(log)
	app.e = e

	sh := httptransport.NewScreensHandler(log, app.screens, app.client, httptransport.Config{
		Timeout:         cfg.Server.RequestTimeout,
		ChartDays:       cfg.CoinGecko.ChartDays,
		ShareTop:        cfg.List.ShareTop,
		DefaultCurrency: defaults.Currency,
	})
	sh.RegisterRoutes(e)

	app.serv = &http.Server{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Handler:      e,
	}

	if cfg.Telegram.Enabled {
		// Если бот включён, отсутствие токена — ошибка конфигурации
		token := strings.TrimSpace(cfg.Telegram.Token)
		if token == "" {
			log.Error("telegram enabled but TELEGRAM_BOT_TOKEN is empty")
			return nil, errors.New("telegram token is empty")
		}

		var prefs botpkg.PrefsStore = memory.NewPrefsRepository()
		if db != nil {
			prefs = repopg.NewPrefsRepository(db)
		}

		botApp, err := botpkg.New(
			botpkg.Config{
				Token:           token,
				LongPollTimeout: cfg.Telegram.LongPollTimeout,
				CommandTimeout:  cfg.Server.RequestTimeout,
				ChartDays:       cfg.CoinGecko.ChartDays,
				ShareTop:        cfg.List.ShareTop,
			},
			app.screens,
			app.client,
			prefs,
			log,
		)
		if err != nil {
			log.Error("telegram init failed", slog.String("error", err.Error()))
			return nil, err
		}
		app.bot = botApp
	}
	log.Info("app initialized",
		slog.Bool("telegram_enabled", cfg.Telegram.Enabled),
		slog.Bool("postgres_attached", db != nil),
		slog.String("http_addr", cfg.Server.Addr),
		slog.String("coingecko", cfg.CoinGecko.BaseURL),
	)
	return app, nil
}

// listDefaults — параметры экрана по умолчанию из конфига; невалидные значения заменяет контроллер.
func listDefaults(cfg config.ListConfig) domain.FetchParams {
	p := coinlist.DefaultParams
	if c, ok := domain.ParseCurrency(cfg.Currency); ok {
		p.Currency = c
	}
	if s, ok := domain.ParseSortBy(cfg.SortBy); ok {
		p.SortBy = s
	}
	if cfg.PageSize > 0 {
		p.PageSize = cfg.PageSize
	}
	return p
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting screen janitor")
	go a.janitor.Start(ctx)

	if a.bot != nil {
		a.log.Info("starting bot")
		a.bot.Start()
	}

	a.log.Info("starting server", slog.String("addr", a.cfg.Server.Addr))
	errCh := make(chan error, 1)
	go func() {
		if err := a.e.StartServer(a.serv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", slog.String("error", err.Error()))
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}
	if err := a.Shutdown(context.Background()); err != nil {
		return err
	}
	return runErr
}

func (a *App) Shutdown(ctx context.Context) error {
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if a.e != nil {
		if err := a.e.Shutdown(shCtx); err != nil {
			a.log.Error("http shutdown error", slog.String("error", err.Error()))
		}
	}

	if a.bot != nil {
		a.bot.Stop()
	}

	if a.db != nil {
		a.db.Close()
	}

	a.log.Info("application stopped")
	return nil
}
