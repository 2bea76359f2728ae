package coindetail

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/abc123denny/cryptocurrency-app/internal/domain"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -destination=mocks/coin_client.go -package=mocks . CoinClient

// CoinClient — источник метаданных монеты и графика цены.
type CoinClient interface {
	CoinDetail(ctx context.Context, coinID string) (domain.CoinDetail, error)
	MarketChart(ctx context.Context, coinID string, currency domain.Currency, days int) ([]domain.PricePoint, error)
}

type Config struct {
	ChartDays int
}

// Controller — экран деталей монеты. Каждая секция остаётся nil, пока не загружена.
type Controller struct {
	client CoinClient
	cfg    Config
	logger *slog.Logger

	once sync.Once

	mu     sync.Mutex
	route  domain.Route
	detail *domain.CoinDetail
	chart  []domain.PricePoint
}

func NewController(client CoinClient, cfg Config, logger *slog.Logger) *Controller {
	if cfg.ChartDays <= 0 {
		cfg.ChartDays = 1
	}
	return &Controller{client: client, cfg: cfg, logger: logger}
}

var descriptionBreaks = strings.NewReplacer("\r\n", "<br />", "\n", "<br />")

// LoadDetail — загружает метаданные и график параллельно. Вызывается один раз на экран,
// повторные вызовы ничего не делают. Ошибки логируются, секция остаётся незагруженной.
func (c *Controller) LoadDetail(ctx context.Context, route domain.Route) {
	c.once.Do(func() {
		c.mu.Lock()
		c.route = route
		c.mu.Unlock()

		var g errgroup.Group

		g.Go(func() error {
			d, err := c.client.CoinDetail(ctx, route.CoinID)
			if err != nil {
				c.logger.Error("get coin detail failed",
					slog.String("coin_id", route.CoinID),
					slog.String("error", err.Error()),
				)
				return nil
			}
			d.Description = descriptionBreaks.Replace(d.Description)

			c.mu.Lock()
			c.detail = &d
			c.mu.Unlock()
			return nil
		})

		g.Go(func() error {
			prices, err := c.client.MarketChart(ctx, route.CoinID, route.Currency, c.cfg.ChartDays)
			if err != nil {
				c.logger.Error("get coin market chart failed",
					slog.String("coin_id", route.CoinID),
					slog.String("currency", string(route.Currency)),
					slog.String("error", err.Error()),
				)
				return nil
			}
			if prices == nil {
				prices = []domain.PricePoint{}
			}

			c.mu.Lock()
			c.chart = prices
			c.mu.Unlock()
			return nil
		})

		_ = g.Wait()
		c.logger.Debug("coin detail loaded",
			slog.String("coin_id", route.CoinID),
			slog.Bool("detail", c.Detail() != nil),
			slog.Bool("chart", c.Chart() != nil),
		)
	})
}

// Detail — метаданные или nil, если ещё не загружены.
func (c *Controller) Detail() *domain.CoinDetail {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return nil
	}
	d := *c.detail
	return &d
}

// Chart — точки графика или nil, если ещё не загружены.
func (c *Controller) Chart() []domain.PricePoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chart == nil {
		return nil
	}
	out := make([]domain.PricePoint, len(c.chart))
	copy(out, c.chart)
	return out
}

// View — готовые к отрисовке секции экрана.
func (c *Controller) View() View {
	c.mu.Lock()
	route := c.route
	c.mu.Unlock()

	return buildView(route, c.Detail(), c.Chart())
}
