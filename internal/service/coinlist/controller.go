package coinlist

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/abc123denny/cryptocurrency-app/internal/domain"
)

//go:generate mockgen -destination=mocks/markets_client.go -package=mocks . MarketsClient

// MarketsClient — источник страниц списка монет (CoinGecko /coins/markets).
type MarketsClient interface {
	CoinMarkets(ctx context.Context, p domain.FetchParams) ([]domain.CoinSummary, error)
}

var ErrInvalidParams = errors.New("invalid fetch params")

// DefaultParams — параметры, с которыми монтируется экран списка
var DefaultParams = domain.FetchParams{
	Currency: domain.CurrencyUSD,
	SortBy:   domain.SortMarketCapDesc,
	PageSize: 25,
	Page:     1,
}

type Config struct {
	Defaults domain.FetchParams
}

// Controller — состояние одного экрана списка: параметры, накопленные монеты, статус загрузки.
// Одновременно выполняется не больше одного запроса; ответ применяется, только если
// его поколение (generation) всё ещё текущее.
type Controller struct {
	client   MarketsClient
	defaults domain.FetchParams
	logger   *slog.Logger

	mu     sync.Mutex
	items  []domain.CoinSummary
	status domain.Status
	params domain.FetchParams
	gen    uint64
	cancel context.CancelFunc
}

// request — что именно запрашиваем и в какой статус переходим на время запроса
type request struct {
	params    domain.FetchParams
	status    domain.Status
	supersede bool // смена фильтра: прерывает запрос в полёте
}

// NewController — конструктор контроллера списка. Невалидные значения по умолчанию заменяются DefaultParams.
func NewController(client MarketsClient, cfg Config, logger *slog.Logger) *Controller {
	d := cfg.Defaults
	if !d.Currency.Valid() {
		d.Currency = DefaultParams.Currency
	}
	if !d.SortBy.Valid() {
		d.SortBy = DefaultParams.SortBy
	}
	if d.PageSize <= 0 {
		d.PageSize = DefaultParams.PageSize
	}
	d.Page = 1

	return &Controller{
		client:   client,
		defaults: d,
		logger:   logger,
		items:    []domain.CoinSummary{},
		status:   domain.StatusIdle,
		params:   d,
	}
}

// Mount — первая загрузка страницы 1 при открытии экрана.
func (c *Controller) Mount(ctx context.Context) {
	c.fetch(ctx, func() (request, bool) {
		p := c.params
		p.Page = 1
		return request{params: p, status: domain.StatusFetchingFirstPage}, true
	})
}

// UpdateParams — применить новые параметры и запросить страницу.
// При смене валюты или сортировки страница должна быть 1, иначе 1 или текущая+1.
func (c *Controller) UpdateParams(ctx context.Context, p domain.FetchParams) error {
	var verr error
	c.fetch(ctx, func() (request, bool) {
		if err := c.validate(p); err != nil {
			verr = err
			return request{}, false
		}
		status := domain.StatusFetchingNextPage
		if p.Page == 1 {
			status = domain.StatusFetchingFirstPage
		}
		return request{params: p, status: status, supersede: !p.SameFilter(c.params)}, true
	})
	return verr
}

// ChangeCurrency — смена валюты. Повторный выбор той же валюты ничего не делает.
func (c *Controller) ChangeCurrency(ctx context.Context, currency domain.Currency) error {
	if !currency.Valid() {
		return ErrInvalidParams
	}
	c.fetch(ctx, func() (request, bool) {
		if currency == c.params.Currency {
			return request{}, false
		}
		p := c.params
		p.Currency = currency
		p.Page = 1
		return request{params: p, status: domain.StatusFetchingFirstPage, supersede: true}, true
	})
	return nil
}

// ChangeSortBy — смена сортировки. Повторный выбор той же сортировки ничего не делает.
func (c *Controller) ChangeSortBy(ctx context.Context, sortBy domain.SortBy) error {
	if !sortBy.Valid() {
		return ErrInvalidParams
	}
	c.fetch(ctx, func() (request, bool) {
		if sortBy == c.params.SortBy {
			return request{}, false
		}
		p := c.params
		p.SortBy = sortBy
		p.Page = 1
		return request{params: p, status: domain.StatusFetchingFirstPage, supersede: true}, true
	})
	return nil
}

// LoadMore — следующая страница (бесконечная прокрутка).
func (c *Controller) LoadMore(ctx context.Context) {
	c.fetch(ctx, func() (request, bool) {
		if c.status.IsFetching() || c.status == domain.StatusFullyLoaded {
			c.logger.Debug("load more skipped",
				slog.String("status", c.status.String()),
				slog.Int("page", c.params.Page),
			)
			return request{}, false
		}
		p := c.params
		p.Page++
		return request{params: p, status: domain.StatusFetchingNextPage}, true
	})
}

// Refresh — pull-to-refresh: параметры по умолчанию с текущими валютой и сортировкой, страница 1.
func (c *Controller) Refresh(ctx context.Context) {
	c.fetch(ctx, func() (request, bool) {
		p := c.defaults
		p.Currency = c.params.Currency
		p.SortBy = c.params.SortBy
		p.Page = 1
		return request{params: p, status: domain.StatusRefreshing}, true
	})
}

// State — снимок состояния для отрисовки.
func (c *Controller) State() domain.ListState {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]domain.CoinSummary, len(c.items))
	copy(items, c.items)
	return domain.ListState{
		Items:      items,
		Status:     c.status,
		Params:     c.params,
		Generation: c.gen,
	}
}

// Item — строка списка по id (нажатие на строку).
func (c *Controller) Item(id string) (domain.CoinSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.CoinSummary{}, false
}

// Close — экран закрыт: прерываем запрос в полёте, его ответ будет отброшен.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
	if c.status.IsFetching() {
		c.status = domain.StatusIdle
	}
}

func (c *Controller) validate(p domain.FetchParams) error {
	if !p.Currency.Valid() || !p.SortBy.Valid() || p.PageSize <= 0 || p.Page < 1 {
		return ErrInvalidParams
	}
	if !p.SameFilter(c.params) {
		if p.Page != 1 {
			return ErrInvalidParams
		}
		return nil
	}
	if p.Page != 1 && p.Page != c.params.Page+1 {
		return ErrInvalidParams
	}
	return nil
}

// fetch — единственная точка выхода в сеть. plan вызывается под мьютексом и решает,
// нужен ли запрос; сам запрос выполняется без блокировки.
func (c *Controller) fetch(ctx context.Context, plan func() (request, bool)) {
	c.mu.Lock()
	req, ok := plan()
	if !ok {
		c.mu.Unlock()
		return
	}
	if c.status.IsFetching() && !req.supersede {
		c.logger.Debug("fetch skipped: already fetching",
			slog.String("status", c.status.String()),
			slog.Int("page", req.params.Page),
		)
		c.mu.Unlock()
		return
	}
	if req.params.Page > 1 && c.status == domain.StatusFullyLoaded {
		c.logger.Debug("fetch skipped: list fully loaded", slog.Int("page", req.params.Page))
		c.mu.Unlock()
		return
	}
	if c.cancel != nil {
		// смена фильтра: старый ответ больше не нужен
		c.cancel()
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	c.gen++
	gen := c.gen
	prevPage := c.params.Page
	c.params = req.params
	c.status = req.status
	c.cancel = cancel
	c.mu.Unlock()

	c.logger.Debug("get coin data",
		slog.String("currency", string(req.params.Currency)),
		slog.String("sort_by", string(req.params.SortBy)),
		slog.Int("page", req.params.Page),
		slog.Uint64("generation", gen),
	)

	items, err := c.client.CoinMarkets(fetchCtx, req.params)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		c.logger.Debug("stale response dropped",
			slog.Uint64("generation", gen),
			slog.Uint64("current", c.gen),
			slog.Int("page", req.params.Page),
		)
		return
	}

	c.cancel = nil
	// статус загрузки снимается в любом исходе
	c.status = domain.StatusIdle

	if err != nil {
		c.logger.Error("get coin data failed",
			slog.Int("page", req.params.Page),
			slog.String("error", err.Error()),
		)
		if req.params.Page > 1 {
			// страница не загрузилась, следующий LoadMore запросит её снова
			c.params.Page = prevPage
		}
		return
	}

	if len(items) == 0 {
		c.status = domain.StatusFullyLoaded
		c.logger.Info("coin list fully loaded", slog.Int("page", req.params.Page), slog.Int("total", len(c.items)))
		return
	}

	if req.params.Page == 1 {
		c.items = mergeUnique(nil, items)
	} else {
		c.items = mergeUnique(c.items, items)
	}
	c.logger.Info("coin data downloaded",
		slog.Int("page", req.params.Page),
		slog.Int("size", len(items)),
		slog.Int("total", len(c.items)),
	)
}
