package screens

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/abc123denny/cryptocurrency-app/internal/domain"
	errs "github.com/abc123denny/cryptocurrency-app/internal/errors"
	"github.com/abc123denny/cryptocurrency-app/internal/service/coinlist"
	"github.com/google/uuid"
)

type Config struct {
	Defaults domain.FetchParams
	IdleTTL  time.Duration
}

// Registry — открытые экраны списка. У каждого экрана свой контроллер и своё состояние,
// общего изменяемого состояния между экранами нет.
type Registry struct {
	client coinlist.MarketsClient
	cfg    Config
	clock  Clock
	logger *slog.Logger

	mu      sync.Mutex
	screens map[string]*screen
}

type screen struct {
	list     *coinlist.Controller
	lastSeen time.Time
}

func NewRegistry(client coinlist.MarketsClient, cfg Config, logger *slog.Logger) *Registry {
	return NewRegistryWithClock(client, cfg, NewRealClock(), logger)
}

// NewRegistryWithClock - Конструктор для тестов: позволяет подставить фиксированные "часы".
func NewRegistryWithClock(client coinlist.MarketsClient, cfg Config, clk Clock, logger *slog.Logger) *Registry {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	return &Registry{
		client:  client,
		cfg:     cfg,
		clock:   clk,
		logger:  logger,
		screens: make(map[string]*screen),
	}
}

// Mount — открыть экран списка и загрузить первую страницу. Пустой id — новый uuid.
// Экран с тем же id закрывается и заменяется новым.
func (r *Registry) Mount(ctx context.Context, id string, currency domain.Currency, sortBy domain.SortBy) (string, *coinlist.Controller) {
	if id == "" {
		id = uuid.NewString()
	}

	defaults := r.cfg.Defaults
	if currency.Valid() {
		defaults.Currency = currency
	}
	if sortBy.Valid() {
		defaults.SortBy = sortBy
	}
	list := coinlist.NewController(r.client, coinlist.Config{Defaults: defaults}, r.logger.With(slog.String("screen", id)))

	r.mu.Lock()
	if old, ok := r.screens[id]; ok {
		old.list.Close()
	}
	r.screens[id] = &screen{list: list, lastSeen: r.clock.Now()}
	total := len(r.screens)
	r.mu.Unlock()

	r.logger.Info("screen mounted", slog.String("screen", id), slog.Int("screens", total))
	list.Mount(ctx)
	return id, list
}

// Get — контроллер открытого экрана; обновляет время последней активности.
func (r *Registry) Get(id string) (*coinlist.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.screens[id]
	if !ok {
		return nil, errs.ErrScreenNotFound
	}
	s.lastSeen = r.clock.Now()
	return s.list, nil
}

// Unmount — закрыть экран: состояние уничтожается, запрос в полёте прерывается.
func (r *Registry) Unmount(id string) error {
	r.mu.Lock()
	s, ok := r.screens[id]
	if ok {
		delete(r.screens, id)
	}
	r.mu.Unlock()

	if !ok {
		return errs.ErrScreenNotFound
	}
	s.list.Close()
	r.logger.Info("screen unmounted", slog.String("screen", id))
	return nil
}

// SweepIdle — закрывает экраны без активности дольше IdleTTL. Возвращает число закрытых.
func (r *Registry) SweepIdle() int {
	deadline := r.clock.Now().Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	var idle []*screen
	for id, s := range r.screens {
		if s.lastSeen.Before(deadline) {
			idle = append(idle, s)
			delete(r.screens, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.list.Close()
	}
	if len(idle) > 0 {
		r.logger.Info("idle screens unmounted", slog.Int("count", len(idle)))
	}
	return len(idle)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.screens)
}
