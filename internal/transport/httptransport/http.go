package httptransport

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/abc123denny/cryptocurrency-app/internal/domain"
	errs "github.com/abc123denny/cryptocurrency-app/internal/errors"
	"github.com/abc123denny/cryptocurrency-app/internal/ports/errcode"
	"github.com/abc123denny/cryptocurrency-app/internal/service/coindetail"
	"github.com/abc123denny/cryptocurrency-app/internal/service/coinlist"
	"github.com/abc123denny/cryptocurrency-app/internal/service/share"
	"github.com/labstack/echo/v4"
)

// ScreenRegistry — открытые экраны списка.
type ScreenRegistry interface {
	Mount(ctx context.Context, id string, currency domain.Currency, sortBy domain.SortBy) (string, *coinlist.Controller)
	Get(id string) (*coinlist.Controller, error)
	Unmount(id string) error
}

type Config struct {
	Timeout         time.Duration
	ChartDays       int
	ShareTop        int
	DefaultCurrency domain.Currency
}

// ScreensHandler — HTTP‑handler экранов списка и деталей монеты.
type ScreensHandler struct {
	logger  *slog.Logger
	screens ScreenRegistry
	coins   coindetail.CoinClient
	cfg     Config
}

func NewScreensHandler(logger *slog.Logger, screens ScreenRegistry, coins coindetail.CoinClient, cfg Config) *ScreensHandler {
	if logger == nil {
		log.Fatal("nil logger")
	}
	if screens == nil {
		log.Fatal("nil screen registry")
	}
	if coins == nil {
		log.Fatal("nil coin client")
	}
	// Задаём таймаут по умолчанию, если он не задан
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Second * 10
	}
	if !cfg.DefaultCurrency.Valid() {
		cfg.DefaultCurrency = domain.CurrencyUSD
	}
	return &ScreensHandler{
		logger:  logger,
		screens: screens,
		coins:   coins,
		cfg:     cfg,
	}
}

type router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

func (h *ScreensHandler) RegisterRoutes(r router) {
	r.POST("/screens", h.MountScreen)
	r.GET("/screens/:id", h.GetScreen)
	r.DELETE("/screens/:id", h.UnmountScreen)
	r.POST("/screens/:id/params", h.UpdateParams)
	r.POST("/screens/:id/currency", h.ChangeCurrency)
	r.POST("/screens/:id/sort", h.ChangeSortBy)
	r.POST("/screens/:id/more", h.LoadMore)
	r.POST("/screens/:id/refresh", h.Refresh)
	r.GET("/screens/:id/share", h.Share)
	r.GET("/screens/:id/coins/:coin_id/route", h.Route)
	r.GET("/coins/:coin_id", h.CoinDetail)
}

// screenResponse — DTO состояния экрана списка.
type screenResponse struct {
	ID            string           `json:"id"`
	State         domain.ListState `json:"state"`
	IsFetching    bool             `json:"is_fetching"`
	IsRefreshing  bool             `json:"is_refreshing"`
	IsFullyLoaded bool             `json:"is_fully_loaded"`
}

func makeScreen(id string, st domain.ListState) screenResponse {
	return screenResponse{
		ID:            id,
		State:         st,
		IsFetching:    st.IsFetching(),
		IsRefreshing:  st.IsRefreshing(),
		IsFullyLoaded: st.IsFullyLoaded(),
	}
}

type mountRequest struct {
	Currency string `json:"currency"`
	SortBy   string `json:"sort_by"`
}

type currencyRequest struct {
	Currency string `json:"currency"`
}

type sortRequest struct {
	SortBy string `json:"sort_by"`
}

func (h *ScreensHandler) MountScreen(c echo.Context) error {
	var req mountRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_body")
	}

	var currency domain.Currency
	if strings.TrimSpace(req.Currency) != "" {
		v, ok := domain.ParseCurrency(req.Currency)
		if !ok {
			return badRequest(c, "unsupported_currency")
		}
		currency = v
	}
	var sortBy domain.SortBy
	if strings.TrimSpace(req.SortBy) != "" {
		v, ok := domain.ParseSortBy(req.SortBy)
		if !ok {
			return badRequest(c, "unsupported_sort_by")
		}
		sortBy = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.cfg.Timeout)
	defer cancel()

	id, list := h.screens.Mount(ctx, "", currency, sortBy)
	return c.JSON(http.StatusCreated, makeScreen(id, list.State()))
}

func (h *ScreensHandler) GetScreen(c echo.Context) error {
	id := c.Param("id")
	list, err := h.screens.Get(id)
	if err != nil {
		return h.fail(c, "GetScreen", err)
	}
	return c.JSON(http.StatusOK, makeScreen(id, list.State()))
}

func (h *ScreensHandler) UnmountScreen(c echo.Context) error {
	if err := h.screens.Unmount(c.Param("id")); err != nil {
		return h.fail(c, "UnmountScreen", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ScreensHandler) UpdateParams(c echo.Context) error {
	id := c.Param("id")
	list, err := h.screens.Get(id)
	if err != nil {
		return h.fail(c, "UpdateParams", err)
	}

	var p domain.FetchParams
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid_body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.cfg.Timeout)
	defer cancel()

	if err := list.UpdateParams(ctx, p); err != nil {
		return h.fail(c, "UpdateParams", err)
	}
	return c.JSON(http.StatusOK, makeScreen(id, list.State()))
}

func (h *ScreensHandler) ChangeCurrency(c echo.Context) error {
	id := c.Param("id")
	list, err := h.screens.Get(id)
	if err != nil {
		return h.fail(c, "ChangeCurrency", err)
	}

	var req currencyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_body")
	}
	currency, ok := domain.ParseCurrency(req.Currency)
	if !ok {
		return badRequest(c, "unsupported_currency")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.cfg.Timeout)
	defer cancel()

	if err := list.ChangeCurrency(ctx, currency); err != nil {
		return h.fail(c, "ChangeCurrency", err)
	}
	return c.JSON(http.StatusOK, makeScreen(id, list.State()))
}

func (h *ScreensHandler) ChangeSortBy(c echo.Context) error {
	id := c.Param("id")
	list, err := h.screens.Get(id)
	if err != nil {
		return h.fail(c, "ChangeSortBy", err)
	}

	var req sortRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid_body")
	}
	sortBy, ok := domain.ParseSortBy(req.SortBy)
	if !ok {
		return badRequest(c, "unsupported_sort_by")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.cfg.Timeout)
	defer cancel()

	if err := list.ChangeSortBy(ctx, sortBy); err != nil {
		return h.fail(c, "ChangeSortBy", err)
	}
	return c.JSON(http.StatusOK, makeScreen(id, list.State()))
}

func (h *ScreensHandler) LoadMore(c echo.Context) error {
	id := c.Param("id")
	list, err := h.screens.Get(id)
	if err != nil {
		return h.fail(c, "LoadMore", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.cfg.Timeout)
	defer cancel()

	list.LoadMore(ctx)
	return c.JSON(http.StatusOK, makeScreen(id, list.State()))
}

func (h *ScreensHandler) Refresh(c echo.Context) error {
	id := c.Param("id")
	list, err := h.screens.Get(id)
	if err != nil {
		return h.fail(c, "Refresh", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.cfg.Timeout)
	defer cancel()

	list.Refresh(ctx)
	return c.JSON(http.StatusOK, makeScreen(id, list.State()))
}

func (h *ScreensHandler) Share(c echo.Context) error {
	list, err := h.screens.Get(c.Param("id"))
	if err != nil {
		return h.fail(c, "Share", err)
	}
	st := list.State()
	return c.JSON(http.StatusOK, share.Format(st.Items, st.Params.Currency, h.cfg.ShareTop))
}

// Route — переход на экран деталей по строке списка.
func (h *ScreensHandler) Route(c echo.Context) error {
	list, err := h.screens.Get(c.Param("id"))
	if err != nil {
		return h.fail(c, "Route", err)
	}
	coinID := c.Param("coin_id")
	item, ok := list.Item(coinID)
	if !ok {
		return h.fail(c, "Route", errs.ErrCoinNotFound)
	}
	return c.JSON(http.StatusOK, domain.RouteFor(item, list.State().Params.Currency))
}

// CoinDetail — экран деталей: каждый запрос открывает экран заново.
// Незагруженные секции в ответ не попадают.
func (h *ScreensHandler) CoinDetail(c echo.Context) error {
	coinID := strings.ToLower(strings.TrimSpace(c.Param("coin_id")))
	if coinID == "" {
		return badRequest(c, "coin_id_required")
	}
	if !domain.ValidCoinID(coinID) {
		return badRequest(c, "invalid_coin_id")
	}

	currency := h.cfg.DefaultCurrency
	if raw := c.QueryParam("currency"); raw != "" {
		v, ok := domain.ParseCurrency(raw)
		if !ok {
			return badRequest(c, "unsupported_currency")
		}
		currency = v
	}
	route := domain.Route{
		CoinID:     coinID,
		CoinName:   c.QueryParam("name"),
		CoinSymbol: c.QueryParam("symbol"),
		Currency:   currency,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.cfg.Timeout)
	defer cancel()

	detail := coindetail.NewController(h.coins, coindetail.Config{ChartDays: h.cfg.ChartDays},
		h.logger.With(slog.String("coin_id", coinID)))
	detail.LoadDetail(ctx, route)
	return c.JSON(http.StatusOK, detail.View())
}

func (h *ScreensHandler) fail(c echo.Context, op string, err error) error {
	switch FromServiceError(err) {
	case errcode.ScreenNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "screen_not_found",
			"id":    c.Param("id"),
		})
	case errcode.CoinNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{
			"error":   "coin_not_found",
			"coin_id": c.Param("coin_id"),
		})
	case errcode.BadRequest:
		return badRequest(c, "invalid_params")
	default:
		h.logger.Error("request failed",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "internal_server_error",
		})
	}
}

func badRequest(c echo.Context, reason string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error": reason,
	})
}
