package httptransport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/abc123denny/cryptocurrency-app/internal/domain"
	"github.com/abc123denny/cryptocurrency-app/internal/service/coinlist"
	listmocks "github.com/abc123denny/cryptocurrency-app/internal/service/coinlist/mocks"
	detailmocks "github.com/abc123denny/cryptocurrency-app/internal/service/coindetail/mocks"
	"github.com/abc123denny/cryptocurrency-app/internal/service/screens"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type screenBody struct {
	ID    string `json:"id"`
	State struct {
		Items  []domain.CoinSummary `json:"items"`
		Status string               `json:"status"`
		Params domain.FetchParams   `json:"params"`
	} `json:"state"`
	IsFetching    bool `json:"is_fetching"`
	IsFullyLoaded bool `json:"is_fully_loaded"`
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func coin(id, name, price string) domain.CoinSummary {
	return domain.CoinSummary{ID: id, Name: name, Symbol: id[:3], CurrentPrice: decimal.RequireFromString(price)}
}

func page(currency domain.Currency, sortBy domain.SortBy, n int) domain.FetchParams {
	return domain.FetchParams{Currency: currency, SortBy: sortBy, PageSize: 25, Page: n}
}

type testEnv struct {
	e       *echo.Echo
	markets *listmocks.MockMarketsClient
	coins   *detailmocks.MockCoinClient
}

func setup(t *testing.T) testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	markets := listmocks.NewMockMarketsClient(ctrl)
	coins := detailmocks.NewMockCoinClient(ctrl)
	logger := setupTestLogger()

	reg := screens.NewRegistry(markets, screens.Config{Defaults: coinlist.DefaultParams, IdleTTL: time.Hour}, logger)
	h := NewScreensHandler(logger, reg, coins, Config{Timeout: time.Second, ChartDays: 1, ShareTop: 10})

	e := NewEcho(logger)
	h.RegisterRoutes(e)
	return testEnv{e: e, markets: markets, coins: coins}
}

func (env testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decodeScreen(t *testing.T, rec *httptest.ResponseRecorder) screenBody {
	t.Helper()
	var out screenBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestScreenLifecycle(t *testing.T) {
	env := setup(t)

	usd := page(domain.CurrencyUSD, domain.SortMarketCapDesc, 1)
	twd := page(domain.CurrencyTWD, domain.SortMarketCapDesc, 1)
	gomock.InOrder(
		env.markets.EXPECT().CoinMarkets(gomock.Any(), usd).
			Return([]domain.CoinSummary{coin("bitcoin", "Bitcoin", "65000"), coin("ethereum", "Ethereum", "3000")}, nil),
		env.markets.EXPECT().CoinMarkets(gomock.Any(), twd).
			Return([]domain.CoinSummary{coin("bitcoin", "Bitcoin", "2100000")}, nil),
		env.markets.EXPECT().CoinMarkets(gomock.Any(), page(domain.CurrencyTWD, domain.SortMarketCapDesc, 2)).
			Return([]domain.CoinSummary{}, nil),
	)

	rec := env.do(t, http.MethodPost, "/screens", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	mounted := decodeScreen(t, rec)
	require.NotEmpty(t, mounted.ID)
	assert.Len(t, mounted.State.Items, 2)
	assert.Equal(t, "idle", mounted.State.Status)

	base := "/screens/" + mounted.ID

	rec = env.do(t, http.MethodGet, base+"/coins/ethereum/route", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var route domain.Route
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &route))
	assert.Equal(t, domain.Route{CoinID: "ethereum", CoinName: "Ethereum", CoinSymbol: "eth", Currency: domain.CurrencyUSD}, route)

	rec = env.do(t, http.MethodPost, base+"/currency", `{"currency":"TWD"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	changed := decodeScreen(t, rec)
	assert.Equal(t, twd, changed.State.Params)
	require.Len(t, changed.State.Items, 1)
	assert.Equal(t, "2100000", changed.State.Items[0].CurrentPrice.String())

	rec = env.do(t, http.MethodPost, base+"/more", "")
	require.Equal(t, http.StatusOK, rec.Code)
	more := decodeScreen(t, rec)
	assert.True(t, more.IsFullyLoaded)
	assert.Len(t, more.State.Items, 1)

	// список загружен полностью: повторный LoadMore в сеть не ходит
	rec = env.do(t, http.MethodPost, base+"/more", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, base+"/share", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var msg struct {
		Text string `json:"text"`
		URL  string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "Today's top 10 cryptocurrencies (TWD):\n1. Bitcoin 2100000\n", msg.Text)
	assert.True(t, strings.HasPrefix(msg.URL, "https://twitter.com/intent/tweet?text="))

	rec = env.do(t, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "screen_not_found")
}

func TestMountScreen_WithFilter(t *testing.T) {
	env := setup(t)
	env.markets.EXPECT().CoinMarkets(gomock.Any(), page(domain.CurrencyTWD, domain.SortVolumeDesc, 1)).
		Return([]domain.CoinSummary{coin("tether", "Tether", "32")}, nil)

	rec := env.do(t, http.MethodPost, "/screens", `{"currency":"twd","sort_by":"volume_desc"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeScreen(t, rec)
	assert.Equal(t, domain.CurrencyTWD, body.State.Params.Currency)
	assert.Equal(t, domain.SortVolumeDesc, body.State.Params.SortBy)
}

func TestMountScreen_BadFilter(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodPost, "/screens", `{"currency":"eur"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported_currency")

	rec = env.do(t, http.MethodPost, "/screens", `{"sort_by":"name"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported_sort_by")
}

func TestUnknownScreen(t *testing.T) {
	env := setup(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/screens/nope", ""},
		{http.MethodDelete, "/screens/nope", ""},
		{http.MethodPost, "/screens/nope/more", ""},
		{http.MethodPost, "/screens/nope/refresh", ""},
		{http.MethodPost, "/screens/nope/sort", `{"sort_by":"id_asc"}`},
		{http.MethodGet, "/screens/nope/share", ""},
	} {
		rec := env.do(t, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestUpdateParams_Validation(t *testing.T) {
	env := setup(t)
	env.markets.EXPECT().CoinMarkets(gomock.Any(), page(domain.CurrencyUSD, domain.SortMarketCapDesc, 1)).
		Return([]domain.CoinSummary{coin("bitcoin", "Bitcoin", "65000")}, nil)

	rec := env.do(t, http.MethodPost, "/screens", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeScreen(t, rec).ID

	// страница 3 после страницы 1: пропуск страницы
	rec = env.do(t, http.MethodPost, "/screens/"+id+"/params",
		`{"currency":"usd","sort_by":"market_cap_desc","page_size":25,"page":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_params")

	rec = env.do(t, http.MethodPost, "/screens/"+id+"/currency", `{"currency":"jpy"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoute_UnknownCoin(t *testing.T) {
	env := setup(t)
	env.markets.EXPECT().CoinMarkets(gomock.Any(), gomock.Any()).Return([]domain.CoinSummary{coin("bitcoin", "Bitcoin", "1")}, nil)

	rec := env.do(t, http.MethodPost, "/screens", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeScreen(t, rec).ID

	rec = env.do(t, http.MethodGet, "/screens/"+id+"/coins/dogecoin/route", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "coin_not_found")
}

func TestCoinDetail_PartialFailure(t *testing.T) {
	env := setup(t)
	env.coins.EXPECT().CoinDetail(gomock.Any(), "bitcoin").Return(domain.CoinDetail{
		ID:          "bitcoin",
		Name:        "Bitcoin",
		Symbol:      "btc",
		Description: "a\nb",
		CurrentPrice: map[domain.Currency]decimal.Decimal{
			domain.CurrencyTWD: decimal.NewFromInt(2100000),
		},
		PriceChange24h: map[domain.Currency]decimal.Decimal{
			domain.CurrencyTWD: decimal.RequireFromString("-1500.5"),
		},
	}, nil)
	env.coins.EXPECT().MarketChart(gomock.Any(), "bitcoin", domain.CurrencyTWD, 1).Return(nil, errors.New("boom"))

	rec := env.do(t, http.MethodGet, "/coins/bitcoin?currency=twd", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Title string `json:"title"`
		Price *struct {
			Text       string `json:"text"`
			ChangeText string `json:"change_text"`
		} `json:"price"`
		Chart       *json.RawMessage `json:"chart"`
		Description *string          `json:"description_html"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "Bitcoin (BTC)", view.Title)
	require.NotNil(t, view.Price)
	assert.Equal(t, "TWD$ 2100000", view.Price.Text)
	assert.Equal(t, "- 1500.50", view.Price.ChangeText)
	assert.Nil(t, view.Chart)
	require.NotNil(t, view.Description)
	assert.Equal(t, "a<br />b", *view.Description)
}

func TestCoinDetail_BadCurrency(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodGet, "/coins/bitcoin?currency=eur", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCoinDetail_InvalidID(t *testing.T) {
	env := setup(t)

	for _, path := range []string{"/coins/..", "/coins/bit$coin", "/coins/bit%20coin"} {
		rec := env.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}
