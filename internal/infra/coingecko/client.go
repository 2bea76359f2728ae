package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/abc123denny/cryptocurrency-app/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrNetwork — таймаут, DNS, обрыв соединения
	ErrNetwork = errors.New("coingecko: network failure")

	// ErrParse — тело ответа не разбирается как ожидаемый JSON
	ErrParse = errors.New("coingecko: parse failure")

	// ErrStatus — API ответило не 200
	ErrStatus = errors.New("coingecko: unexpected status")

	// ErrInvalidCoinID — id монеты нельзя подставить в путь запроса
	ErrInvalidCoinID = errors.New("coingecko: invalid coin id")
)

const defaultUserAgent = "cryptocurrency-app/1.0 (+https://github.com/abc123denny/cryptocurrency-app)"

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient - Создаёт нового клиента для работы с API CoinGecko.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// coinDetailResponse — структура для парсинга ответа /coins/{id}
type coinDetailResponse struct {
	ID          string `json:"id"`
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description struct {
		En string `json:"en"`
	} `json:"description"`
	MarketData struct {
		CurrentPrice             map[string]decimal.Decimal `json:"current_price"`
		PriceChange24hInCurrency map[string]decimal.Decimal `json:"price_change_24h_in_currency"`
	} `json:"market_data"`
}

type marketChartResponse struct {
	Prices []domain.PricePoint `json:"prices"`
}

// CoinMarkets — одна страница списка монет. Пустой срез означает конец пагинации.
func (c *Client) CoinMarkets(ctx context.Context, p domain.FetchParams) ([]domain.CoinSummary, error) {
	q := url.Values{}
	q.Set("vs_currency", string(p.Currency))
	q.Set("order", string(p.SortBy))
	q.Set("per_page", strconv.Itoa(p.PageSize))
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("price_change_percentage", "24h")

	var data []domain.CoinSummary
	if err := c.getJSON(ctx, q, &data, "coins", "markets"); err != nil {
		return nil, err
	}
	return data, nil
}

// CoinDetail — метаданные монеты вместе с market_data.
func (c *Client) CoinDetail(ctx context.Context, coinID string) (domain.CoinDetail, error) {
	if !domain.ValidCoinID(coinID) {
		return domain.CoinDetail{}, fmt.Errorf("%w: %q", ErrInvalidCoinID, coinID)
	}
	q := url.Values{}
	q.Set("market_data", "true")

	var data coinDetailResponse
	if err := c.getJSON(ctx, q, &data, "coins", coinID); err != nil {
		return domain.CoinDetail{}, err
	}

	return domain.CoinDetail{
		ID:             data.ID,
		Name:           data.Name,
		Symbol:         data.Symbol,
		Description:    data.Description.En,
		CurrentPrice:   byCurrency(data.MarketData.CurrentPrice),
		PriceChange24h: byCurrency(data.MarketData.PriceChange24hInCurrency),
	}, nil
}

// MarketChart — временной ряд цены за days дней.
func (c *Client) MarketChart(ctx context.Context, coinID string, currency domain.Currency, days int) ([]domain.PricePoint, error) {
	if !domain.ValidCoinID(coinID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCoinID, coinID)
	}
	q := url.Values{}
	q.Set("vs_currency", string(currency))
	q.Set("days", strconv.Itoa(days))

	var data marketChartResponse
	if err := c.getJSON(ctx, q, &data, "coins", coinID, "market_chart"); err != nil {
		return nil, err
	}
	if data.Prices == nil {
		data.Prices = []domain.PricePoint{}
	}
	return data.Prices, nil
}

func (c *Client) getJSON(ctx context.Context, q url.Values, out any, path ...string) error {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	u = u.JoinPath(path...)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	return nil
}

func byCurrency(in map[string]decimal.Decimal) map[domain.Currency]decimal.Decimal {
	out := make(map[domain.Currency]decimal.Decimal, len(in))
	for k, v := range in {
		out[domain.Currency(k)] = v
	}
	return out
}
