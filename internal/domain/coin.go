package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CoinSummary — строка списка монет (ответ /coins/markets)
type CoinSummary struct {
	ID                       string          `json:"id"`
	Name                     string          `json:"name"`
	Symbol                   string          `json:"symbol"`
	Image                    string          `json:"image"`
	CurrentPrice             decimal.Decimal `json:"current_price"`
	TotalVolume              decimal.Decimal `json:"total_volume"`
	PriceChange24h           decimal.Decimal `json:"price_change_24h"`
	PriceChangePercentage24h decimal.Decimal `json:"price_change_percentage_24h"`
}

// CoinDetail — метаданные одной монеты (ответ /coins/{id}?market_data=true)
type CoinDetail struct {
	ID          string
	Name        string
	Symbol      string
	Description string // HTML, переносы строк уже заменены на <br />

	CurrentPrice   map[Currency]decimal.Decimal
	PriceChange24h map[Currency]decimal.Decimal
}

// PricePoint — точка графика цены. В JSON приходит как [timestampMillis, price].
type PricePoint struct {
	TimestampMillis int64
	Price           decimal.Decimal
}

func (p *PricePoint) UnmarshalJSON(b []byte) error {
	var pair []json.Number
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("price point: expected 2 elements, got %d", len(pair))
	}
	ts, err := pair[0].Float64()
	if err != nil {
		return fmt.Errorf("price point timestamp: %w", err)
	}
	price, err := decimal.NewFromString(pair[1].String())
	if err != nil {
		return fmt.Errorf("price point price: %w", err)
	}
	p.TimestampMillis = int64(ts)
	p.Price = price
	return nil
}

func (p PricePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.TimestampMillis, p.Price})
}

// Route — то, что получает навигация при нажатии на строку списка
type Route struct {
	CoinID     string   `json:"coin_id"`
	CoinName   string   `json:"coin_name"`
	CoinSymbol string   `json:"coin_symbol"`
	Currency   Currency `json:"currency"`
}

// RouteFor строит переход на экран деталей для строки списка.
func RouteFor(c CoinSummary, currency Currency) Route {
	return Route{
		CoinID:     c.ID,
		CoinName:   c.Name,
		CoinSymbol: c.Symbol,
		Currency:   currency,
	}
}
