package coindetail

import (
	"strings"

	"github.com/abc123denny/cryptocurrency-app/internal/domain"
	"github.com/shopspring/decimal"
)

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

type View struct {
	CoinID      string          `json:"coin_id"`
	Title       string          `json:"title"`
	Currency    domain.Currency `json:"currency"`
	Price       *PriceView      `json:"price,omitempty"`
	Chart       *ChartView      `json:"chart,omitempty"`
	Description *string         `json:"description_html,omitempty"`
}

type PriceView struct {
	Current    decimal.Decimal `json:"current"`
	Change24h  decimal.Decimal `json:"change_24h"`
	Text       string          `json:"text"`        // USD$ 65000.1
	ChangeText string          `json:"change_text"` // + 12.34 / - 12.34
	Positive   bool            `json:"positive"`
}

type ChartView struct {
	Points []domain.PricePoint `json:"points"`
	Trend  Trend               `json:"trend"`
}

// Title — "Bitcoin (BTC)"
func Title(name, symbol string) string {
	if name == "" {
		return strings.ToUpper(symbol)
	}
	if symbol == "" {
		return name
	}
	return name + " (" + strings.ToUpper(symbol) + ")"
}

// PriceText — "USD$ 65000.1"
func PriceText(currency domain.Currency, price decimal.Decimal) string {
	return strings.ToUpper(string(currency)) + "$ " + price.String()
}

// ChangeText — изменение со знаком и двумя знаками после запятой
func ChangeText(change decimal.Decimal) string {
	if change.Sign() >= 0 {
		return "+ " + change.StringFixed(2)
	}
	return "- " + change.Neg().StringFixed(2)
}

// TrendOf — рост, если последняя цена не ниже первой
func TrendOf(points []domain.PricePoint) Trend {
	if len(points) == 0 {
		return TrendDown
	}
	if points[len(points)-1].Price.Sub(points[0].Price).Sign() >= 0 {
		return TrendUp
	}
	return TrendDown
}

func buildView(route domain.Route, detail *domain.CoinDetail, chart []domain.PricePoint) View {
	v := View{
		CoinID:   route.CoinID,
		Title:    Title(route.CoinName, route.CoinSymbol),
		Currency: route.Currency,
	}

	if detail != nil {
		if route.CoinName == "" {
			v.Title = Title(detail.Name, detail.Symbol)
		}
		if price, ok := detail.CurrentPrice[route.Currency]; ok {
			change := detail.PriceChange24h[route.Currency]
			v.Price = &PriceView{
				Current:    price,
				Change24h:  change,
				Text:       PriceText(route.Currency, price),
				ChangeText: ChangeText(change),
				Positive:   change.Sign() >= 0,
			}
		}
		desc := detail.Description
		v.Description = &desc
	}

	if chart != nil {
		v.Chart = &ChartView{Points: chart, Trend: TrendOf(chart)}
	}
	return v
}
