package domain

import "strings"

// Currency — валюта котировок (vs_currency)
type Currency string

const (
	CurrencyUSD Currency = "usd"
	CurrencyTWD Currency = "twd"
)

// SortBy — порядок сортировки списка (order)
type SortBy string

const (
	SortMarketCapDesc SortBy = "market_cap_desc"
	SortIDAsc         SortBy = "id_asc"
	SortPriceDesc     SortBy = "price_desc"
	SortVolumeDesc    SortBy = "volume_desc"
)

var Currencies = []Currency{CurrencyUSD, CurrencyTWD}

var SortOrders = []SortBy{SortMarketCapDesc, SortIDAsc, SortPriceDesc, SortVolumeDesc}

func (c Currency) Valid() bool {
	for _, v := range Currencies {
		if c == v {
			return true
		}
	}
	return false
}

func (s SortBy) Valid() bool {
	for _, v := range SortOrders {
		if s == v {
			return true
		}
	}
	return false
}

// ParseCurrency нормализует ввод пользователя ("USD", " twd ").
func ParseCurrency(s string) (Currency, bool) {
	c := Currency(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// ParseSortBy нормализует ввод пользователя.
func ParseSortBy(s string) (SortBy, bool) {
	v := SortBy(strings.ToLower(strings.TrimSpace(s)))
	return v, v.Valid()
}

// FetchParams — полный набор параметров одного запроса страницы
type FetchParams struct {
	Currency Currency `json:"currency"`
	SortBy   SortBy   `json:"sort_by"`
	PageSize int      `json:"page_size"`
	Page     int      `json:"page"`
}

// SameFilter — совпадают ли валюта и сортировка.
func (p FetchParams) SameFilter(o FetchParams) bool {
	return p.Currency == o.Currency && p.SortBy == o.SortBy
}

// ValidCoinID — id монеты CoinGecko: строчные латинские буквы, цифры, '-', '_', '.'.
// Id подставляется в путь запроса, поэтому "/" и сегменты "." / ".." не допускаются.
func ValidCoinID(id string) bool {
	if id == "" || id == "." || id == ".." || len(id) > 128 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
