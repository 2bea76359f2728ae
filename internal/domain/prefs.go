package domain

import "time"

// ChatPrefs — выбранные в чате валюта и сортировка
type ChatPrefs struct {
	ChatID    int64
	Currency  Currency
	SortBy    SortBy
	UpdatedAt time.Time
}
