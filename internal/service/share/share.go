package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/abc123denny/cryptocurrency-app/internal/domain"
)

const (
	IntentURL  = "https://twitter.com/intent/tweet"
	DefaultTop = 10
)

// Message — текст для публикации и ссылка на share-интент
type Message struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Format — топ монет из текущего списка в виде текста для соцсетей.
// Без состояния: всё, что нужно, передаётся аргументами.
func Format(items []domain.CoinSummary, currency domain.Currency, top int) Message {
	if top <= 0 {
		top = DefaultTop
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Today's top %d cryptocurrencies (%s):\n", top, strings.ToUpper(string(currency)))
	for i, it := range items {
		if i >= top {
			break
		}
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, it.Name, it.CurrentPrice.String())
	}
	text := b.String()

	return Message{
		Text: text,
		URL:  IntentURL + "?" + url.Values{"text": {text}}.Encode(),
	}
}
