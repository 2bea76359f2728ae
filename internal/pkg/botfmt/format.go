package botfmt

import (
	"fmt"
	"strings"

	"github.com/abc123denny/cryptocurrency-app/internal/domain"
	"github.com/abc123denny/cryptocurrency-app/internal/service/coindetail"
	"github.com/shopspring/decimal"
)

// FormatCoinLine — строка списка: номер, монета, цена, изменение за 24ч
func FormatCoinLine(n int, c domain.CoinSummary, currency domain.Currency) string {
	return fmt.Sprintf("%d. %s | %s | %s%%",
		n,
		coindetail.Title(c.Name, c.Symbol),
		coindetail.PriceText(currency, humanPrice(c.CurrentPrice)),
		signed(c.PriceChangePercentage24h),
	)
}

// FormatList — монеты списка начиная с позиции from (0 — весь список)
func FormatList(st domain.ListState, from int) string {
	if from < 0 || from > len(st.Items) {
		from = 0
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Валюта: %s | Сортировка: %s | Страница: %d\n",
		strings.ToUpper(string(st.Params.Currency)), st.Params.SortBy, st.Params.Page)
	for i := from; i < len(st.Items); i++ {
		b.WriteString(FormatCoinLine(i+1, st.Items[i], st.Params.Currency))
		b.WriteByte('\n')
	}
	if st.IsFullyLoaded() {
		b.WriteString("Больше монет нет\n")
	}
	return b.String()
}

// FormatDetail — экран деталей монеты. Незагруженные секции пропускаются.
func FormatDetail(v coindetail.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", v.Title)
	if v.Price != nil {
		fmt.Fprintf(&b, "Цена: %s\nИзменение за 24ч: %s\n", v.Price.Text, v.Price.ChangeText)
	}
	if v.Chart != nil && len(v.Chart.Points) > 0 {
		first := v.Chart.Points[0].Price
		last := v.Chart.Points[len(v.Chart.Points)-1].Price
		fmt.Fprintf(&b, "График: %s → %s (%s)\n", humanPrice(first), humanPrice(last), trendWord(v.Chart.Trend))
	}
	if v.Description != nil && *v.Description != "" {
		b.WriteString(strings.ReplaceAll(*v.Description, "<br />", "\n"))
		b.WriteByte('\n')
	}
	if v.Price == nil && v.Chart == nil && v.Description == nil {
		b.WriteString("Данные о монете не загружены\n")
	}
	return b.String()
}

func trendWord(t coindetail.Trend) string {
	if t == coindetail.TrendUp {
		return "рост"
	}
	return "падение"
}

func signed(v decimal.Decimal) string {
	if v.Sign() >= 0 {
		return "+" + v.StringFixed(2)
	}
	return v.StringFixed(2)
}

// humanPrice — два знака после запятой, мелкие цены без округления.
func humanPrice(v decimal.Decimal) decimal.Decimal {
	if v.Abs().GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return v.Round(2)
	}
	return v
}
