package coindetail

import (
	"testing"

	"github.com/abc123denny/cryptocurrency-app/internal/domain"
	"github.com/shopspring/decimal"
)

func TestChangeText(t *testing.T) {
	cases := map[string]string{
		"12.345": "+ 12.35",
		"0":      "+ 0.00",
		"-0.5":   "- 0.50",
		"-1200":  "- 1200.00",
	}
	for in, want := range cases {
		if got := ChangeText(decimal.RequireFromString(in)); got != want {
			t.Fatalf("ChangeText(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestPriceText(t *testing.T) {
	if got := PriceText(domain.CurrencyTWD, decimal.RequireFromString("2100000.25")); got != "TWD$ 2100000.25" {
		t.Fatalf("unexpected price text: %q", got)
	}
}

func TestTitle(t *testing.T) {
	if got := Title("Ethereum", "eth"); got != "Ethereum (ETH)" {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := Title("", "eth"); got != "ETH" {
		t.Fatalf("unexpected title: %q", got)
	}
}

func TestTrendOf(t *testing.T) {
	p := func(v string) domain.PricePoint { return domain.PricePoint{Price: decimal.RequireFromString(v)} }

	if TrendOf(nil) != TrendDown {
		t.Fatal("empty chart is down")
	}
	if TrendOf([]domain.PricePoint{p("10"), p("5"), p("10")}) != TrendUp {
		t.Fatal("equal first/last is up")
	}
	if TrendOf([]domain.PricePoint{p("10"), p("11"), p("9.99")}) != TrendDown {
		t.Fatal("expected down")
	}
}
