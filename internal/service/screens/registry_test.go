package screens_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/abc123denny/cryptocurrency-app/internal/domain"
	errs "github.com/abc123denny/cryptocurrency-app/internal/errors"
	listmocks "github.com/abc123denny/cryptocurrency-app/internal/service/coinlist/mocks"
	"github.com/abc123denny/cryptocurrency-app/internal/service/screens"
	"github.com/golang/mock/gomock"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

var defaults = domain.FetchParams{Currency: domain.CurrencyUSD, SortBy: domain.SortMarketCapDesc, PageSize: 25, Page: 1}

func setup(t *testing.T) (*listmocks.MockMarketsClient, *fakeClock, *screens.Registry) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := listmocks.NewMockMarketsClient(ctrl)
	clk := &fakeClock{now: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	reg := screens.NewRegistryWithClock(api, screens.Config{Defaults: defaults, IdleTTL: 10 * time.Minute}, clk, slog.Default())
	return api, clk, reg
}

func TestMount_LoadsFirstPageWithFilter(t *testing.T) {
	t.Parallel()
	api, _, reg := setup(t)

	want := domain.FetchParams{Currency: domain.CurrencyTWD, SortBy: domain.SortVolumeDesc, PageSize: 25, Page: 1}
	api.EXPECT().CoinMarkets(gomock.Any(), want).Return([]domain.CoinSummary{{ID: "btc"}}, nil)

	id, list := reg.Mount(context.Background(), "", domain.CurrencyTWD, domain.SortVolumeDesc)
	if id == "" {
		t.Fatal("expected generated id")
	}
	if got := list.State().Items; len(got) != 1 || got[0].ID != "btc" {
		t.Fatalf("unexpected items: %+v", got)
	}

	same, err := reg.Get(id)
	if err != nil || same != list {
		t.Fatalf("expected same controller, got %v %v", same, err)
	}
}

// Каждый экран: своё состояние
func TestMount_ScreensAreIndependent(t *testing.T) {
	t.Parallel()
	api, _, reg := setup(t)

	api.EXPECT().CoinMarkets(gomock.Any(), gomock.Any()).Return([]domain.CoinSummary{{ID: "a"}}, nil)
	api.EXPECT().CoinMarkets(gomock.Any(), gomock.Any()).Return([]domain.CoinSummary{{ID: "b"}}, nil)

	_, first := reg.Mount(context.Background(), "one", "", "")
	_, second := reg.Mount(context.Background(), "two", "", "")

	if first.State().Items[0].ID != "a" || second.State().Items[0].ID != "b" {
		t.Fatalf("screens share state: %+v / %+v", first.State().Items, second.State().Items)
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 screens, got %d", reg.Len())
	}
}

func TestUnmount(t *testing.T) {
	t.Parallel()
	api, _, reg := setup(t)

	api.EXPECT().CoinMarkets(gomock.Any(), gomock.Any()).Return(nil, nil)
	id, _ := reg.Mount(context.Background(), "", "", "")

	if err := reg.Unmount(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := reg.Get(id); !errors.Is(err, errs.ErrScreenNotFound) {
		t.Fatalf("expected ErrScreenNotFound, got %v", err)
	}
	if err := reg.Unmount(id); !errors.Is(err, errs.ErrScreenNotFound) {
		t.Fatalf("expected ErrScreenNotFound, got %v", err)
	}
}

func TestSweepIdle(t *testing.T) {
	t.Parallel()
	api, clk, reg := setup(t)

	api.EXPECT().CoinMarkets(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	reg.Mount(context.Background(), "old", "", "")
	reg.Mount(context.Background(), "fresh", "", "")

	clk.now = clk.now.Add(8 * time.Minute)
	if _, err := reg.Get("fresh"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clk.now = clk.now.Add(5 * time.Minute)
	if n := reg.SweepIdle(); n != 1 {
		t.Fatalf("expected 1 swept screen, got %d", n)
	}
	if _, err := reg.Get("old"); !errors.Is(err, errs.ErrScreenNotFound) {
		t.Fatalf("old screen must be unmounted, got %v", err)
	}
	if _, err := reg.Get("fresh"); err != nil {
		t.Fatalf("fresh screen must survive: %v", err)
	}
}
