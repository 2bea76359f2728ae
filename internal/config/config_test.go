package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FromFileWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
coingecko:
  base_url: "http://localhost:9999/api/v3"
list:
  currency: twd
  page_size: 50
logger:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CoinGecko.BaseURL != "http://localhost:9999/api/v3" {
		t.Fatalf("unexpected base url: %q", cfg.CoinGecko.BaseURL)
	}
	if cfg.List.Currency != "twd" || cfg.List.PageSize != 50 {
		t.Fatalf("unexpected list config: %+v", cfg.List)
	}
	// не заданные в файле значения берутся из env-default
	if cfg.List.SortBy != "market_cap_desc" {
		t.Fatalf("expected default sort, got %q", cfg.List.SortBy)
	}
	if cfg.CoinGecko.Timeout != 8*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.CoinGecko.Timeout)
	}
	if cfg.Logger.Level != "debug" {
		t.Fatalf("unexpected logger level: %q", cfg.Logger.Level)
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("POSTGRES_ENABLED", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("unexpected addr: %q", cfg.Server.Addr)
	}
	if !cfg.Postgres.Enabled {
		t.Fatal("postgres must be enabled from env")
	}
	if cfg.List.PageSize != 25 {
		t.Fatalf("expected default page size 25, got %d", cfg.List.PageSize)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
