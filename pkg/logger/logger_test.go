package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/abc123denny/cryptocurrency-app/internal/config"
)

func TestNewWithWriter_JSONAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, &config.LoggerConfig{Level: "info", Format: "json"})

	log.Debug("hidden")
	log.Info("fetch done", "page", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (debug filtered), got %d: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rec["level"] != "INFO" {
		t.Fatalf("unexpected level: %v", rec["level"])
	}
	src, _ := rec["source"].(string)
	if !strings.HasPrefix(src, "logger_test.go:") {
		t.Fatalf("source must be shortened, got %q", src)
	}
	if rec["page"] != float64(2) {
		t.Fatalf("unexpected page attr: %v", rec["page"])
	}
}

func TestParseLevel(t *testing.T) {
	if _, err := parseLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	lv, err := parseLevel(" WARNING ")
	if err != nil || lv.Level().String() != "WARN" {
		t.Fatalf("unexpected level: %v %v", lv, err)
	}
}
