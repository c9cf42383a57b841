package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileIsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Source != "" || cfg.Listen != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
	if got := cfg.RegenerateDelay(2 * time.Second); got != 2*time.Second {
		t.Errorf("delay fallback = %v", got)
	}
}

func TestLoadParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "source: ./data/new.jsonl\nlisten: \":9090\"\nregenerate_delay_ms: 500\nhighlight_window_ms: 1000\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Source != "./data/new.jsonl" || cfg.Listen != ":9090" {
		t.Errorf("cfg = %+v", cfg)
	}
	if got := cfg.RegenerateDelay(2 * time.Second); got != 500*time.Millisecond {
		t.Errorf("delay = %v", got)
	}
	if got := cfg.HighlightWindow(3 * time.Second); got != time.Second {
		t.Errorf("window = %v", got)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("source: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg == nil {
		t.Fatalf("Load(\"\") = %+v, %v", cfg, err)
	}
}
