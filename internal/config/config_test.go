package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "logoline.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.URL != "http://localhost:3000" {
		t.Fatalf("expected default url, got %q", cfg.URL)
	}
	if cfg.AdvanceInterval() != 50*time.Millisecond {
		t.Fatalf("expected 50ms advance interval, got %v", cfg.AdvanceInterval())
	}
	if cfg.RefreshInterval() != 2*time.Minute {
		t.Fatalf("expected 2m refresh interval, got %v", cfg.RefreshInterval())
	}
	if cfg.ImageWidth != 64 {
		t.Fatalf("expected default image width 64, got %d", cfg.ImageWidth)
	}
	if cfg.Feed.Listen != "127.0.0.1:3000" {
		t.Fatalf("expected default feed listen address, got %q", cfg.Feed.Listen)
	}
}

func TestLoadParsesYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logoline.yaml")
	configYAML := `
url: http://history.example.com:8080?play=true
advance_interval_ms: 100
refresh_interval_sec: 30
image_width: 32
fetch_limit: 200
feed:
  listen: 0.0.0.0:9000
  frames_dir: /var/lib/logoline/frames
`
	if err := os.WriteFile(path, []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.URL != "http://history.example.com:8080?play=true" {
		t.Fatalf("unexpected url %q", cfg.URL)
	}
	if cfg.AdvanceInterval() != 100*time.Millisecond {
		t.Fatalf("unexpected advance interval %v", cfg.AdvanceInterval())
	}
	if cfg.RefreshInterval() != 30*time.Second {
		t.Fatalf("unexpected refresh interval %v", cfg.RefreshInterval())
	}
	if cfg.FetchLimit != 200 {
		t.Fatalf("unexpected fetch limit %d", cfg.FetchLimit)
	}
	if cfg.Feed.Listen != "0.0.0.0:9000" {
		t.Fatalf("unexpected feed listen %q", cfg.Feed.Listen)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logoline.yaml")
	if err := os.WriteFile(path, []byte("url: http://from-file:3000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOGOLINE_URL", "http://from-env:3000")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.URL != "http://from-env:3000" {
		t.Fatalf("expected env override, got %q", cfg.URL)
	}
}

func TestLoadRejectsBadURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logoline.yaml")
	if err := os.WriteFile(path, []byte("url: ftp://example.com\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for non-http url")
	}
}
