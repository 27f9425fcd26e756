package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "askdesk.yaml")
	content := []byte(`
app_name: askdesk-test
api:
  base_url: https://faq.example.edu/api
  timeout: 3s
session:
  dir: /tmp/askdesk-test
logger:
  level: 5
  format: json
redis:
  addr: localhost:6379
  db: 2
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.AppName != "askdesk-test" {
		t.Errorf("AppName = %q", cfg.AppName)
	}
	if cfg.API.BaseURL != "https://faq.example.edu/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Session.Dir != "/tmp/askdesk-test" {
		t.Errorf("Session.Dir = %q", cfg.Session.Dir)
	}
	if cfg.Logger == nil || cfg.Logger.Level != 5 || cfg.Logger.Format != "json" {
		t.Errorf("Logger = %+v", cfg.Logger)
	}
	if cfg.Redis == nil || cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
}

func TestInitFailureIsRetryable(t *testing.T) {
	prev := config
	config = nil
	t.Cleanup(func() { config = prev })

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("app_name: [unclosed"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Init(bad); err == nil {
		t.Fatal("malformed config must fail Init")
	}

	// the failure must not be cached as an empty configuration
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("app_name: askdesk-retry\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := Init(good)
	if err != nil {
		t.Fatalf("retried Init failed: %v", err)
	}
	if cfg == nil || cfg.AppName != "askdesk-retry" {
		t.Fatalf("retried Init returned %+v", cfg)
	}

	// later calls return the loaded instance
	again, err := Init(bad)
	if err != nil || again != cfg {
		t.Errorf("Init after success = %p, %v, want the cached instance", again, err)
	}
}

func TestWatchReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "askdesk.yaml")
	write := func(baseURL string) {
		t.Helper()
		content := []byte("api:\n  base_url: " + baseURL + "\n")
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
	}

	write("https://one.example.edu/api")
	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	reloaded := make(chan *Config, 4)
	Watch(func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	// give the watcher time to register before the change
	time.Sleep(100 * time.Millisecond)

	write("https://two.example.edu/api")

	select {
	case cfg := <-reloaded:
		if cfg.API.BaseURL != "https://two.example.edu/api" {
			t.Errorf("BaseURL after reload = %q", cfg.API.BaseURL)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not observed")
	}
}
