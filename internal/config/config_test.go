package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr: %s", cfg.App.Addr())
	}
	if cfg.Upstream.Timeout().Seconds() != 15 {
		t.Fatalf("unexpected timeout: %v", cfg.Upstream.Timeout())
	}
	if cfg.Limits.Burst <= 0 || cfg.Limits.PerSecond <= 0 {
		t.Fatalf("rate limits must default to positive values: %+v", cfg.Limits)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("UPSTREAM_BASE_URL", "http://upstream.test/api")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != "9999" {
		t.Fatalf("unexpected port: %s", cfg.App.Port)
	}
	if cfg.Upstream.BaseURL != "http://upstream.test/api" {
		t.Fatalf("unexpected base URL: %s", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout().Seconds() != 3 {
		t.Fatalf("unexpected timeout: %v", cfg.Upstream.Timeout())
	}
}
