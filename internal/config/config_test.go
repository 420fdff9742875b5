package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FromFile(t *testing.T) {
	content := []byte(`
telegram:
  bot_token: "123:abc"

collector:
  interval: "1d"
  timeout_seconds: 5

analysis:
  rsi_period: 21
  simulations: 2000
`)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Telegram.BotToken != "123:abc" {
		t.Errorf("bot token = %s", cfg.Telegram.BotToken)
	}
	if cfg.Collector.Interval != "1d" {
		t.Errorf("interval = %s, want 1d", cfg.Collector.Interval)
	}
	if cfg.Analysis.RSIPeriod != 21 {
		t.Errorf("rsi_period = %d, want 21", cfg.Analysis.RSIPeriod)
	}
	if cfg.Analysis.Simulations != 2000 {
		t.Errorf("simulations = %d, want 2000", cfg.Analysis.Simulations)
	}

	// Untouched keys keep their defaults.
	if cfg.Analysis.MinTouches != 3 {
		t.Errorf("min_touches = %d, want default 3", cfg.Analysis.MinTouches)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Collector.Interval != "1h" {
		t.Errorf("expected default interval 1h, got %s", cfg.Collector.Interval)
	}
	if cfg.Analysis.RSIPeriod != 14 {
		t.Errorf("expected default rsi_period 14, got %d", cfg.Analysis.RSIPeriod)
	}
	if cfg.Analysis.Tolerance != 0.002 {
		t.Errorf("expected default tolerance 0.002, got %f", cfg.Analysis.Tolerance)
	}
	if cfg.Analysis.Simulations != 1000 {
		t.Errorf("expected default simulations 1000, got %d", cfg.Analysis.Simulations)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero timeout", func(c *Config) { c.Collector.TimeoutSeconds = 0 }, true},
		{"rsi period too small", func(c *Config) { c.Analysis.RSIPeriod = 1 }, true},
		{"tolerance out of range", func(c *Config) { c.Analysis.Tolerance = 1.5 }, true},
		{"zero simulations", func(c *Config) { c.Analysis.Simulations = 0 }, true},
		{"zero forecast days", func(c *Config) { c.Analysis.ForecastDays = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
