package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/fdp7/nexo-dual-investment/internal/core"
)

type Config struct {
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Collector CollectorConfig `mapstructure:"collector"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
}

type CollectorConfig struct {
	Interval       string `mapstructure:"interval"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type AnalysisConfig struct {
	RSIPeriod       int     `mapstructure:"rsi_period"`
	ClusterWindow   int     `mapstructure:"cluster_window_days"`
	MinTouches      int     `mapstructure:"min_touches"`
	Tolerance       float64 `mapstructure:"tolerance"`
	ClusterRounding float64 `mapstructure:"cluster_rounding"`
	ForecastDays    int     `mapstructure:"forecast_days"`
	Simulations     int     `mapstructure:"simulations"`
	MinLookbackDays int     `mapstructure:"min_lookback_days"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file with environment variable overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand ${VAR} references in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults. The analysis knobs
// mirror the defaults the scoring model was tuned on.
func Defaults() *Config {
	return &Config{
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
		Collector: CollectorConfig{
			Interval:       "1h",
			TimeoutSeconds: 10,
		},
		Analysis: AnalysisConfig{
			RSIPeriod:       14,
			ClusterWindow:   30,
			MinTouches:      3,
			Tolerance:       0.002,
			ClusterRounding: 100,
			ForecastDays:    30,
			Simulations:     1000,
			MinLookbackDays: 7,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Collector.TimeoutSeconds <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("collector timeout must be positive, got %d", c.Collector.TimeoutSeconds))
	}
	if c.Analysis.RSIPeriod < 2 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("rsi_period must be at least 2, got %d", c.Analysis.RSIPeriod))
	}
	if c.Analysis.Tolerance <= 0 || c.Analysis.Tolerance >= 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("tolerance must be in (0, 1), got %f", c.Analysis.Tolerance))
	}
	if c.Analysis.Simulations < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("simulations must be at least 1, got %d", c.Analysis.Simulations))
	}
	if c.Analysis.ForecastDays < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("forecast_days must be at least 1, got %d", c.Analysis.ForecastDays))
	}
	return nil
}
