package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fdp7/nexo-dual-investment/internal/analysis"
	"github.com/fdp7/nexo-dual-investment/internal/app"
	"github.com/fdp7/nexo-dual-investment/internal/bot"
	"github.com/fdp7/nexo-dual-investment/internal/collector/yahoo"
	"github.com/fdp7/nexo-dual-investment/internal/config"
	"github.com/fdp7/nexo-dual-investment/internal/logger"
	"github.com/fdp7/nexo-dual-investment/internal/metrics"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	RunE:  runBot,
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			log.Info("metrics endpoint listening", zap.String("addr", cfg.Metrics.Addr))
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Error("metrics endpoint failed", zap.Error(err))
			}
		}()
	}

	application := newApp(cfg, reg, log)

	b, err := bot.New(cfg.Telegram.BotToken, application, log)
	if err != nil {
		return fmt.Errorf("creating bot: %w", err)
	}

	go b.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	b.Stop()
	return nil
}

// loadConfig loads and validates the config file, falling back to
// defaults when no file is given.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// newApp wires the production collector and analyzer.
func newApp(cfg *config.Config, reg *metrics.Registry, log *zap.Logger) *app.App {
	source := yahoo.New(yahoo.WithTimeout(time.Duration(cfg.Collector.TimeoutSeconds) * time.Second))
	forecaster := analysis.NewForecaster(rand.NewSource(time.Now().UnixNano()))
	analyzer := analysis.New(forecaster, log)
	return app.New(cfg, source, analyzer, reg, log)
}
