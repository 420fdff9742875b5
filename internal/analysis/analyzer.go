// Package analysis turns a raw price/volume series into structural
// support levels, momentum and divergence signals, volume anomalies and
// a stochastic price forecast, assembled into one typed report.
package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fdp7/nexo-dual-investment/internal/core"
)

// Report is the immutable aggregate handed to the decision scorer.
type Report struct {
	ID          string
	Symbol      string
	GeneratedAt time.Time

	Support  SupportLevels
	Momentum Momentum
	Volume   VolumeProfile
	Forecast Forecast
}

// Config carries the tuning knobs of all four analyzers.
type Config struct {
	Support   SupportConfig
	RSIPeriod int
	VolWindow int // bars for the volume moving-average comparison
	Forecast  ForecastConfig
}

// DefaultConfig matches the historical defaults: 14-period RSI, 30 days
// of hourly volume bars, a 30-day forecast horizon with 1000 paths.
func DefaultConfig() Config {
	return Config{
		Support:   DefaultSupportConfig(),
		RSIPeriod: 14,
		VolWindow: 30 * 24,
		Forecast:  ForecastConfig{Days: 30, Simulations: 1000},
	}
}

// Analyzer runs the four analyzers over one series.
type Analyzer struct {
	forecaster *Forecaster
	logger     *zap.Logger
}

// New creates an analyzer. The forecaster carries the injected
// randomness; logger may be nil.
func New(forecaster *Forecaster, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{forecaster: forecaster, logger: logger}
}

// Analyze validates the series, runs the four analyzers concurrently over
// it and assembles the report. The analyzers share no state beyond the
// immutable series, so they run in parallel; this call is the barrier
// that waits for all of them. Any analyzer failure fails the whole
// invocation; a partial report is never returned.
func (a *Analyzer) Analyze(ctx context.Context, series core.Series, cfg Config) (Report, error) {
	if len(series) == 0 {
		return Report{}, core.ErrEmptySeries
	}

	started := time.Now()

	var (
		wg       sync.WaitGroup
		support  SupportLevels
		momentum Momentum
		momErr   error
		volume   VolumeProfile
		forecast Forecast
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		support = AnalyzeSupport(series, cfg.Support)
	}()
	go func() {
		defer wg.Done()
		momentum, momErr = AnalyzeMomentum(series, cfg.RSIPeriod)
	}()
	go func() {
		defer wg.Done()
		volume = AnalyzeVolume(series, cfg.VolWindow)
	}()
	go func() {
		defer wg.Done()
		forecast = a.forecaster.Forecast(series, cfg.Forecast)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	if momErr != nil {
		return Report{}, momErr
	}

	symbol := series[0].Symbol
	a.logger.Debug("analysis complete",
		zap.String("symbol", symbol),
		zap.Int("bars", len(series)),
		zap.Duration("elapsed", time.Since(started)),
	)

	return Report{
		ID:          uuid.NewString(),
		Symbol:      symbol,
		GeneratedAt: time.Now(),
		Support:     support,
		Momentum:    momentum,
		Volume:      volume,
		Forecast:    forecast,
	}, nil
}
