// Package app orchestrates one deal evaluation end to end: fetch the
// series once, analyze it, score the report and compute the net gain.
package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fdp7/nexo-dual-investment/internal/analysis"
	"github.com/fdp7/nexo-dual-investment/internal/collector"
	"github.com/fdp7/nexo-dual-investment/internal/config"
	"github.com/fdp7/nexo-dual-investment/internal/deal"
	"github.com/fdp7/nexo-dual-investment/internal/decision"
	"github.com/fdp7/nexo-dual-investment/internal/metrics"
)

// Evaluation aggregates everything one invocation produces.
type Evaluation struct {
	Params   deal.Params
	Report   analysis.Report
	Decision decision.Result
	Gain     deal.NetGain
}

// App wires the collector, analyzer, scorer and evaluator together.
type App struct {
	cfg      *config.Config
	source   collector.Collector
	analyzer *analysis.Analyzer
	metrics  *metrics.Registry
	logger   *zap.Logger
}

// New creates an App. metrics may be nil when disabled; logger may be nil.
func New(cfg *config.Config, source collector.Collector, analyzer *analysis.Analyzer, reg *metrics.Registry, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		cfg:      cfg,
		source:   source,
		analyzer: analyzer,
		metrics:  reg,
		logger:   logger,
	}
}

// EvaluateDeal validates the parameters, fetches the series once
// (lookback twice the deal term, floored at the configured minimum),
// runs the analysis with the deal price as target and derives the
// decision and net gain. currentPrice is optional; nil falls back to the
// forecast base case inside the scorer.
func (a *App) EvaluateDeal(ctx context.Context, p deal.Params, currentPrice *float64) (Evaluation, error) {
	if err := p.Validate(); err != nil {
		return Evaluation{}, err
	}

	lookbackDays := p.TermDays * 2
	if lookbackDays < a.cfg.Analysis.MinLookbackDays {
		lookbackDays = a.cfg.Analysis.MinLookbackDays
	}

	series, err := a.source.FetchSeries(ctx, p.Symbol, a.cfg.Collector.Interval, lookbackDays)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordCollectorError()
		}
		return Evaluation{}, err
	}

	started := time.Now()
	report, err := a.analyzer.Analyze(ctx, series, a.analysisConfig(p.DealPrice))
	if err != nil {
		return Evaluation{}, err
	}
	if a.metrics != nil {
		a.metrics.RecordAnalysisDuration(time.Since(started).Seconds())
	}

	result := decision.Score(report, currentPrice)
	gain := deal.Evaluate(p, report.Forecast.Base)

	if a.metrics != nil {
		a.metrics.RecordEvaluation(string(result.SuggestedAction))
	}
	a.logger.Info("deal evaluated",
		zap.String("symbol", p.Symbol),
		zap.Float64("score", result.Score),
		zap.String("action", string(result.SuggestedAction)),
		zap.Float64("net_gain", gain.NetGain),
	)

	return Evaluation{
		Params:   p,
		Report:   report,
		Decision: result,
		Gain:     gain,
	}, nil
}

// analysisConfig maps configuration onto analyzer knobs, converting
// day-based windows to bars for the configured interval.
func (a *App) analysisConfig(target float64) analysis.Config {
	bars := barsPerDay(a.cfg.Collector.Interval)
	supportCfg := analysis.SupportConfig{
		Lookback:      60 * bars,
		ClusterWindow: a.cfg.Analysis.ClusterWindow * bars,
		MinTouches:    a.cfg.Analysis.MinTouches,
		Tolerance:     a.cfg.Analysis.Tolerance,
		RoundTo:       a.cfg.Analysis.ClusterRounding,
	}
	return analysis.Config{
		Support:   supportCfg,
		RSIPeriod: a.cfg.Analysis.RSIPeriod,
		VolWindow: a.cfg.Analysis.ClusterWindow * bars,
		Forecast: analysis.ForecastConfig{
			Days:        a.cfg.Analysis.ForecastDays,
			Simulations: a.cfg.Analysis.Simulations,
			Target:      target,
		},
	}
}

func barsPerDay(interval string) int {
	switch interval {
	case "1m":
		return 24 * 60
	case "5m":
		return 24 * 12
	case "1h":
		return 24
	default:
		return 1
	}
}
