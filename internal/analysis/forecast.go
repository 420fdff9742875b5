package analysis

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/fdp7/nexo-dual-investment/internal/core"
)

// minSigma is the numerical floor for estimated volatility. Without it a
// near-zero (but non-zero) sigma collapses every path onto the starting
// price while still paying the full simulation cost.
const minSigma = 1e-4

// Forecast holds the Monte Carlo outcome distribution summary.
type Forecast struct {
	Probability float64 // percent of paths whose terminal price exceeds the target
	Bull        float64 // 80th percentile terminal price
	Base        float64 // 50th percentile terminal price
	Bear        float64 // 20th percentile terminal price
	DailySigma  float64 // estimated daily volatility of log-returns
}

// ForecastConfig tunes the stochastic forecaster.
type ForecastConfig struct {
	Days        int     // forecast horizon in periods
	Simulations int     // number of independent paths
	Target      float64 // price the probability is measured against
}

// Forecaster simulates forward price paths from historical log-returns.
// The randomness source is injected so tests can seed it.
type Forecaster struct {
	rng *rand.Rand
}

// NewForecaster creates a forecaster drawing from src.
func NewForecaster(src rand.Source) *Forecaster {
	return &Forecaster{rng: rand.New(src)}
}

// Forecast estimates the terminal price distribution after cfg.Days
// periods across cfg.Simulations paths, each step multiplying by
// exp(N(mu, sigma)) with mu/sigma fit on historical log-returns.
//
// A sigma of exactly zero (constant closes, or fewer than two bars) is a
// documented special case: every path equals the starting price and no
// random draws happen, so the output is fully deterministic.
func (f *Forecaster) Forecast(series core.Series, cfg ForecastConfig) Forecast {
	closes := series.Closes()
	start := 0.0
	if len(closes) > 0 {
		start = closes[len(closes)-1]
	}

	returns := make([]float64, 0, len(closes))
	for i := 1; i < len(closes); i++ {
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}

	var mu, sigma float64
	if len(returns) > 0 {
		mu = stat.Mean(returns, nil)
		sigma = stat.StdDev(returns, nil)
	}
	if len(returns) < 2 {
		sigma = 0
	}

	sims := cfg.Simulations
	if sims < 1 {
		sims = 1
	}
	terminals := make([]float64, sims)
	if sigma == 0 {
		for i := range terminals {
			terminals[i] = start
		}
	} else {
		if sigma < minSigma {
			sigma = minSigma
		}
		for i := range terminals {
			price := start
			for d := 0; d < cfg.Days; d++ {
				price *= math.Exp(f.rng.NormFloat64()*sigma + mu)
			}
			terminals[i] = price
		}
	}

	exceeding := 0
	for _, p := range terminals {
		if p > cfg.Target {
			exceeding++
		}
	}

	sort.Float64s(terminals)
	return Forecast{
		Probability: 100 * float64(exceeding) / float64(len(terminals)),
		Bull:        stat.Quantile(0.8, stat.LinInterp, terminals, nil),
		Base:        stat.Quantile(0.5, stat.LinInterp, terminals, nil),
		Bear:        stat.Quantile(0.2, stat.LinInterp, terminals, nil),
		DailySigma:  sigma,
	}
}
