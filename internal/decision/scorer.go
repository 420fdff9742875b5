// Package decision maps an analysis report to a bounded score and a
// three-way entry recommendation.
package decision

import (
	"fmt"

	"github.com/fdp7/nexo-dual-investment/internal/analysis"
	"github.com/fdp7/nexo-dual-investment/internal/core"
)

// MaxScore is the sum of the four filters at full weight.
const MaxScore = 4.0

// Score thresholds, as a percentage of MaxScore.
const (
	enterThresholdPct = 75.0
	waitThresholdPct  = 50.0
)

// Result is the scorer's output. It is created fresh per evaluation and
// never mutated afterwards.
type Result struct {
	Score           float64 // 0..MaxScore, may be fractional
	MaxScore        float64
	Warnings        []string // in filter-evaluation order
	Feedback        string
	SuggestedAction core.Action
}

// Percent normalizes the score to 0..100.
func (r Result) Percent() float64 {
	return 100 * r.Score / r.MaxScore
}

// Score applies the four scoring filters to the report. currentPrice is
// optional: when nil, the forecast's base-case price stands in for it.
// Warnings accumulate in filter order (momentum, support, volume,
// forecast); that order is part of the output contract.
func Score(report analysis.Report, currentPrice *float64) Result {
	var (
		score    float64
		warnings []string
	)

	score += momentumFilter(report.Momentum, &warnings)
	score += supportFilter(report, currentPrice, &warnings)
	score += volumeFilter(report.Volume, &warnings)
	score += forecastFilter(report.Forecast, &warnings)

	// The oversold bonus can push the sum past the nominal maximum;
	// the result contract bounds the score at MaxScore.
	if score > MaxScore {
		score = MaxScore
	}

	percent := 100 * score / MaxScore
	var (
		action   core.Action
		feedback string
	)
	switch {
	case percent >= enterThresholdPct:
		action = core.ActionEnter
		feedback = "Favorable technical conditions: you can consider entering the market."
	case percent >= waitThresholdPct:
		action = core.ActionWait
		feedback = "Mixed technical conditions: proceed with caution, you may want to wait for confirmation."
	default:
		action = core.ActionAvoid
		feedback = "Unfavorable technical conditions: better to avoid entering now."
	}

	return Result{
		Score:           score,
		MaxScore:        MaxScore,
		Warnings:        warnings,
		Feedback:        feedback,
		SuggestedAction: action,
	}
}

// momentumFilter awards 1 point unless the divergence is bearish, plus a
// 0.5 bonus on oversold RSI. Overbought only warns; that asymmetry is
// intentional and mirrors the scoring model this replaces.
func momentumFilter(m analysis.Momentum, warnings *[]string) float64 {
	var score float64
	switch m.Divergence {
	case core.DivergenceNone:
		score++
	case core.DivergencePositive:
		score++
		*warnings = append(*warnings, "Positive RSI divergence: possible bullish reversal.")
	case core.DivergenceNegative:
		*warnings = append(*warnings, "Negative RSI divergence: possible bearish reversal.")
	}
	if m.RSI > 70 {
		*warnings = append(*warnings, fmt.Sprintf("RSI very high (%.2f): overbought risk.", m.RSI))
	} else if m.RSI < 30 {
		*warnings = append(*warnings, fmt.Sprintf("RSI very low (%.2f): possible technical rebound.", m.RSI))
		score += 0.5
	}
	return score
}

// supportFilter awards 1 point near the lowest Fibonacci level and warns
// near the highest. Only the Fibonacci set participates; cluster prices
// are reported but deliberately kept out of this filter. An equal
// min/max range carries no gradient, so neither branch fires.
func supportFilter(report analysis.Report, currentPrice *float64, warnings *[]string) float64 {
	minSupport := report.Support.MinSupport()
	maxResistance := report.Support.MaxResistance()
	if minSupport == maxResistance {
		return 0
	}

	price := report.Forecast.Base
	if currentPrice != nil {
		price = *currentPrice
	}

	if price <= minSupport*1.02 {
		*warnings = append(*warnings, "Price near a key support: limited drawdown risk.")
		return 1
	}
	if price >= maxResistance*0.98 {
		*warnings = append(*warnings, "Price near a major resistance: watch out for pullbacks.")
	}
	return 0
}

// volumeFilter awards 1 point on above-average volume; low volume and
// spikes only warn.
func volumeFilter(v analysis.VolumeProfile, warnings *[]string) float64 {
	var score float64
	if v.AboveAveragePct > 10 {
		score++
		*warnings = append(*warnings, "Volume above average: confirms interest in the market.")
	} else if v.AboveAveragePct < -10 {
		*warnings = append(*warnings, "Volume below average: beware of weak signals.")
	}
	if v.SpikePct > 20 {
		*warnings = append(*warnings, "Recent volume spike: possible accumulation/distribution phase.")
	}
	return score
}

// forecastFilter awards 1 point when the simulated probability of
// exceeding the target is high; the 30-60% band is silent.
func forecastFilter(f analysis.Forecast, warnings *[]string) float64 {
	if f.Probability > 60 {
		*warnings = append(*warnings, fmt.Sprintf("High Monte Carlo probability of exceeding the target: %.1f%%.", f.Probability))
		return 1
	}
	if f.Probability < 30 {
		*warnings = append(*warnings, fmt.Sprintf("Low Monte Carlo probability of exceeding the target: %.1f%%.", f.Probability))
	}
	return 0
}
