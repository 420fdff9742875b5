package analysis

import (
	"fmt"

	"github.com/markcheno/go-talib"

	"github.com/fdp7/nexo-dual-investment/internal/core"
)

// divergenceWindow is the sub-window length compared on both sides:
// mean of the last 5 bars against the mean of the 5 before them.
const divergenceWindow = 5

// Momentum holds the oscillator reading and its divergence class.
type Momentum struct {
	RSI        float64 // bounded 0-100
	Divergence core.Divergence
}

// AnalyzeMomentum computes the smoothed RSI over closing prices and
// classifies price/oscillator divergence. The series must carry at least
// period + 2*divergenceWindow bars; anything shorter is a caller error.
func AnalyzeMomentum(series core.Series, period int) (Momentum, error) {
	minBars := period + 2*divergenceWindow
	if len(series) < minBars {
		return Momentum{}, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("momentum needs %d bars, got %d", minBars, len(series)))
	}

	closes := series.Closes()
	rsi := talib.Rsi(closes, period)
	current := rsi[len(rsi)-1]

	div := classifyDivergence(trendOf(closes), trendOf(rsi))

	return Momentum{RSI: current, Divergence: div}, nil
}

// classifyDivergence interprets disagreement between the price trend and
// the oscillator trend. Falling price with a rising oscillator is a
// bullish (positive) divergence and vice versa; agreeing or flat trends
// carry no signal.
func classifyDivergence(priceTrend, rsiTrend float64) core.Divergence {
	switch {
	case priceTrend < 0 && rsiTrend > 0:
		return core.DivergencePositive
	case priceTrend > 0 && rsiTrend < 0:
		return core.DivergenceNegative
	default:
		return core.DivergenceNone
	}
}

// trendOf is the mean of the last window minus the mean of the window
// preceding it; the sign is the trend direction.
func trendOf(xs []float64) float64 {
	n := len(xs)
	return mean(xs[n-divergenceWindow:]) - mean(xs[n-2*divergenceWindow:n-divergenceWindow])
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
