package analysis

import (
	"math"
	"sort"

	"github.com/fdp7/nexo-dual-investment/internal/core"
)

// Standard retracement ratios, ordered. 0.0 maps to the window maximum
// and 1.0 to the window minimum.
var fibRatios = []struct {
	Label string
	Ratio float64
}{
	{"0.0%", 0},
	{"23.6%", 0.236},
	{"38.2%", 0.382},
	{"50.0%", 0.5},
	{"61.8%", 0.618},
	{"78.6%", 0.786},
	{"100.0%", 1.0},
}

// FibLevel is one retracement level.
type FibLevel struct {
	Label string
	Ratio float64
	Price float64
}

// SupportLevels holds the structural support/resistance output.
type SupportLevels struct {
	Fibonacci []FibLevel // ordered by ratio, price non-increasing
	Clusters  []float64  // ascending, deduplicated; may be empty
}

// MinSupport returns the lowest Fibonacci level (the 100.0% price).
func (s SupportLevels) MinSupport() float64 {
	if len(s.Fibonacci) == 0 {
		return 0
	}
	return s.Fibonacci[len(s.Fibonacci)-1].Price
}

// MaxResistance returns the highest Fibonacci level (the 0.0% price).
func (s SupportLevels) MaxResistance() float64 {
	if len(s.Fibonacci) == 0 {
		return 0
	}
	return s.Fibonacci[0].Price
}

// SupportConfig tunes the support level analyzer.
type SupportConfig struct {
	Lookback      int     // bars for the Fibonacci window
	ClusterWindow int     // bars for cluster detection
	MinTouches    int     // lows within tolerance needed to keep a cluster
	Tolerance     float64 // fractional price proximity
	RoundTo       float64 // coarse granularity for cluster prices
}

// DefaultSupportConfig mirrors the analyzer's historical defaults
// (60 days of hourly bars, 30-day cluster window).
func DefaultSupportConfig() SupportConfig {
	return SupportConfig{
		Lookback:      60 * 24,
		ClusterWindow: 30 * 24,
		MinTouches:    3,
		Tolerance:     0.002,
		RoundTo:       100,
	}
}

// AnalyzeSupport derives Fibonacci retracement levels over closes and
// empirical support clusters over lows. A window shorter than configured
// degrades to whatever bars exist; a window with a single distinct price
// yields an equal (max == min) Fibonacci range and no clusters.
func AnalyzeSupport(series core.Series, cfg SupportConfig) SupportLevels {
	closes := tail(series.Closes(), cfg.Lookback)
	var maxPrice, minPrice float64
	if len(closes) > 0 {
		maxPrice, minPrice = closes[0], closes[0]
		for _, c := range closes[1:] {
			maxPrice = math.Max(maxPrice, c)
			minPrice = math.Min(minPrice, c)
		}
	}

	levels := make([]FibLevel, 0, len(fibRatios))
	diff := maxPrice - minPrice
	for _, r := range fibRatios {
		levels = append(levels, FibLevel{
			Label: r.Label,
			Ratio: r.Ratio,
			Price: maxPrice - r.Ratio*diff,
		})
	}

	return SupportLevels{
		Fibonacci: levels,
		Clusters:  findClusters(tail(series.Lows(), cfg.ClusterWindow), cfg),
	}
}

// findClusters keeps each low touched by at least MinTouches lows within
// Tolerance, rounded to RoundTo, deduplicated and sorted ascending.
func findClusters(lows []float64, cfg SupportConfig) []float64 {
	seen := make(map[float64]struct{})
	var clusters []float64
	for _, price := range lows {
		touches := 0
		for _, other := range lows {
			if math.Abs(other-price) < price*cfg.Tolerance {
				touches++
			}
		}
		if touches < cfg.MinTouches {
			continue
		}
		rounded := price
		if cfg.RoundTo > 0 {
			rounded = math.Round(price/cfg.RoundTo) * cfg.RoundTo
		}
		if _, ok := seen[rounded]; ok {
			continue
		}
		seen[rounded] = struct{}{}
		clusters = append(clusters, rounded)
	}
	sort.Float64s(clusters)
	return clusters
}

// tail returns the last n elements, or all of them when n exceeds the length.
func tail(xs []float64, n int) []float64 {
	if n <= 0 || n >= len(xs) {
		return xs
	}
	return xs[len(xs)-n:]
}
