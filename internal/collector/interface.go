// Package collector defines the time-series data source the analyzers
// consume. Implementations return cleaned, chronologically ordered bars;
// the analysis core never fills gaps or retries fetches itself.
package collector

import (
	"context"

	"github.com/fdp7/nexo-dual-investment/internal/core"
)

// Collector fetches an OHLCV series for a symbol/interval/lookback window.
type Collector interface {
	Name() string

	// FetchSeries returns bars sorted ascending by timestamp covering
	// the last lookbackDays at the given interval. A fetch failure is
	// fatal to the analysis invocation that requested it.
	FetchSeries(ctx context.Context, symbol, interval string, lookbackDays int) (core.Series, error)
}
