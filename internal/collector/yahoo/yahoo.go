// Package yahoo fetches OHLCV series from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/fdp7/nexo-dual-investment/internal/core"
)

const baseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// validSymbol matches tickers like ETH-USD, BTC-EUR, AAPL.
var validSymbol = regexp.MustCompile(`^[A-Za-z0-9]{1,10}(-[A-Za-z]{1,5})?$`)

// Yahoo implements the Yahoo Finance collector.
type Yahoo struct {
	client  *http.Client
	baseURL string
}

// Option configures the collector.
type Option func(*Yahoo)

// WithBaseURL overrides the chart API endpoint, mainly for tests.
func WithBaseURL(url string) Option {
	return func(y *Yahoo) { y.baseURL = url }
}

// WithTimeout overrides the default 10s HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(y *Yahoo) { y.client.Timeout = d }
}

// New creates a new Yahoo collector.
func New(opts ...Option) *Yahoo {
	y := &Yahoo{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

func (y *Yahoo) Name() string {
	return "yahoo"
}

// validateSymbol checks if a symbol has valid format.
func validateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if len(symbol) > 20 {
		return fmt.Errorf("symbol too long: %s", symbol)
	}
	if !validSymbol.MatchString(symbol) {
		return fmt.Errorf("invalid symbol format: %s", symbol)
	}
	return nil
}

// FetchSeries fetches historical OHLCV bars covering the last
// lookbackDays at the given interval, sorted ascending by timestamp.
// Bars with missing quote data are skipped.
func (y *Yahoo) FetchSeries(ctx context.Context, symbol, interval string, lookbackDays int) (core.Series, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, core.WrapError(core.ErrInvalidInput, err)
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -lookbackDays)
	url := fmt.Sprintf("%s/%s?interval=%s&period1=%d&period2=%d",
		y.baseURL, symbol, toYahooInterval(interval), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.WrapError(core.ErrCollectorFailed, err)
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, core.WrapError(core.ErrCollectorFailed, fmt.Errorf("fetching history: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.WrapError(core.ErrCollectorFailed, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	var result chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, core.WrapError(core.ErrCollectorFailed, fmt.Errorf("decoding response: %w", err))
	}

	if result.Chart.Error != nil {
		return nil, core.WrapError(core.ErrSymbolNotFound,
			fmt.Errorf("yahoo error: %s", result.Chart.Error.Description))
	}
	if len(result.Chart.Result) == 0 || len(result.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, core.WrapError(core.ErrSymbolNotFound, fmt.Errorf("no data for symbol: %s", symbol))
	}

	r := result.Chart.Result[0]
	quotes := r.Indicators.Quote[0]

	series := make(core.Series, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(quotes.Open) ||
			quotes.Open[i] == nil || quotes.High[i] == nil || quotes.Low[i] == nil ||
			quotes.Close[i] == nil || quotes.Volume[i] == nil {
			continue // skip missing bars
		}
		series = append(series, core.Bar{
			Symbol:   symbol,
			Interval: interval,
			Open:     *quotes.Open[i],
			High:     *quotes.High[i],
			Low:      *quotes.Low[i],
			Close:    *quotes.Close[i],
			Volume:   *quotes.Volume[i],
			Time:     time.Unix(int64(ts), 0).UTC(),
		})
	}

	return series, nil
}

func toYahooInterval(interval string) string {
	switch interval {
	case "1m", "5m", "1h", "1d":
		return interval
	default:
		return "1h"
	}
}

// Yahoo API response types
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int      `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type indicators struct {
	Quote []quoteIndicator `json:"quote"`
}

type quoteIndicator struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}
